package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ContentListKeyPrefix = "content:%s"
	ContentItemKeyPrefix = "content_item:%d"
	UserKeyPrefix        = "user:%d"
	StatsKey             = "stats"
	ReactionsKeyPrefix   = "reactions:%d"
)

const (
	ContentListTTL = 2 * time.Minute
	ContentItemTTL = 10 * time.Minute
	UserTTL        = 5 * time.Minute
	StatsTTL       = time.Minute
	ReactionsTTL   = time.Minute
)

func ContentListKey(tier string) string {
	return fmt.Sprintf(ContentListKeyPrefix, tier)
}

func ContentItemKey(id uint) string {
	return fmt.Sprintf(ContentItemKeyPrefix, id)
}

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ReactionsKey(contentItemID uint) string {
	return fmt.Sprintf(ReactionsKeyPrefix, contentItemID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateContentList(ctx context.Context, tier string) {
	Invalidate(ctx, ContentListKey(tier))
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateStats(ctx context.Context) {
	Invalidate(ctx, StatsKey)
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	s, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, b, ttl).Err()
}

// Aside tries Redis first, on miss it calls fetch (which should populate dest),
// then stores the result in Redis with ttl. fetch must write into dest.
// Cache read/write failures degrade to the fetch path; they never fail the call.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := GetJSON(ctx, key, dest)
	if err == nil && found {
		return nil
	}

	if err := fetch(); err != nil {
		return err
	}

	// Store into cache (best-effort)
	_ = SetJSON(ctx, key, dest, ttl)
	return nil
}
