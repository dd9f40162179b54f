// Package contentview builds the grouped, ordered content view served by the
// catalog endpoints. The whole pipeline is a pure function of its inputs; all
// side effects (fetching, reaction counts) belong to the caller.
package contentview

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"vipgate/internal/models"
)

// Sort options accepted by Params.SortOption.
const (
	SortMostRecent = "mostRecent"
	SortOldest     = "oldest"
)

// recentCount is how many leading items of the filtered-and-sorted result are
// flagged as new.
const recentCount = 5

// UnknownDateKey groups items whose date could not be determined.
const UnknownDateKey = "Unknown Date"

// dateKeyLayout renders group keys as MM/DD/YYYY.
const dateKeyLayout = "01/02/2006"

// Params are the filter and ordering controls for a content view.
type Params struct {
	// SearchName is a case-insensitive substring match against the item name.
	// Empty matches everything.
	SearchName string `query:"search"`
	// SelectedMonth is a two-digit month code "01".."12", or empty for all
	// months.
	SelectedMonth string `query:"month"`
	// SelectedCategory is an exact category match, or empty for all categories.
	SelectedCategory string `query:"category"`
	// SortOption is SortMostRecent (default) or SortOldest.
	SortOption string `query:"sort"`
}

// Entry is a content item in a view, annotated with its recency flag.
type Entry struct {
	models.ContentItem
	IsNew bool `json:"isNew"`
}

// Group is a run of entries sharing a calendar date.
type Group struct {
	Date  string  `json:"date"`
	Items []Entry `json:"items"`
}

// View is the grouped, ordered result of a Build call. An empty Groups slice
// is the "No Content Found" state, not an error.
type View struct {
	Groups []Group `json:"groups"`
	Recent []Entry `json:"recent"`
	Total  int     `json:"total"`
}

// Build filters, sorts and groups items according to params. The input slice
// is never mutated. The order of operations is fixed: name filter, month
// filter, category filter, stable sort, recency marking, date grouping.
func Build(items []models.ContentItem, params Params) View {
	filtered := make([]models.ContentItem, 0, len(items))
	for _, item := range items {
		if matches(item, params) {
			filtered = append(filtered, item)
		}
	}

	sortItems(filtered, params.SortOption)

	entries := make([]Entry, len(filtered))
	for i, item := range filtered {
		entries[i] = Entry{ContentItem: item, IsNew: i < recentCount}
	}

	recent := entries
	if len(recent) > recentCount {
		recent = recent[:recentCount]
	}

	return View{
		Groups: group(entries),
		Recent: recent,
		Total:  len(entries),
	}
}

func matches(item models.ContentItem, params Params) bool {
	if params.SearchName != "" &&
		!strings.Contains(strings.ToLower(item.Name), strings.ToLower(params.SearchName)) {
		return false
	}
	if params.SelectedMonth != "" {
		month, err := strconv.Atoi(params.SelectedMonth)
		if err != nil || month < 1 || month > 12 {
			return false
		}
		date := item.EffectiveDate()
		// Items without a usable date never match a concrete month selection.
		if date.IsZero() || int(date.Local().Month()) != month {
			return false
		}
	}
	if params.SelectedCategory != "" && item.Category != params.SelectedCategory {
		return false
	}
	return true
}

// sortItems orders by effective date. The sort is explicitly stable so that
// items sharing a date keep their input order. Items without a usable date
// sort last under either option.
func sortItems(items []models.ContentItem, sortOption string) {
	ascending := sortOption == SortOldest
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].EffectiveDate(), items[j].EffectiveDate()
		switch {
		case a.IsZero():
			return false
		case b.IsZero():
			return true
		case ascending:
			return a.Before(b)
		default:
			return b.Before(a)
		}
	})
}

// group buckets entries by calendar date in first-seen order; the entries
// within each group keep the sorted order.
func group(entries []Entry) []Group {
	groups := make([]Group, 0, len(entries))
	index := make(map[string]int, len(entries))
	for _, entry := range entries {
		key := groupKey(entry.EffectiveDate())
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Date: key})
		}
		groups[i].Items = append(groups[i].Items, entry)
	}
	return groups
}

func groupKey(date time.Time) string {
	if date.IsZero() {
		return UnknownDateKey
	}
	return date.Local().Format(dateKeyLayout)
}
