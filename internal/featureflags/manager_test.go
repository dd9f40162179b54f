package featureflags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnabledExplicitValues(t *testing.T) {
	m := NewManager("reactions=on,recommendations=off,payments=true,extra=0")

	assert.True(t, m.Enabled("reactions", 1))
	assert.False(t, m.Enabled("recommendations", 1))
	assert.True(t, m.Enabled("payments", 1))
	assert.False(t, m.Enabled("extra", 1))
}

func TestEnabledDefaultsToOn(t *testing.T) {
	m := NewManager("")
	assert.True(t, m.Enabled("reactions", 1))

	// Nil manager behaves the same.
	var nilManager *Manager
	assert.True(t, nilManager.Enabled("reactions", 1))
}

func TestEnabledIgnoresMalformedPairs(t *testing.T) {
	m := NewManager("garbage, =off, reactions, recommendations=off")

	// Malformed entries fall through to the default-on behavior.
	assert.True(t, m.Enabled("reactions", 1))
	assert.False(t, m.Enabled("recommendations", 1))
}

func TestEnabledNormalizesNamesAndValues(t *testing.T) {
	m := NewManager(" Reactions = OFF ")
	assert.False(t, m.Enabled("reactions", 1))
	assert.False(t, m.Enabled("REACTIONS", 1))
}

func TestEnabledPercentRollout(t *testing.T) {
	full := NewManager("payments=100%")
	assert.True(t, full.Enabled("payments", 7))

	none := NewManager("payments=0%")
	assert.False(t, none.Enabled("payments", 7))

	bad := NewManager("payments=abc%")
	assert.False(t, bad.Enabled("payments", 7))

	// Anonymous users never land in a partial rollout.
	partial := NewManager("payments=50%")
	assert.False(t, partial.Enabled("payments", 0))
}

func TestEnabledPercentRolloutIsDeterministic(t *testing.T) {
	m := NewManager("payments=50%")
	for userID := uint(1); userID <= 20; userID++ {
		first := m.Enabled("payments", userID)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, m.Enabled("payments", userID))
		}
	}
}

func TestEnabledUnknownValueIsOff(t *testing.T) {
	m := NewManager("payments=maybe")
	assert.False(t, m.Enabled("payments", 1))
}

func TestSnapshot(t *testing.T) {
	m := NewManager("reactions=on,recommendations=off")
	snap := m.Snapshot(1)

	assert.Equal(t, map[string]bool{
		"reactions":       true,
		"recommendations": false,
	}, snap)
}
