package contentview

import (
	"fmt"
	"testing"
	"time"

	"vipgate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemOn(name, category string, date time.Time) models.ContentItem {
	return models.ContentItem{
		Name:     name,
		Category: category,
		Link:     "https://example.com/" + name,
		PostDate: date,
	}
}

func datedItems(dates ...time.Time) []models.ContentItem {
	items := make([]models.ContentItem, len(dates))
	for i, d := range dates {
		items[i] = itemOn(fmt.Sprintf("item-%d", i), "General", d)
	}
	return items
}

func TestBuildNameFilterIsCaseInsensitiveSubstring(t *testing.T) {
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	items := []models.ContentItem{
		itemOn("Morning Yoga Session", "Fitness", base),
		itemOn("Evening YOGA flow", "Fitness", base),
		itemOn("Cooking Basics", "Food", base),
	}

	view := Build(items, Params{SearchName: "yoga"})

	require.Equal(t, 2, view.Total)
	for _, g := range view.Groups {
		for _, e := range g.Items {
			assert.Contains(t, []string{"Morning Yoga Session", "Evening YOGA flow"}, e.Name)
		}
	}
}

func TestBuildMonthFilterMatchesCalendarMonth(t *testing.T) {
	items := []models.ContentItem{
		itemOn("january item", "General", time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)),
		itemOn("march item", "General", time.Date(2024, 3, 2, 0, 0, 0, 0, time.Local)),
		itemOn("another march", "General", time.Date(2023, 3, 20, 0, 0, 0, 0, time.Local)),
	}

	view := Build(items, Params{SelectedMonth: "03"})

	assert.Equal(t, 2, view.Total)

	// An unparseable month matches nothing rather than everything.
	empty := Build(items, Params{SelectedMonth: "13"})
	assert.Equal(t, 0, empty.Total)
	assert.Empty(t, empty.Groups)
}

func TestBuildCategoryFilterIsExact(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	items := []models.ContentItem{
		itemOn("a", "Fitness", base),
		itemOn("b", "fitness", base),
		itemOn("c", "Fitness Advanced", base),
	}

	view := Build(items, Params{SelectedCategory: "Fitness"})

	require.Equal(t, 1, view.Total)
	assert.Equal(t, "a", view.Groups[0].Items[0].Name)
}

func TestBuildSortMostRecentIsDefaultAndStable(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	items := []models.ContentItem{
		itemOn("older", "General", day.AddDate(0, 0, -3)),
		itemOn("same-day-first", "General", day),
		itemOn("same-day-second", "General", day),
		itemOn("newest", "General", day.AddDate(0, 0, 2)),
	}

	view := Build(items, Params{})

	require.Equal(t, 4, view.Total)
	var names []string
	for _, g := range view.Groups {
		for _, e := range g.Items {
			names = append(names, e.Name)
		}
	}
	// Equal dates keep input order under the stable sort.
	assert.Equal(t, []string{"newest", "same-day-first", "same-day-second", "older"}, names)
}

func TestBuildSortOldestAscending(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	items := []models.ContentItem{
		itemOn("newest", "General", day.AddDate(0, 0, 2)),
		itemOn("oldest", "General", day.AddDate(0, 0, -3)),
		itemOn("middle", "General", day),
	}

	view := Build(items, Params{SortOption: SortOldest})

	assert.Equal(t, "oldest", view.Groups[0].Items[0].Name)
	last := view.Groups[len(view.Groups)-1]
	assert.Equal(t, "newest", last.Items[len(last.Items)-1].Name)
}

func TestBuildMarksFirstFiveAsNew(t *testing.T) {
	now := time.Now()
	items := datedItems(
		now.AddDate(0, 0, -1),
		now.AddDate(0, 0, -2),
		now.AddDate(0, 0, -3),
		now.AddDate(0, 0, -4),
		now.AddDate(0, 0, -5),
		now.AddDate(0, 0, -6),
		now.AddDate(0, 0, -7),
	)

	view := Build(items, Params{})

	require.Len(t, view.Recent, 5)
	newCount := 0
	for _, g := range view.Groups {
		for _, e := range g.Items {
			if e.IsNew {
				newCount++
			}
		}
	}
	assert.Equal(t, 5, newCount)
	for _, e := range view.Recent {
		assert.True(t, e.IsNew)
	}
}

func TestBuildRecencyFollowsSortDirection(t *testing.T) {
	now := time.Now()
	items := datedItems(
		now.AddDate(0, 0, -1),
		now.AddDate(0, 0, -10),
		now.AddDate(0, 0, -20),
		now.AddDate(0, 0, -30),
		now.AddDate(0, 0, -40),
		now.AddDate(0, 0, -50),
	)

	// Under oldest-first the marked entries are the oldest ones; the flag
	// tracks position after sorting, not wall-clock age.
	view := Build(items, Params{SortOption: SortOldest})

	require.Len(t, view.Recent, 5)
	assert.Equal(t, "item-5", view.Recent[0].Name)
	var lastEntry Entry
	for _, g := range view.Groups {
		for _, e := range g.Items {
			lastEntry = e
		}
	}
	assert.False(t, lastEntry.IsNew)
	assert.Equal(t, "item-0", lastEntry.Name)
}

func TestBuildGroupsByDateInFirstSeenOrder(t *testing.T) {
	items := []models.ContentItem{
		itemOn("Alpha", "General", time.Date(2024, 1, 5, 9, 0, 0, 0, time.Local)),
		itemOn("Beta", "General", time.Date(2024, 1, 5, 17, 30, 0, 0, time.Local)),
		itemOn("Gamma", "General", time.Date(2024, 1, 4, 12, 0, 0, 0, time.Local)),
	}

	view := Build(items, Params{})

	require.Len(t, view.Groups, 2)
	// Same calendar date groups together regardless of time of day.
	assert.Equal(t, "01/05/2024", view.Groups[0].Date)
	require.Len(t, view.Groups[0].Items, 2)
	assert.Equal(t, "Beta", view.Groups[0].Items[0].Name)
	assert.Equal(t, "Alpha", view.Groups[0].Items[1].Name)
	assert.Equal(t, "01/04/2024", view.Groups[1].Date)
}

func TestBuildSingleItemScenario(t *testing.T) {
	items := []models.ContentItem{
		itemOn("Alpha", "General", time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local)),
	}

	view := Build(items, Params{})

	require.Len(t, view.Groups, 1)
	assert.Equal(t, "01/05/2024", view.Groups[0].Date)
	require.Len(t, view.Groups[0].Items, 1)
	assert.Equal(t, "Alpha", view.Groups[0].Items[0].Name)
	assert.True(t, view.Groups[0].Items[0].IsNew)
}

func TestBuildEmptyResultIsNotAnError(t *testing.T) {
	items := []models.ContentItem{
		itemOn("Alpha", "General", time.Now()),
	}

	view := Build(items, Params{SearchName: "does-not-exist"})

	assert.Equal(t, 0, view.Total)
	assert.Empty(t, view.Groups)
	assert.Empty(t, view.Recent)
}

func TestBuildInvalidDatesSortLastAndGroupUnknown(t *testing.T) {
	good := itemOn("dated", "General", time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local))
	undated := models.ContentItem{Name: "undated", Category: "General", Link: "https://example.com/u"}

	view := Build([]models.ContentItem{undated, good}, Params{})

	require.Len(t, view.Groups, 2)
	assert.Equal(t, "02/01/2024", view.Groups[0].Date)
	assert.Equal(t, UnknownDateKey, view.Groups[1].Date)

	// Same placement under ascending sort: unknown dates always trail.
	asc := Build([]models.ContentItem{undated, good}, Params{SortOption: SortOldest})
	assert.Equal(t, UnknownDateKey, asc.Groups[len(asc.Groups)-1].Date)
}

func TestBuildFilterOrderCombined(t *testing.T) {
	items := []models.ContentItem{
		itemOn("Spring Workshop", "Workshops", time.Date(2024, 4, 10, 0, 0, 0, 0, time.Local)),
		itemOn("Spring Recital", "Music", time.Date(2024, 4, 12, 0, 0, 0, 0, time.Local)),
		itemOn("Autumn Workshop", "Workshops", time.Date(2024, 10, 3, 0, 0, 0, 0, time.Local)),
	}

	view := Build(items, Params{
		SearchName:       "spring",
		SelectedMonth:    "04",
		SelectedCategory: "Workshops",
	})

	require.Equal(t, 1, view.Total)
	assert.Equal(t, "Spring Workshop", view.Groups[0].Items[0].Name)
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	items := []models.ContentItem{
		itemOn("b-old", "General", day.AddDate(0, 0, -5)),
		itemOn("a-new", "General", day),
	}

	_ = Build(items, Params{})

	assert.Equal(t, "b-old", items[0].Name)
	assert.Equal(t, "a-new", items[1].Name)
}
