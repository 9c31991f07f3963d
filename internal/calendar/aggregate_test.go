package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhil2004nk/shra-calendar/internal/model"
)

func testSources() Sources {
	return Sources{
		Events: []model.CalendarItem{
			{ID: "e1", Title: "Birthday", Date: "2026-03-03", Month: 3, Type: model.TypeEvent},
			{ID: "e2", Title: "Old Event", Date: "2025-03-03", Month: 3, Type: model.TypeEvent},
			{ID: "e3", Title: "Broken", Date: "not-a-date", Type: model.TypeEvent},
		},
		Functions: []model.CalendarItem{
			{ID: "f1", Title: "Filmfare", Date: "2026-01-24", Month: 1, Type: model.TypeFunction},
		},
		Movies: []model.BaseMovie{
			{ID: "aashiqui-2", Title: "Aashiqui 2", Date: "2013-04-26"},
		},
		Awards: []model.Award{
			{ID: "award-2012-02-26", Title: "Stardust Awards", Date: "2012-02-26"},
		},
		PastEvents: []model.PastEvent{
			{ID: 1, Title: "Music Launch", Date: "2013-04-08", Type: "Film", Place: "Mumbai"},
		},
	}
}

func TestItemsForYear(t *testing.T) {
	items := ItemsForYear(testSources(), 2026)
	require.Len(t, items, 5)

	// Fixed concatenation order: events, functions, award anniversaries,
	// movie anniversaries, past-event reminders.
	assert.Equal(t, "e1", items[0].ID)
	assert.Equal(t, "f1", items[1].ID)
	assert.Equal(t, "award-2012-02-26-2026", items[2].ID)
	assert.Equal(t, "aashiqui-2-anniv-2026", items[3].ID)
	assert.Equal(t, "past-event-1-2026", items[4].ID)
}

func TestItemsForYearStaticPrefixFilter(t *testing.T) {
	items := ItemsForYear(testSources(), 2025)

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	assert.Contains(t, ids, "e2")
	assert.NotContains(t, ids, "e1", "other year excluded")
	assert.NotContains(t, ids, "e3", "malformed date fails the prefix check")
	assert.NotContains(t, ids, "f1")
}

func TestItemsForYearIdempotent(t *testing.T) {
	src := testSources()
	assert.Equal(t, ItemsForYear(src, 2026), ItemsForYear(src, 2026))
}

func TestItemsForYearMonthMatchesDate(t *testing.T) {
	for _, it := range ItemsForYear(testSources(), 2026) {
		p := ParseDateParts(it.Date)
		require.True(t, p.Valid(), "item %s has invalid date %q", it.ID, it.Date)
		assert.Equal(t, p.Month, it.Month, "item %s", it.ID)
		assert.Equal(t, 2026, p.Year, "item %s", it.ID)
	}
}
