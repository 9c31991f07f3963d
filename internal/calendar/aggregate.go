package calendar

import (
	"strconv"
	"strings"

	"github.com/nikhil2004nk/shra-calendar/internal/model"
)

// Sources bundles the immutable source records the engine computes from.
// The engine never mutates them; callers may share one Sources value
// across concurrent calls.
type Sources struct {
	Events     []model.CalendarItem
	Functions  []model.CalendarItem
	Movies     []model.BaseMovie
	Awards     []model.Award
	PastEvents []model.PastEvent
}

// ItemsForYear computes the full item set for one year: static events and
// functions whose date falls in the year, followed by award anniversaries,
// movie anniversaries and past-event reminders, concatenated in that fixed
// order. The order only fixes the default display grouping.
//
// Static items are selected by string year-prefix comparison, so a
// malformed date naturally fails the check and is dropped. No
// de-duplication is performed: should two sources produce the same id,
// both survive.
func ItemsForYear(src Sources, year int) []model.CalendarItem {
	prefix := strconv.Itoa(year) + "-"

	items := make([]model.CalendarItem, 0,
		len(src.Events)+len(src.Functions)+len(src.Awards)+len(src.Movies)+len(src.PastEvents))

	for _, it := range src.Events {
		if strings.HasPrefix(it.Date, prefix) {
			items = append(items, it)
		}
	}
	for _, it := range src.Functions {
		if strings.HasPrefix(it.Date, prefix) {
			items = append(items, it)
		}
	}

	items = append(items, AwardAnniversaries(src.Awards, year)...)
	items = append(items, MovieAnniversaries(src.Movies, year)...)
	items = append(items, PastEventReminders(src.PastEvents, year)...)

	return items
}
