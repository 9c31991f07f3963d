package calendar

import (
	"time"

	"github.com/nikhil2004nk/shra-calendar/internal/model"
)

// MonthsForYear returns month metadata for the twelve months of year.
// Names and short names come from the bundled entries (matched by id,
// falling back to Go's English month names when an entry is missing);
// Days and FirstWeekday are always recomputed for the requested year, so
// leap years and weekday drift are handled for any target year.
//
// FirstWeekday follows time.Weekday: 0 = Sunday.
func MonthsForYear(bundled []model.MonthMeta, year int) []model.MonthMeta {
	byID := make(map[int]model.MonthMeta, len(bundled))
	for _, m := range bundled {
		byID[m.ID] = m
	}

	out := make([]model.MonthMeta, 0, 12)
	for m := time.January; m <= time.December; m++ {
		first := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)

		meta := model.MonthMeta{
			ID:        int(m),
			Name:      m.String(),
			ShortName: m.String()[:3],
		}
		if b, ok := byID[int(m)]; ok {
			if b.Name != "" {
				meta.Name = b.Name
			}
			if b.ShortName != "" {
				meta.ShortName = b.ShortName
			}
		}

		// Last day of the month: first day of the next month minus one day.
		meta.Days = first.AddDate(0, 1, -1).Day()
		meta.FirstWeekday = int(first.Weekday())

		out = append(out, meta)
	}

	return out
}
