package calendar

import (
	"fmt"

	"github.com/nikhil2004nk/shra-calendar/internal/model"
)

// pastEventTypes maps the source category labels of past-event records to
// calendar item types. Unrecognized labels fall back to TypeEvent.
var pastEventTypes = map[string]model.ItemType{
	"Film":                model.TypeFilmEvent,
	"Fashion":             model.TypeFashionEvent,
	"Cultural":            model.TypeCulturalEvent,
	"Social":              model.TypeSocialEvent,
	"Awards":              model.TypeAwardEvent,
	"Event":               model.TypeEvent,
	"International Event": model.TypeInternationalEvent,
}

// MovieAnniversaries derives one anniversary item per movie for
// targetYear. A movie contributes nothing in its own release year or
// earlier; "years elapsed" is plain calendar-year subtraction, not a
// day-accurate age. The item's date is the release month/day transposed
// into targetYear, and its month is recomputed from that transposed date.
//
// Regeneration for the same year is idempotent: the id encodes the target
// year, so each (movie, year) pair maps to exactly one id.
func MovieAnniversaries(movies []model.BaseMovie, targetYear int) []model.CalendarItem {
	items := make([]model.CalendarItem, 0, len(movies))

	for _, m := range movies {
		p := ParseDateParts(m.Date)
		if !p.Valid() {
			continue
		}
		if targetYear <= p.Year {
			continue
		}

		years := targetYear - p.Year
		items = append(items, model.CalendarItem{
			ID:          fmt.Sprintf("%s-anniv-%d", m.ID, targetYear),
			Title:       fmt.Sprintf("%d years of %s", years, m.Title),
			Date:        BuildDateKey(targetYear, p.Month, p.Day),
			Month:       p.Month,
			Type:        model.TypeMovieAnniversary,
			Description: fmt.Sprintf("Celebrating %d years since the release of %q.", years, m.Title),
			Meta: &model.Meta{
				BaseMovieID:      m.ID,
				AnniversaryYears: years,
			},
		})
	}

	return items
}

// AwardAnniversaries derives one item per award for targetYear. Unlike
// movies, the award's own year is included; AnniversaryYears stays zero
// (and is therefore suppressed) when no full year has elapsed.
func AwardAnniversaries(awards []model.Award, targetYear int) []model.CalendarItem {
	items := make([]model.CalendarItem, 0, len(awards))

	for _, a := range awards {
		p := ParseDateParts(a.Date)
		if !p.Valid() {
			continue
		}
		if targetYear < p.Year {
			continue
		}

		item := model.CalendarItem{
			ID:           fmt.Sprintf("%s-%d", a.ID, targetYear),
			Title:        a.Title,
			Date:         BuildDateKey(targetYear, p.Month, p.Day),
			OriginalDate: a.Date,
			Month:        p.Month,
			Type:         model.TypeFunction,
			Description:  a.Description,
			Meta: &model.Meta{
				OriginalDate: a.Date,
			},
		}
		if yearsAgo := targetYear - p.Year; yearsAgo > 0 {
			item.Meta.AnniversaryYears = yearsAgo
		}
		items = append(items, item)
	}

	return items
}

// PastEventReminders derives one reminder per past event for targetYear,
// with the same own-year inclusion policy as awards. The source category
// label is mapped through pastEventTypes.
func PastEventReminders(events []model.PastEvent, targetYear int) []model.CalendarItem {
	items := make([]model.CalendarItem, 0, len(events))

	for _, e := range events {
		p := ParseDateParts(e.Date)
		if !p.Valid() {
			continue
		}
		if targetYear < p.Year {
			continue
		}

		mapped, ok := pastEventTypes[e.Type]
		if !ok {
			mapped = model.TypeEvent
		}

		item := model.CalendarItem{
			ID:           fmt.Sprintf("past-event-%d-%d", e.ID, targetYear),
			Title:        e.Title,
			Date:         BuildDateKey(targetYear, p.Month, p.Day),
			OriginalDate: e.Date,
			Month:        p.Month,
			Type:         mapped,
			Description:  e.Description,
			Meta: &model.Meta{
				OriginalDate: e.Date,
				Place:        e.Place,
			},
		}
		if yearsAgo := targetYear - p.Year; yearsAgo > 0 {
			item.Meta.AnniversaryYears = yearsAgo
		}
		items = append(items, item)
	}

	return items
}
