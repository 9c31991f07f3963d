// Package export renders calendar item collections into downloadable
// formats: ICS files, an ICS subscription feed with recurring
// anniversaries, CSV and JSON.
package export

import (
	"fmt"
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/nikhil2004nk/shra-calendar/internal/calendar"
	appLog "github.com/nikhil2004nk/shra-calendar/internal/log"
	"github.com/nikhil2004nk/shra-calendar/internal/model"
)

const (
	icsProductID = "-//shra-calendar//Calendar//EN"
	uidDomain    = "shra-calendar"
)

// WriteICS writes the given year's items as a downloadable ICS file of
// all-day events. Items whose date does not parse are skipped.
func WriteICS(w http.ResponseWriter, year int, items []model.CalendarItem) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetXWRCalName(fmt.Sprintf("Shraddha Kapoor Calendar %d", year))

	for _, it := range items {
		addAllDayEvent(cal, it)
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=shra-calendar_%d.ics", year))
	if _, err := fmt.Fprint(w, cal.Serialize()); err != nil {
		appLog.Error("ics export write failed", err)
	}
}

// WriteSubscriptionICS writes an ICS subscription feed. Static events and
// functions become one-off all-day events; movies, awards and past events
// become recurring all-day events anchored at their historical date with a
// yearly RRULE, so subscribed calendar apps project the anniversaries
// forward on their own.
func WriteSubscriptionICS(w http.ResponseWriter, src calendar.Sources) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetXWRCalName("Shraddha Kapoor Calendar")

	for _, it := range src.Events {
		addAllDayEvent(cal, it)
	}
	for _, it := range src.Functions {
		addAllDayEvent(cal, it)
	}

	for _, m := range src.Movies {
		addYearlyEvent(cal, fmt.Sprintf("%s-anniv", m.ID),
			fmt.Sprintf("Anniversary of %s", m.Title), m.Description, "", m.Date)
	}
	for _, a := range src.Awards {
		addYearlyEvent(cal, a.ID, a.Title, a.Description, "", a.Date)
	}
	for _, e := range src.PastEvents {
		addYearlyEvent(cal, fmt.Sprintf("past-event-%d", e.ID),
			e.Title, e.Description, e.Place, e.Date)
	}

	// Inline content plus a refresh hint; subscription feeds must not be
	// served as attachments.
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	if _, err := fmt.Fprint(w, cal.Serialize()); err != nil {
		appLog.Error("ics subscription write failed", err)
	}
}

func addAllDayEvent(cal *ical.Calendar, it model.CalendarItem) {
	start, err := time.Parse("2006-01-02", it.Date)
	if err != nil {
		appLog.Debug("skipping unparseable date in ics export", "id", it.ID, "date", it.Date)
		return
	}

	ev := cal.AddEvent(fmt.Sprintf("%s@%s", it.ID, uidDomain))
	ev.SetDtStampTime(time.Now().UTC())
	ev.SetAllDayStartAt(start)
	ev.SetAllDayEndAt(start.AddDate(0, 0, 1))
	ev.SetSummary(it.Title)
	if it.Description != "" {
		ev.SetDescription(it.Description)
	}
	if it.Meta != nil && it.Meta.Place != "" {
		ev.SetLocation(it.Meta.Place)
	}
}

func addYearlyEvent(cal *ical.Calendar, id, title, description, place, date string) {
	start, err := time.Parse("2006-01-02", date)
	if err != nil {
		appLog.Debug("skipping unparseable date in ics feed", "id", id, "date", date)
		return
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:       rrule.YEARLY,
		Bymonth:    []int{int(start.Month())},
		Bymonthday: []int{start.Day()},
	})
	if err != nil {
		appLog.Error("failed to build yearly rrule", err, "id", id, "date", date)
		return
	}

	ev := cal.AddEvent(fmt.Sprintf("%s@%s", id, uidDomain))
	ev.SetDtStampTime(time.Now().UTC())
	ev.SetAllDayStartAt(start)
	ev.SetAllDayEndAt(start.AddDate(0, 0, 1))
	ev.SetSummary(title)
	if description != "" {
		ev.SetDescription(description)
	}
	if place != "" {
		ev.SetLocation(place)
	}
	ev.AddRrule(rule.String())
}
