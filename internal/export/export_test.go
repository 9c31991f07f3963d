package export

import (
	"encoding/csv"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhil2004nk/shra-calendar/internal/calendar"
	"github.com/nikhil2004nk/shra-calendar/internal/model"
)

func exportItems() []model.CalendarItem {
	return []model.CalendarItem{
		{ID: "e1", Title: "Birthday", Date: "2026-03-03", Month: 3, Type: model.TypeEvent, Description: "Fan day"},
		{ID: "a1", Title: "Premiere", Date: "2026-07-09", Month: 7, Type: model.TypeFunction},
		{ID: "bad", Title: "Broken", Date: "not-a-date", Type: model.TypeEvent},
	}
}

func TestWriteICS(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteICS(rec, 2026, exportItems())

	assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "shra-calendar_2026.ics")

	body := rec.Body.String()
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, "METHOD:PUBLISH")
	assert.Contains(t, body, "UID:e1@shra-calendar")
	assert.Contains(t, body, "UID:a1@shra-calendar")
	assert.Contains(t, body, "SUMMARY:Birthday")
	assert.Contains(t, body, "DTSTART;VALUE=DATE:20260303")
	assert.Contains(t, body, "DTEND;VALUE=DATE:20260304")

	// Unparseable dates never make it into the file.
	assert.NotContains(t, body, "bad@shra-calendar")
}

func TestWriteSubscriptionICS(t *testing.T) {
	src := calendar.Sources{
		Events: []model.CalendarItem{
			{ID: "e1", Title: "Birthday", Date: "2026-03-03", Type: model.TypeEvent},
		},
		Movies: []model.BaseMovie{
			{ID: "stree", Title: "Stree", Date: "2018-08-31"},
		},
		Awards: []model.Award{
			{ID: "fa-2015", Title: "Trophy", Date: "2015-01-31"},
		},
		PastEvents: []model.PastEvent{
			{ID: 3, Title: "Gala", Date: "2019-11-20", Place: "Mumbai", Type: "Cultural"},
		},
	}

	rec := httptest.NewRecorder()
	WriteSubscriptionICS(rec, src)

	assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Empty(t, rec.Header().Get("Content-Disposition"), "feeds are served inline")

	body := rec.Body.String()

	// One-off event, no recurrence.
	require.Contains(t, body, "UID:e1@shra-calendar")
	oneOff := eventBlock(t, body, "e1@shra-calendar")
	assert.NotContains(t, oneOff, "RRULE")

	// Anniversaries recur yearly from their historical date.
	for _, uid := range []string{"stree-anniv@shra-calendar", "fa-2015@shra-calendar", "past-event-3@shra-calendar"} {
		block := eventBlock(t, body, uid)
		assert.Contains(t, block, "RRULE:FREQ=YEARLY", uid)
	}

	stree := eventBlock(t, body, "stree-anniv@shra-calendar")
	assert.Contains(t, stree, "DTSTART;VALUE=DATE:20180831")
	assert.Contains(t, stree, "BYMONTH=8")
	assert.Contains(t, stree, "BYMONTHDAY=31")

	gala := eventBlock(t, body, "past-event-3@shra-calendar")
	assert.Contains(t, gala, "LOCATION:Mumbai")
}

// eventBlock returns the VEVENT containing the given UID.
func eventBlock(t *testing.T, body, uid string) string {
	t.Helper()
	for _, block := range strings.Split(body, "BEGIN:VEVENT") {
		if strings.Contains(block, "UID:"+uid) {
			return block[:strings.Index(block, "END:VEVENT")]
		}
	}
	t.Fatalf("no VEVENT with uid %s", uid)
	return ""
}

func TestWriteCSV(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteCSV(rec, 2026, exportItems())

	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "shra-calendar_2026.csv")

	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"date", "type", "title", "description"}, rows[0])
	assert.Equal(t, []string{"2026-03-03", "event", "Birthday", "Fan day"}, rows[1])
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, 2026, exportItems())

	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var payload struct {
		Year  int                  `json:"year"`
		Items []model.CalendarItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, 2026, payload.Year)
	assert.Len(t, payload.Items, 3)
}
