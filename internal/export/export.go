package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"

	appLog "github.com/nikhil2004nk/shra-calendar/internal/log"
	"github.com/nikhil2004nk/shra-calendar/internal/model"
)

// WriteCSV writes the given year's items as a CSV download with a fixed
// date,type,title,description header.
func WriteCSV(w http.ResponseWriter, year int, items []model.CalendarItem) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=shra-calendar_%d.csv", year))

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "type", "title", "description"}); err != nil {
		appLog.Error("csv export write failed", err)
		return
	}
	for _, it := range items {
		if err := cw.Write([]string{it.Date, string(it.Type), it.Title, it.Description}); err != nil {
			appLog.Error("csv export write failed", err)
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		appLog.Error("csv export flush failed", err)
	}
}

// WriteJSON writes the given year's items as a JSON download.
func WriteJSON(w http.ResponseWriter, year int, items []model.CalendarItem) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=shra-calendar_%d.json", year))

	payload := struct {
		Year  int                  `json:"year"`
		Items []model.CalendarItem `json:"items"`
	}{Year: year, Items: items}

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		appLog.Error("json export write failed", err)
	}
}
