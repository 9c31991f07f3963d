package calendar

import "github.com/nikhil2004nk/shra-calendar/internal/model"

// GroupByDate indexes items by their date key in a single pass. Within a
// bucket, items keep the order they appeared in the input; no sorting is
// applied here, that is the caller's choice.
func GroupByDate(items []model.CalendarItem) map[string][]model.CalendarItem {
	index := make(map[string][]model.CalendarItem)
	for _, it := range items {
		index[it.Date] = append(index[it.Date], it)
	}
	return index
}
