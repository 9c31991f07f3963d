package calendar

import (
	"sort"
	"strings"

	"github.com/nikhil2004nk/shra-calendar/internal/model"
)

// SortField selects the sort key for Filter results.
type SortField string

const (
	SortByDate  SortField = "date"
	SortByTitle SortField = "title"
	SortByType  SortField = "type"
)

// SortOrder selects ascending or descending order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FilterOptions are the predicates and ordering applied by Filter. The
// zero value of each field disables that predicate: an empty Types or
// Months list filters nothing, Year 0 disables the year check, an empty
// Query matches everything.
type FilterOptions struct {
	Query  string
	Types  []model.ItemType
	Months []int
	Year   int
	SortBy SortField // default SortByDate
	Order  SortOrder // default SortAsc
}

// Filter applies every predicate as an AND-conjunction and then sorts the
// survivors. The input slice is never mutated; the result is a fresh
// slice.
//
// Query matching is case-insensitive and conjunctive: the query is split
// on whitespace and an item matches only if every term is a substring of
// its search corpus.
func Filter(items []model.CalendarItem, opts FilterOptions) []model.CalendarItem {
	terms := strings.Fields(strings.ToLower(opts.Query))

	typeSet := make(map[model.ItemType]bool, len(opts.Types))
	for _, t := range opts.Types {
		typeSet[t] = true
	}
	monthSet := make(map[int]bool, len(opts.Months))
	for _, m := range opts.Months {
		monthSet[m] = true
	}

	out := make([]model.CalendarItem, 0, len(items))
	for _, it := range items {
		if len(typeSet) > 0 && !typeSet[it.Type] {
			continue
		}
		if len(monthSet) > 0 && !monthSet[it.Month] {
			continue
		}
		if opts.Year != 0 && ParseDateParts(it.Date).Year != opts.Year {
			continue
		}
		if len(terms) > 0 && !matchesAll(searchCorpus(it), terms) {
			continue
		}
		out = append(out, it)
	}

	sortItems(out, opts.SortBy, opts.Order)
	return out
}

// Filters holds the distinct values present in an item collection, for
// populating filter UI controls.
type Filters struct {
	Types []model.ItemType `json:"types"`
	Years []int            `json:"years"`
}

// AvailableFilters scans items once and returns the distinct type set
// sorted ascending and the distinct year set sorted descending. Items
// whose date does not parse contribute no year.
func AvailableFilters(items []model.CalendarItem) Filters {
	typeSet := make(map[model.ItemType]bool)
	yearSet := make(map[int]bool)

	for _, it := range items {
		typeSet[it.Type] = true
		if p := ParseDateParts(it.Date); p.Valid() {
			yearSet[p.Year] = true
		}
	}

	f := Filters{
		Types: make([]model.ItemType, 0, len(typeSet)),
		Years: make([]int, 0, len(yearSet)),
	}
	for t := range typeSet {
		f.Types = append(f.Types, t)
	}
	for y := range yearSet {
		f.Years = append(f.Years, y)
	}

	sort.Slice(f.Types, func(i, j int) bool { return f.Types[i] < f.Types[j] })
	sort.Sort(sort.Reverse(sort.IntSlice(f.Years)))
	return f
}

// searchCorpus is the space-joined, lowercased text a query is matched
// against: title, title2, type, description, and for items with meta the
// base movie id and original date.
func searchCorpus(it model.CalendarItem) string {
	parts := []string{it.Title, it.Title2, string(it.Type), it.Description}
	if it.Meta != nil {
		parts = append(parts, it.Meta.BaseMovieID, it.Meta.OriginalDate)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func matchesAll(corpus string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(corpus, term) {
			return false
		}
	}
	return true
}

// sortItems orders items in place with a stable sort, so equal keys keep
// their insertion order in both directions.
func sortItems(items []model.CalendarItem, field SortField, order SortOrder) {
	key := func(it model.CalendarItem) string {
		switch field {
		case SortByTitle:
			return it.Title
		case SortByType:
			return string(it.Type)
		default:
			// Date keys are zero-padded, so the lexicographic order is the
			// chronological order.
			return it.Date
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if order == SortDesc {
			return key(items[j]) < key(items[i])
		}
		return key(items[i]) < key(items[j])
	})
}
