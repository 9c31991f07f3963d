// Package calendar implements the calendar item engine: date-key handling,
// anniversary generation, per-year aggregation, date indexing and
// filter/search/sort. Every function is a pure computation over its
// arguments; the package holds no state and performs no I/O.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// DateParts is the decomposition of a YYYY-MM-DD date key. The all-zero
// value is the sentinel for malformed input and means "invalid, skip".
type DateParts struct {
	Year  int
	Month int
	Day   int
}

// Valid reports whether all three components are non-zero.
func (p DateParts) Valid() bool {
	return p.Year != 0 && p.Month != 0 && p.Day != 0
}

// BuildDateKey formats a canonical YYYY-MM-DD key with zero-padded month
// and day. It is a pure formatting function: callers are responsible for
// supplying valid calendar components, day 31 in February is not rejected.
func BuildDateKey(year, month, day int) string {
	return fmt.Sprintf("%d-%02d-%02d", year, month, day)
}

// ParseDateParts splits a date key on "-" and expects exactly three
// numeric components. Malformed input (empty string, wrong segment count,
// non-numeric segment) yields the all-zero sentinel rather than an error.
func ParseDateParts(dateStr string) DateParts {
	segs := strings.Split(dateStr, "-")
	if len(segs) != 3 {
		return DateParts{}
	}

	year, err := strconv.Atoi(segs[0])
	if err != nil {
		return DateParts{}
	}
	month, err := strconv.Atoi(segs[1])
	if err != nil {
		return DateParts{}
	}
	day, err := strconv.Atoi(segs[2])
	if err != nil {
		return DateParts{}
	}

	return DateParts{Year: year, Month: month, Day: day}
}
