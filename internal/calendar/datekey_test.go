package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestBuildDateKey(t *testing.T) {
	assert.Equal(t, "2026-04-26", BuildDateKey(2026, 4, 26))
	assert.Equal(t, "2026-01-05", BuildDateKey(2026, 1, 5))
	assert.Equal(t, "999-12-31", BuildDateKey(999, 12, 31))

	// Pure formatting: calendar validity is the caller's problem.
	assert.Equal(t, "2026-02-31", BuildDateKey(2026, 2, 31))
}

func TestParseDateParts(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want DateParts
	}{
		{"valid", "2013-04-26", DateParts{Year: 2013, Month: 4, Day: 26}},
		{"unpadded", "2013-4-6", DateParts{Year: 2013, Month: 4, Day: 6}},
		{"empty", "", DateParts{}},
		{"two segments", "2013-04", DateParts{}},
		{"four segments", "2013-04-26-01", DateParts{}},
		{"non-numeric", "yyyy-mm-dd", DateParts{}},
		{"timestamp", "2013-04-26T00:00:00", DateParts{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDateParts(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want != DateParts{}, got.Valid())
		})
	}
}

func TestDateKeyRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		year := rapid.IntRange(1, 9999).Draw(t, "year")
		month := rapid.IntRange(1, 12).Draw(t, "month")
		day := rapid.IntRange(1, 31).Draw(t, "day")

		got := ParseDateParts(BuildDateKey(year, month, day))
		if got != (DateParts{Year: year, Month: month, Day: day}) {
			t.Fatalf("round trip mismatch: %v", got)
		}
	})
}
