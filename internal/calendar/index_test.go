package calendar

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/nikhil2004nk/shra-calendar/internal/model"
)

func TestGroupByDate(t *testing.T) {
	items := []model.CalendarItem{
		{ID: "a", Date: "2026-04-26"},
		{ID: "b", Date: "2026-02-26"},
		{ID: "c", Date: "2026-04-26"},
	}

	index := GroupByDate(items)
	require.Len(t, index, 2)

	// Insertion order is preserved within a bucket.
	bucket := index["2026-04-26"]
	require.Len(t, bucket, 2)
	assert.Equal(t, "a", bucket[0].ID)
	assert.Equal(t, "c", bucket[1].ID)

	assert.Empty(t, GroupByDate(nil))
}

func TestGroupByDatePreservesCount(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 200).Draw(t, "n")
		items := make([]model.CalendarItem, n)
		for i := range items {
			month := rapid.IntRange(1, 12).Draw(t, fmt.Sprintf("month%d", i))
			day := rapid.IntRange(1, 28).Draw(t, fmt.Sprintf("day%d", i))
			items[i] = model.CalendarItem{
				ID:   fmt.Sprintf("it%d", i),
				Date: BuildDateKey(2026, month, day),
			}
		}

		total := 0
		for _, bucket := range GroupByDate(items) {
			total += len(bucket)
		}
		if total != n {
			t.Fatalf("index holds %d items, want %d", total, n)
		}
	})
}
