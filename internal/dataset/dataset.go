// Package dataset loads the bundled JSON datasets into an immutable
// snapshot. The data is embedded at build time; a directory override lets
// deployments ship updated files without rebuilding, with per-file
// fallback to the embedded copies.
package dataset

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/nikhil2004nk/shra-calendar/internal/calendar"
	appLog "github.com/nikhil2004nk/shra-calendar/internal/log"
	"github.com/nikhil2004nk/shra-calendar/internal/model"
)

//go:embed data/*.json
var embedded embed.FS

const (
	fileEvents     = "events.json"
	fileFunctions  = "functions.json"
	fileMovies     = "movies.json"
	fileAwards     = "awards.json"
	filePastEvents = "past-events.json"
	fileMonths     = "months.json"
	fileEventTypes = "event-types.json"
)

// Snapshot is one immutable load of every dataset. Version changes on
// every load and serves as the memoization key for caches layered on top
// of the engine; the engine itself never caches.
type Snapshot struct {
	Version    uuid.UUID
	Events     []model.CalendarItem
	Functions  []model.CalendarItem
	Movies     []model.BaseMovie
	Awards     []model.Award
	PastEvents []model.PastEvent
	Months     []model.MonthMeta
	EventTypes []model.EventTypeMeta
}

// Sources exposes the snapshot in the shape the engine consumes.
func (s *Snapshot) Sources() calendar.Sources {
	return calendar.Sources{
		Events:     s.Events,
		Functions:  s.Functions,
		Movies:     s.Movies,
		Awards:     s.Awards,
		PastEvents: s.PastEvents,
	}
}

// MovieByID returns the base movie record with the given id, or nil.
func (s *Snapshot) MovieByID(id string) *model.BaseMovie {
	for i := range s.Movies {
		if s.Movies[i].ID == id {
			return &s.Movies[i]
		}
	}
	return nil
}

// Load reads every dataset and returns a fresh snapshot. dir == "" reads
// the embedded copies only; otherwise files present in dir override the
// embedded ones, file by file.
func Load(dir string) (*Snapshot, error) {
	snap := &Snapshot{Version: uuid.New()}

	if err := readJSON(dir, fileEvents, &snap.Events); err != nil {
		return nil, err
	}
	if err := readJSON(dir, fileFunctions, &snap.Functions); err != nil {
		return nil, err
	}
	if err := readJSON(dir, fileMovies, &snap.Movies); err != nil {
		return nil, err
	}
	if err := readJSON(dir, fileAwards, &snap.Awards); err != nil {
		return nil, err
	}
	if err := readJSON(dir, filePastEvents, &snap.PastEvents); err != nil {
		return nil, err
	}
	if err := readJSON(dir, fileMonths, &snap.Months); err != nil {
		return nil, err
	}
	if err := readJSON(dir, fileEventTypes, &snap.EventTypes); err != nil {
		return nil, err
	}

	normalizeItems(snap.Events, "events")
	normalizeItems(snap.Functions, "functions")

	appLog.Info("datasets loaded",
		"version", snap.Version,
		"events", len(snap.Events),
		"functions", len(snap.Functions),
		"movies", len(snap.Movies),
		"awards", len(snap.Awards),
		"past_events", len(snap.PastEvents),
	)

	return snap, nil
}

// normalizeItems recomputes Month from Date for every raw item. The month
// carried by upstream data is never trusted, so the month/date invariant
// holds no matter what the files say. Duplicate ids within one source are
// logged but kept.
func normalizeItems(items []model.CalendarItem, source string) {
	seen := make(map[string]bool, len(items))

	for i := range items {
		items[i].Month = calendar.ParseDateParts(items[i].Date).Month

		if seen[items[i].ID] {
			appLog.Error("duplicate id in dataset",
				errors.New("id not unique"),
				"source", source, "id", items[i].ID)
		}
		seen[items[i].ID] = true
	}
}

func readJSON(dir, name string, v any) error {
	data, err := readFile(dir, name)
	if err != nil {
		return fmt.Errorf("dataset %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("dataset %s: %w", name, err)
	}
	return nil
}

func readFile(dir, name string) ([]byte, error) {
	if dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		appLog.Debug("dataset override missing, using embedded copy", "file", name, "dir", dir)
	}
	return embedded.ReadFile("data/" + name)
}
