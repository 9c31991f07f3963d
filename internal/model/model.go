package model

// ItemType classifies a calendar item. The set is closed; every item
// produced by normalization or generation carries exactly one of these.
type ItemType string

const (
	TypeMovie              ItemType = "movie"
	TypeEvent              ItemType = "event"
	TypeFunction           ItemType = "function"
	TypeMovieAnniversary   ItemType = "movie-anniversary"
	TypeFilmEvent          ItemType = "film-event"
	TypeFashionEvent       ItemType = "fashion-event"
	TypeCulturalEvent      ItemType = "cultural-event"
	TypeSocialEvent        ItemType = "social-event"
	TypeAwardEvent         ItemType = "award-event"
	TypeInternationalEvent ItemType = "international-event"

	// TypeAward is a legacy tag kept for dataset compatibility; nothing
	// produces it anymore.
	TypeAward ItemType = "award"
)

// Meta carries optional structured extras for derived items.
type Meta struct {
	// BaseMovieID is a back-reference (not ownership) to the source movie
	// record of a movie anniversary.
	BaseMovieID string `json:"baseMovieId,omitempty"`
	// AnniversaryYears is the number of whole calendar years elapsed since
	// the source date. Zero means "not an anniversary count" and is
	// suppressed in JSON.
	AnniversaryYears int    `json:"anniversaryYears,omitempty"`
	OriginalDate     string `json:"originalDate,omitempty"`
	Place            string `json:"place,omitempty"`
}

// CalendarItem is the universal record every source normalizes into and
// every generator produces.
//
// Date is a canonical YYYY-MM-DD key, expressed in the target year for
// derived items. Month is derived from Date, never supplied independently.
type CalendarItem struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Title2       string   `json:"title2,omitempty"`
	Date         string   `json:"date"`
	OriginalDate string   `json:"originalDate,omitempty"`
	Month        int      `json:"month"`
	Type         ItemType `json:"type"`
	Description  string   `json:"description"`
	Meta         *Meta    `json:"meta,omitempty"`
}

// BaseMovie is a source movie record with its historical release date.
type BaseMovie struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Date        string   `json:"date"` // release date, YYYY-MM-DD
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Director    string   `json:"director,omitempty"`
	Cast        []string `json:"cast,omitempty"`
	Duration    int      `json:"duration,omitempty"` // minutes
}

// Award is a source award record.
type Award struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// PastEvent is a raw past-event record. Type is the source category label
// (Film, Fashion, Cultural, Social, Awards, Event, International Event),
// mapped to an ItemType during generation.
type PastEvent struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Place       string `json:"place"`
}

// MonthMeta describes one month of a concrete year.
//
// FirstWeekday is the weekday index of day 1 and follows Go's
// time.Weekday numbering: 0 = Sunday through 6 = Saturday.
type MonthMeta struct {
	ID           int    `json:"id"` // 1-12
	Name         string `json:"name"`
	ShortName    string `json:"shortName"`
	Days         int    `json:"days"`
	FirstWeekday int    `json:"firstWeekday"`
}

// EventTypeMeta is display metadata for one ItemType, used to populate
// filter and legend controls.
type EventTypeMeta struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}
