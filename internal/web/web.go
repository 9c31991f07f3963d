// Package web serves the calendar engine over HTTP. The engine stays
// pure; this layer owns request parsing, the per-year response cache and
// the auth/rate-limit middleware.
package web

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/nikhil2004nk/shra-calendar/internal/calendar"
	"github.com/nikhil2004nk/shra-calendar/internal/config"
	"github.com/nikhil2004nk/shra-calendar/internal/dataset"
	"github.com/nikhil2004nk/shra-calendar/internal/export"
	appLog "github.com/nikhil2004nk/shra-calendar/internal/log"
	"github.com/nikhil2004nk/shra-calendar/internal/model"
)

// Server provides the HTTP API over a dataset snapshot.
type Server struct {
	cfg *config.Config
	mux *http.ServeMux

	snapMu sync.RWMutex
	snap   *dataset.Snapshot

	// Per-year aggregation cache. The engine recomputes on every call by
	// design; memoization lives here at the edge, keyed by dataset version
	// and year so a snapshot swap naturally invalidates it.
	cacheMu   sync.RWMutex
	yearCache map[yearKey][]model.CalendarItem

	limiter *rate.Limiter
}

type yearKey struct {
	version uuid.UUID
	year    int
}

// NewServer constructs a Server over cfg and an initial snapshot.
func NewServer(cfg *config.Config, snap *dataset.Snapshot) *Server {
	s := &Server{
		cfg:       cfg,
		mux:       http.NewServeMux(),
		snap:      snap,
		yearCache: make(map[yearKey][]model.CalendarItem),
		limiter:   rate.NewLimiter(rate.Limit(50), 100),
	}
	s.registerRoutes()
	return s
}

// SetSnapshot swaps in a freshly loaded snapshot. Cached year sets for
// older versions are dropped.
func (s *Server) SetSnapshot(snap *dataset.Snapshot) {
	s.snapMu.Lock()
	s.snap = snap
	s.snapMu.Unlock()

	s.cacheMu.Lock()
	s.yearCache = make(map[yearKey][]model.CalendarItem)
	s.cacheMu.Unlock()

	appLog.Info("snapshot swapped", "version", snap.Version)
}

func (s *Server) snapshot() *dataset.Snapshot {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()
	return s.snap
}

// Handler returns the root http.Handler with rate limiting and, when
// configured, basic auth applied.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	h = s.rateLimitMiddleware(h)
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		h = s.basicAuthMiddleware(h)
	}
	return h
}

func (s *Server) basicAuthEnabled() bool {
	if s.cfg == nil || s.cfg.BasicAuth == nil {
		return false
	}
	return s.cfg.BasicAuth.Username != "" && s.cfg.BasicAuth.Password != ""
}

// basicAuthMiddleware wraps all handlers except /health.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="shra-calendar", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// rateLimitMiddleware applies a server-wide token bucket. /health is
// exempt so probes keep working under load.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" && !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/config", s.handleConfig)
	s.mux.HandleFunc("/api/calendar", s.handleCalendar)
	s.mux.HandleFunc("/api/calendar/grid", s.handleGrid)
	s.mux.HandleFunc("/api/items", s.handleItems)
	s.mux.HandleFunc("/api/filters", s.handleFilters)
	s.mux.HandleFunc("/api/months", s.handleMonths)
	s.mux.HandleFunc("/api/movies", s.handleMovies)
	s.mux.HandleFunc("/api/movies/", s.handleMovie)
	s.mux.HandleFunc("/api/download", s.handleDownload)
	s.mux.HandleFunc("/api/subscribe", s.handleSubscribe)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// itemsForYear returns the aggregated item set for one year, memoized per
// (snapshot version, year).
func (s *Server) itemsForYear(year int) []model.CalendarItem {
	snap := s.snapshot()
	key := yearKey{version: snap.Version, year: year}

	s.cacheMu.RLock()
	items, ok := s.yearCache[key]
	s.cacheMu.RUnlock()
	if ok {
		return items
	}

	items = calendar.ItemsForYear(snap.Sources(), year)

	s.cacheMu.Lock()
	s.yearCache[key] = items
	s.cacheMu.Unlock()

	return items
}

// resolveYear picks the year for a request: the "year" query parameter if
// present, else the configured default, else the current year. The second
// return is false when the parameter is present but not an integer.
func (s *Server) resolveYear(r *http.Request) (int, bool) {
	yearStr := r.URL.Query().Get("year")
	if yearStr == "" {
		if s.cfg.DefaultYear != 0 {
			return s.cfg.DefaultYear, true
		}
		return time.Now().Year(), true
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return 0, false
	}
	return year, true
}

// GET /api/config
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot()
	currentYear := s.cfg.DefaultYear
	if currentYear == 0 {
		currentYear = time.Now().Year()
	}

	resp := struct {
		WeekStart      string                `json:"weekStart"`
		CurrentYear    int                   `json:"currentYear"`
		AvailableYears []int                 `json:"availableYears"`
		EventTypes     []model.EventTypeMeta `json:"eventTypes"`
	}{
		WeekStart:      s.cfg.WeekStart,
		CurrentYear:    currentYear,
		AvailableYears: availableYears(snap, currentYear),
		EventTypes:     snap.EventTypes,
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /api/calendar?year=
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	year, ok := s.resolveYear(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}

	items := s.itemsForYear(year)
	resp := struct {
		Year  int                  `json:"year"`
		Items []model.CalendarItem `json:"items"`
	}{Year: year, Items: items}
	writeJSON(w, http.StatusOK, resp)
}

// GET /api/calendar/grid?year=
func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	year, ok := s.resolveYear(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}

	index := calendar.GroupByDate(s.itemsForYear(year))
	resp := struct {
		Year int                             `json:"year"`
		Days map[string][]model.CalendarItem `json:"days"`
	}{Year: year, Days: index}
	writeJSON(w, http.StatusOK, resp)
}

// GET /api/items?year=&q=&types=&months=&sort=&order=
func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	year, ok := s.resolveYear(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}

	q := r.URL.Query()
	opts := calendar.FilterOptions{
		Query:  q.Get("q"),
		Types:  parseTypes(q.Get("types")),
		SortBy: calendar.SortField(q.Get("sort")),
		Order:  calendar.SortOrder(q.Get("order")),
	}

	months, err := parseMonths(q.Get("months"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid months")
		return
	}
	opts.Months = months

	items := calendar.Filter(s.itemsForYear(year), opts)
	resp := struct {
		Year  int                  `json:"year"`
		Count int                  `json:"count"`
		Items []model.CalendarItem `json:"items"`
	}{Year: year, Count: len(items), Items: items}
	writeJSON(w, http.StatusOK, resp)
}

// GET /api/filters?year=
func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	year, ok := s.resolveYear(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}
	writeJSON(w, http.StatusOK, calendar.AvailableFilters(s.itemsForYear(year)))
}

// GET /api/months?year=
func (s *Server) handleMonths(w http.ResponseWriter, r *http.Request) {
	year, ok := s.resolveYear(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}

	resp := struct {
		Year   int               `json:"year"`
		Months []model.MonthMeta `json:"months"`
	}{Year: year, Months: calendar.MonthsForYear(s.snapshot().Months, year)}
	writeJSON(w, http.StatusOK, resp)
}

// GET /api/movies
func (s *Server) handleMovies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshot().Movies)
}

// GET /api/movies/{id}
func (s *Server) handleMovie(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/movies/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing movie id")
		return
	}

	movie := s.snapshot().MovieByID(id)
	if movie == nil {
		writeError(w, http.StatusNotFound, "movie not found")
		return
	}
	writeJSON(w, http.StatusOK, movie)
}

// GET /api/download?year=&format=ics|csv|json&types=
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	year, ok := s.resolveYear(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}

	items := s.itemsForYear(year)
	if types := parseTypes(r.URL.Query().Get("types")); len(types) > 0 {
		items = calendar.Filter(items, calendar.FilterOptions{Types: types})
	}

	switch r.URL.Query().Get("format") {
	case "ics":
		export.WriteICS(w, year, items)
	case "csv":
		export.WriteCSV(w, year, items)
	case "json":
		export.WriteJSON(w, year, items)
	default:
		writeError(w, http.StatusBadRequest, "invalid format")
	}
}

// GET /api/subscribe
func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	export.WriteSubscriptionICS(w, s.snapshot().Sources())
}

// availableYears collects the distinct years present across all source
// records, plus the current year, sorted descending.
func availableYears(snap *dataset.Snapshot, currentYear int) []int {
	set := map[int]bool{currentYear: true}

	add := func(date string) {
		if p := calendar.ParseDateParts(date); p.Valid() {
			set[p.Year] = true
		}
	}
	for _, it := range snap.Events {
		add(it.Date)
	}
	for _, it := range snap.Functions {
		add(it.Date)
	}
	for _, m := range snap.Movies {
		add(m.Date)
	}
	for _, a := range snap.Awards {
		add(a.Date)
	}
	for _, e := range snap.PastEvents {
		add(e.Date)
	}

	years := make([]int, 0, len(set))
	for y := range set {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

func parseTypes(s string) []model.ItemType {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	types := make([]model.ItemType, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			types = append(types, model.ItemType(p))
		}
	}
	return types
}

func parseMonths(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	months := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		m, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		months = append(months, m)
	}
	return months, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
