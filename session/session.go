package session

import (
	"errors"
	"log/slog"

	"github.com/freightlens/freightlens/dataset"
	"github.com/freightlens/freightlens/engine"
)

// ============================================================================
// SESSION — explicit application state
// ============================================================================
// One Session holds everything a rendering pass needs: the normalized table,
// the active filter selections, the comparison month picks, and the
// authentication flag. No package-level globals; views receive the session
// by reference and never mutate it.
// ============================================================================

var (
	// ErrNotAuthenticated is returned by data accessors before a successful
	// Authenticate call.
	ErrNotAuthenticated = errors.New("session: not authenticated")

	// ErrBadPassword is returned when the supplied password does not match
	// the configured shared secret. Failed attempts carry no lockout.
	ErrBadPassword = errors.New("session: invalid password")

	// ErrNoData is returned by accessors before a table has been loaded.
	ErrNoData = errors.New("session: no dataset loaded")
)

// Session is the full application state for one user.
type Session struct {
	table         *dataset.Table
	filters       engine.Filters
	baseMonth     *engine.Month
	compareMonth  *engine.Month
	authenticated bool
	secret        string
}

// New creates an unauthenticated session gated by the given shared secret.
// An empty secret disables the gate entirely.
func New(secret string) *Session {
	return &Session{
		authenticated: secret == "",
		secret:        secret,
	}
}

// Authenticate checks the password against the shared secret. Plain equality;
// repeated failures are allowed.
func (s *Session) Authenticate(password string) error {
	if password != s.secret {
		slog.Debug("authentication rejected")
		return ErrBadPassword
	}
	s.authenticated = true
	return nil
}

// Authenticated reports whether the gate has been passed.
func (s *Session) Authenticated() bool {
	return s.authenticated
}

// Load replaces the session's dataset and resets selections that depend on
// it. Filters and month picks from a previous dataset do not carry over.
func (s *Session) Load(t *dataset.Table) {
	s.table = t
	s.filters = engine.Filters{}
	s.baseMonth = nil
	s.compareMonth = nil
	slog.Info("dataset loaded", "rows", t.Len())
}

// HasData reports whether a table has been loaded.
func (s *Session) HasData() bool {
	return s.table != nil
}

// Caps returns the loaded table's capabilities, or nil before Load.
func (s *Session) Caps() dataset.Capabilities {
	if s.table == nil {
		return nil
	}
	return s.table.Caps
}

// SetFilters replaces the active sidebar selections.
func (s *Session) SetFilters(f engine.Filters) {
	s.filters = f
}

// Filters returns the active sidebar selections.
func (s *Session) Filters() engine.Filters {
	return s.filters
}

// SelectBaseMonth sets the comparison base ("Main") month. Last write wins.
func (s *Session) SelectBaseMonth(m engine.Month) {
	s.baseMonth = &m
}

// SelectCompareMonth sets the comparison month. Last write wins.
func (s *Session) SelectCompareMonth(m engine.Month) {
	s.compareMonth = &m
}

// ComparisonMonths returns the selected base and compare months, either of
// which may be nil when not yet picked.
func (s *Session) ComparisonMonths() (base, compare *engine.Month) {
	return s.baseMonth, s.compareMonth
}

// Unfiltered returns a view over the whole table, bypassing sidebar filters.
// The new-entity detector and the comparison engine read through this.
func (s *Session) Unfiltered() (engine.View, error) {
	if !s.authenticated {
		return engine.View{}, ErrNotAuthenticated
	}
	if s.table == nil {
		return engine.View{}, ErrNoData
	}
	return engine.NewView(s.table), nil
}

// Filtered returns the view with the active sidebar filters applied.
func (s *Session) Filtered() (engine.View, error) {
	v, err := s.Unfiltered()
	if err != nil {
		return engine.View{}, err
	}
	return engine.Apply(v, s.filters), nil
}
