package ui

import (
	"sync"
	"time"

	"github.com/lehigh-university-libraries/dexsearch/internal/models"
	"github.com/lehigh-university-libraries/dexsearch/internal/search"
)

// Session is the UI state of one browser
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	loc        *Localizer
	generation uint64
	busy       bool
	query      string
	status     StatusView
	results    []models.Pokemon
	detail     *DetailDialog
	errDialog  *ErrorDialog
}

// PageState is a copy of the session state used for rendering
type PageState struct {
	Query        string
	Busy         bool
	Status       StatusView
	Cards        []Card
	Detail       DetailView
	DetailShown  bool
	ErrorDetails string
	ErrorShown   bool
}

func NewSession(id string, l *Localizer) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		loc:       l,
		detail:    NewDetailDialog(l),
		errDialog: NewErrorDialog(),
	}
}

// Begin marks a search as running and returns its generation.
// It returns false while another search of this session is still running.
func (s *Session) Begin(query string) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return 0, false
	}
	s.busy = true
	s.generation++
	s.query = query
	s.status = StatusFor(s.loc, search.StatusSearching, 0)
	return s.generation, true
}

// Apply installs the outcome of the search started with generation gen.
// Outcomes of superseded generations are dropped and Apply returns false.
// Only a successful search replaces the result grid.
func (s *Session) Apply(gen uint64, out search.Outcome) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	s.busy = false
	s.status = StatusFor(s.loc, out.Status, len(out.Results))

	switch out.Status {
	case search.StatusSuccess:
		s.results = out.Results
	case search.StatusError:
		s.errDialog.Show(out.ErrorText())
	}
	return true
}

// Reset discards all state; in-flight searches become stale
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.busy = false
	s.query = ""
	s.status = StatusView{}
	s.results = nil
	s.detail = NewDetailDialog(s.loc)
	s.errDialog = NewErrorDialog()
}

// ShowDetail opens the detail dialog for the i-th result
func (s *Session) ShowDetail(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.results) {
		return false
	}
	s.detail.Show(s.results[i])
	return true
}

func (s *Session) HideDetail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detail.Hide()
}

func (s *Session) HideError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errDialog.Hide()
}

// Generation returns the generation of the latest search or reset
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Results returns the current result set
func (s *Session) Results() []models.Pokemon {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Pokemon, len(s.results))
	copy(out, s.results)
	return out
}

// State returns a rendering copy of the session
func (s *Session) State() PageState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return PageState{
		Query:        s.query,
		Busy:         s.busy,
		Status:       s.status,
		Cards:        CardsFor(s.results),
		Detail:       s.detail.View(),
		DetailShown:  s.detail.Shown(),
		ErrorDetails: s.errDialog.Details(),
		ErrorShown:   s.errDialog.Shown(),
	}
}
