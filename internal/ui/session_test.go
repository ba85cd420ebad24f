package ui

import (
	"errors"
	"testing"

	"github.com/lehigh-university-libraries/dexsearch/internal/models"
	"github.com/lehigh-university-libraries/dexsearch/internal/search"
)

func TestSessionSearchLifecycle(t *testing.T) {
	s := NewSession("s1", NewLocalizer("en"))

	gen, ok := s.Begin("chu")
	if !ok {
		t.Fatal("Expected first search to start")
	}
	state := s.State()
	if !state.Busy || state.Status.Text != "Searching..." || state.Status.IsError {
		t.Errorf("Unexpected state while searching: %+v", state)
	}

	if _, ok := s.Begin("pik"); ok {
		t.Error("Expected a second search to be rejected while busy")
	}

	results := []models.Pokemon{{ID: 25, Name: "pikachu"}, {ID: 172, Name: "pichu"}, {ID: 26, Name: "raichu"}}
	if !s.Apply(gen, search.Outcome{Status: search.StatusSuccess, Results: results}) {
		t.Fatal("Expected outcome to be applied")
	}

	state = s.State()
	if state.Busy {
		t.Error("Expected input to be enabled again")
	}
	if state.Status.Text != "Found 3 Pokémon!" {
		t.Errorf("Expected count message, got %q", state.Status.Text)
	}
	if len(state.Cards) != 3 || state.Cards[2].Name != "raichu" {
		t.Errorf("Unexpected cards: %+v", state.Cards)
	}
}

func TestSessionErrorLeavesGridUnchanged(t *testing.T) {
	s := NewSession("s1", NewLocalizer("en"))

	gen, _ := s.Begin("chu")
	s.Apply(gen, search.Outcome{Status: search.StatusSuccess, Results: []models.Pokemon{{ID: 25, Name: "pikachu"}}})

	gen, _ = s.Begin("pik")
	s.Apply(gen, search.Outcome{Status: search.StatusError, Err: errors.New("failed to fetch pikachu: boom")})

	state := s.State()
	if !state.ErrorShown {
		t.Error("Expected error dialog to be shown")
	}
	if state.ErrorDetails != "failed to fetch pikachu: boom" {
		t.Errorf("Expected raw failure text, got %q", state.ErrorDetails)
	}
	if state.Status.Text != "Search failed!" || !state.Status.IsError {
		t.Errorf("Unexpected status: %+v", state.Status)
	}
	if len(state.Cards) != 1 {
		t.Errorf("Expected previous grid to stay, got %d cards", len(state.Cards))
	}

	s.HideError()
	if s.State().ErrorShown {
		t.Error("Expected error dialog to be hidden")
	}
}

func TestSessionDiscardsStaleOutcome(t *testing.T) {
	s := NewSession("s1", NewLocalizer("en"))

	gen, _ := s.Begin("chu")
	s.Reset()

	if s.Apply(gen, search.Outcome{Status: search.StatusSuccess, Results: []models.Pokemon{{Name: "pikachu"}}}) {
		t.Error("Expected stale outcome to be discarded")
	}
	if len(s.Results()) != 0 {
		t.Errorf("Expected no results after reset, got %v", s.Results())
	}

	if _, ok := s.Begin("pik"); !ok {
		t.Error("Expected reset to clear the busy flag")
	}
}

func TestSessionDetailDialog(t *testing.T) {
	s := NewSession("s1", NewLocalizer("en"))
	gen, _ := s.Begin("chu")
	s.Apply(gen, search.Outcome{Status: search.StatusSuccess, Results: []models.Pokemon{
		{ID: 25, Name: "pikachu", Types: []models.TypeSlot{{Slot: 1, Type: models.NamedResource{Name: "electric"}}}},
		{ID: 172, Name: "pichu"},
	}})

	if s.ShowDetail(5) {
		t.Error("Expected out of range index to be rejected")
	}

	if !s.ShowDetail(0) {
		t.Fatal("Expected detail to open")
	}
	state := s.State()
	if !state.DetailShown || state.Detail.Name != "pikachu" || state.Detail.TypeLines[0] != "Slot 1: electric" {
		t.Errorf("Unexpected detail state: %+v", state.Detail)
	}

	// The same dialog is reused for another selection.
	s.ShowDetail(1)
	if got := s.State().Detail.Name; got != "pichu" {
		t.Errorf("Expected pichu, got %s", got)
	}

	s.HideDetail()
	if s.State().DetailShown {
		t.Error("Expected detail dialog to be hidden")
	}
}

func TestSessionNoQueryKeepsGrid(t *testing.T) {
	s := NewSession("s1", NewLocalizer("en"))
	gen, _ := s.Begin("chu")
	s.Apply(gen, search.Outcome{Status: search.StatusSuccess, Results: []models.Pokemon{{Name: "pikachu"}}})

	gen, _ = s.Begin("")
	s.Apply(gen, search.Outcome{Status: search.StatusNoQuery})

	state := s.State()
	if state.Status.Text != "No query given." || !state.Status.IsError {
		t.Errorf("Unexpected status: %+v", state.Status)
	}
	if state.ErrorShown {
		t.Error("Expected no error dialog for a missing query")
	}
	if len(state.Cards) != 1 {
		t.Errorf("Expected grid to stay, got %d cards", len(state.Cards))
	}
}
