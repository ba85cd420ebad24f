package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lehigh-university-libraries/dexsearch/internal/models"
	"github.com/lehigh-university-libraries/dexsearch/internal/search"
	"github.com/lehigh-university-libraries/dexsearch/internal/ui"
)

type catalogStatus struct {
	Ready      bool   `json:"ready"`
	Loading    bool   `json:"loading"`
	Refreshing bool   `json:"refreshing"`
	Count      int    `json:"count"`
	Error      string `json:"error,omitempty"`
}

type searchResponse struct {
	ID      string           `json:"id"`
	Query   string           `json:"query"`
	Status  search.Status    `json:"status"`
	Message string           `json:"message"`
	IsError bool             `json:"is_error"`
	Matched []string         `json:"matched"`
	Results []models.Pokemon `json:"results"`
	Error   string           `json:"error,omitempty"`
}

func (h *Handler) HandleCatalogStatus(w http.ResponseWriter, r *http.Request) {
	snap := h.loader.Snapshot()
	status := catalogStatus{
		Ready:      snap.Ready(),
		Loading:    snap.Loading,
		Refreshing: snap.Refreshing,
		Count:      snap.Index.Len(),
	}
	if snap.Err != nil {
		status.Error = snap.Err.Error()
	}
	h.writeJSON(w, http.StatusOK, status)
}

// HandleAPISearch runs a stateless search and returns the outcome as JSON
func (h *Handler) HandleAPISearch(w http.ResponseWriter, r *http.Request) {
	snap := h.loader.Snapshot()
	if !snap.Ready() {
		h.writeJSONError(w, "Catalog not loaded", http.StatusServiceUnavailable)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	out := search.NewPipeline(snap.Index, h.fetcher, h.maxConcurrency).Search(r.Context(), query)
	status := ui.StatusFor(h.loc, out.Status, len(out.Results))

	resp := searchResponse{
		ID:      out.ID,
		Query:   out.Query,
		Status:  out.Status,
		Message: status.Text,
		IsError: status.IsError,
		Matched: out.Matched,
		Results: out.Results,
		Error:   out.ErrorText(),
	}
	if resp.Matched == nil {
		resp.Matched = []string{}
	}
	if resp.Results == nil {
		resp.Results = []models.Pokemon{}
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleAPIPokemon(w http.ResponseWriter, r *http.Request) {
	name := strings.ToLower(chi.URLParam(r, "name"))

	pokemon, err := h.fetcher.FetchPokemon(r.Context(), name)
	if err != nil {
		h.writeJSONError(w, err.Error(), http.StatusBadGateway)
		return
	}

	h.writeJSON(w, http.StatusOK, pokemon)
}
