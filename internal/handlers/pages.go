package handlers

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lehigh-university-libraries/dexsearch/internal/search"
	"github.com/lehigh-university-libraries/dexsearch/internal/ui"
)

func (h *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	snap := h.loader.Snapshot()

	var page ui.Page
	switch {
	case snap.Loading:
		page = ui.LoadingPage(h.loc)
	case snap.Err != nil:
		page = ui.StartupErrorPage(h.loc, snap.Err)
	default:
		page = ui.SearchPage(h.loc, session.State())
	}

	var buf bytes.Buffer
	if err := ui.RenderHTML(&buf, page); err != nil {
		h.writeError(w, "Failed to render page: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Unable to write page", "err", err)
	}
}

// HandleSearch runs one search for the session. The search input stays
// disabled until it completes; a second submission meanwhile gets 409.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	snap := h.loader.Snapshot()
	if !snap.Ready() {
		h.writeError(w, "Catalog not loaded", http.StatusServiceUnavailable)
		return
	}

	session := h.session(w, r)
	query := strings.TrimSpace(r.FormValue("q"))

	gen, ok := session.Begin(query)
	if !ok {
		h.writeError(w, h.loc.T(ui.MsgBusy), http.StatusConflict)
		return
	}

	// Fetches run to completion even if the browser goes away.
	ctx := context.WithoutCancel(r.Context())
	out := search.NewPipeline(snap.Index, h.fetcher, h.maxConcurrency).Search(ctx, query)

	if !session.Apply(gen, out) {
		slog.Info("Discarding stale search", "session_id", session.ID, "search_id", out.ID, "generation", gen)
	}

	redirectHome(w, r)
}

func (h *Handler) HandleShowDetail(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.writeError(w, "Invalid result index", http.StatusBadRequest)
		return
	}
	if !session.ShowDetail(index) {
		h.writeError(w, "Result not found", http.StatusNotFound)
		return
	}

	redirectHome(w, r)
}

func (h *Handler) HandleCloseDetail(w http.ResponseWriter, r *http.Request) {
	h.session(w, r).HideDetail()
	redirectHome(w, r)
}

func (h *Handler) HandleCloseError(w http.ResponseWriter, r *http.Request) {
	h.session(w, r).HideError()
	redirectHome(w, r)
}

// HandleReload discards the session state and fetches the catalog again.
// Other sessions keep searching the current index while the fetch runs.
func (h *Handler) HandleReload(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	session.Reset()
	h.loader.Reload(h.baseCtx)
	slog.Info("Reloading application state", "session_id", session.ID)
	redirectHome(w, r)
}
