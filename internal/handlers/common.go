package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/lehigh-university-libraries/dexsearch/internal/catalog"
	"github.com/lehigh-university-libraries/dexsearch/internal/search"
	"github.com/lehigh-university-libraries/dexsearch/internal/storage"
	"github.com/lehigh-university-libraries/dexsearch/internal/ui"
)

const sessionCookie = "dexsearch_session"

// Options configures a Handler
type Options struct {
	Loader         *catalog.Loader
	Fetcher        search.Fetcher
	Localizer      *ui.Localizer
	MaxConcurrency int
	// SessionTTL is the idle time after which a browser session is dropped
	SessionTTL time.Duration
	// BaseContext is used for work that outlives a request, such as a reload
	// or the session sweeper
	BaseContext context.Context
}

type Handler struct {
	loader         *catalog.Loader
	fetcher        search.Fetcher
	loc            *ui.Localizer
	sessionStore   *storage.SessionStore
	maxConcurrency int
	baseCtx        context.Context
	router         chi.Router
}

func New(opts Options) *Handler {
	loc := opts.Localizer
	if loc == nil {
		loc = ui.NewLocalizer("en")
	}
	baseCtx := opts.BaseContext
	if baseCtx == nil {
		baseCtx = context.Background()
	}

	h := &Handler{
		loader:         opts.Loader,
		fetcher:        opts.Fetcher,
		loc:            loc,
		sessionStore:   storage.New(loc, opts.SessionTTL),
		maxConcurrency: opts.MaxConcurrency,
		baseCtx:        baseCtx,
		router:         chi.NewRouter(),
	}

	h.setupMiddleware()
	h.setupRoutes()

	go h.sessionStore.Run(baseCtx, 0)

	return h
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) setupMiddleware() {
	h.router.Use(middleware.RequestID)
	h.router.Use(middleware.RealIP)
	h.router.Use(requestLogger)
	h.router.Use(middleware.Recoverer)
}

func (h *Handler) setupRoutes() {
	h.router.Get("/", h.HandlePage)
	h.router.Post("/search", h.HandleSearch)
	h.router.Post("/results/{index}", h.HandleShowDetail)
	h.router.Post("/dialog/detail/close", h.HandleCloseDetail)
	h.router.Post("/dialog/error/close", h.HandleCloseError)
	h.router.Post("/reload", h.HandleReload)

	h.router.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Get("/catalog", h.HandleCatalogStatus)
		r.Get("/search", h.HandleAPISearch)
		r.Get("/pokemon/{name}", h.HandleAPIPokemon)
	})

	h.router.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message, "status", code)
	http.Error(w, message, code)
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, code int) {
	slog.Error(message, "status", code)
	h.writeJSON(w, code, map[string]string{"error": message})
}

// Session helpers
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *ui.Session {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil {
		id = c.Value
	}
	session, created := h.sessionStore.GetOrCreate(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    session.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		slog.Debug("Created session", "session_id", session.ID)
	}
	return session
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
