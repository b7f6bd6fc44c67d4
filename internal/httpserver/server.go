// internal/httpserver/server.go
//
// HTTP server wiring for the catalog API.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Catalog endpoints: GET /games, GET /games/{id}, GET /games/{id}/review.
//   - Review of the day: GET /daily (see routes_daily.go).
//   - Admin: POST /auth/token, POST /games/{id}/refresh (see auth.go).
//
// Notes:
//   - The server never holds player sessions; guessing happens in the CLI.
//   - Catalog reads go through store.Store so memory and SQLite behave the same.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/steamguess/internal/game"
	"github.com/robalobadob/steamguess/internal/reviews"
	"github.com/robalobadob/steamguess/internal/store"
)

// Fetcher loads a catalog entry from an outside source (the Steam client).
type Fetcher interface {
	Entry(ctx context.Context, appID int) (game.GameEntry, error)
}

// Options configures a Server. Zero values fall back to development defaults.
type Options struct {
	ClientOrigin      string        // CORS origin; default http://localhost:5173
	JWTSecret         string        // HS256 key; default dev_secret_change_me
	TokenTTL          time.Duration // admin token lifetime; default 12h
	AdminPasswordHash string        // bcrypt hash; empty disables /auth/token
	DailySalt         string        // salt for the review of the day
	Rand              game.RandSource
	Now               func() time.Time
}

// Server bundles router, catalog store and the optional Steam fetcher.
type Server struct {
	r     *chi.Mux
	store store.Store
	steam Fetcher
	opts  Options

	rngMu sync.Mutex
}

// New constructs a Server, installs middleware, and registers routes.
// steam may be nil, in which case refresh answers 503.
func New(st store.Store, steam Fetcher, opts Options) *Server {
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	if opts.JWTSecret == "" {
		opts.JWTSecret = "dev_secret_change_me"
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 12 * time.Hour
	}
	if opts.DailySalt == "" {
		opts.DailySalt = "local_dev_salt"
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Server{r: chi.NewRouter(), store: st, steam: steam, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(requestLogger)
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"steamguess","endpoints":["/health","/games","/games/{id}","/games/{id}/review","/daily","POST /auth/token","POST /games/{id}/refresh"]}`))
	})
	s.r.Get("/health", s.handleHealth)

	s.r.Route("/games", func(r chi.Router) {
		r.Get("/", s.handleListGames)
		r.Get("/{id}", s.handleGetGame)
		r.Get("/{id}/review", s.handleRandomReview)
		r.With(s.requireAdmin()).Post("/{id}/refresh", s.handleRefresh)
	})
	s.mountDaily()
	s.mountAuth()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Handler exposes the router (useful for tests and custom servers).
func (s *Server) Handler() http.Handler { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.opts.ClientOrigin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request with zerolog.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("requestId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("http request")
	})
}

// ------------------------------ CATALOG ------------------------------------

// gameSummary is the list view of a catalog entry.
type gameSummary struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Reviews int    `json:"reviews"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.Catalog(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("health: load catalog")
		writeError(w, http.StatusServiceUnavailable, "store_unavailable")
		return
	}
	games, revs := reviews.Stats(c)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "games": games, "reviews": revs})
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.Catalog(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list games")
		writeError(w, http.StatusInternalServerError, "store_error")
		return
	}
	out := make([]gameSummary, 0, len(c))
	for _, e := range reviews.Entries(c) {
		out = append(out, gameSummary{ID: e.ID, Name: e.Name, Reviews: len(e.Reviews)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	e, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// reviewRes is returned by GET /games/{id}/review.
type reviewRes struct {
	ID     int    `json:"id"`
	Review string `json:"review"`
}

func (s *Server) handleRandomReview(w http.ResponseWriter, r *http.Request) {
	e, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	if len(e.Reviews) == 0 {
		writeError(w, http.StatusNotFound, "no_reviews")
		return
	}
	s.rngMu.Lock()
	i := s.opts.Rand.IntN(len(e.Reviews))
	s.rngMu.Unlock()
	writeJSON(w, http.StatusOK, reviewRes{ID: e.ID, Review: e.Reviews[i]})
}

// loadGame resolves {id} and writes the error response itself on failure.
func (s *Server) loadGame(w http.ResponseWriter, r *http.Request) (game.GameEntry, bool) {
	id, ok := parseID(w, r)
	if !ok {
		return game.GameEntry{}, false
	}
	e, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return game.GameEntry{}, false
	}
	if err != nil {
		log.Error().Err(err).Int("appId", id).Msg("get game")
		writeError(w, http.StatusInternalServerError, "store_error")
		return game.GameEntry{}, false
	}
	return e, true
}

// ------------------------------- small util --------------------------------

func parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
