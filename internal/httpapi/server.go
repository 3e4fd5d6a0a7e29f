// Package httpapi serves a read-only JSON view of a store for presentation
// and reporting clients, plus the prometheus /metrics endpoint.
//
// The store has a single owner and no locking of its own. The server owns a
// mutex around every store access; anything else touching the same store
// while the server runs must go through Server.Do.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mesh-intelligence/flatshare/internal/store"
	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// shutdownTimeout bounds how long in-flight requests may run after the
// serve context is cancelled.
const shutdownTimeout = 10 * time.Second

// Server routes HTTP requests to store views.
type Server struct {
	mu       sync.Mutex
	store    *store.Store
	router   *chi.Mux
	logger   *slog.Logger
	gatherer prometheus.Gatherer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithGatherer sets the metrics source for /metrics. Defaults to
// prometheus.DefaultGatherer.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// New builds the router over st.
func New(st *store.Store, opts ...Option) *Server {
	s := &Server{
		store:    st,
		router:   chi.NewRouter(),
		logger:   slog.Default(),
		gatherer: prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(requestLogger(s.logger))

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.logger, http.StatusOK, map[string]string{"status": "ok"})
	})
	s.router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/session", s.view(s.session))
		r.Get("/users", s.view(func(st *store.Store) any { return st.Users() }))
		r.Get("/users/{id}", s.handleUser)
		r.Get("/households", s.view(func(st *store.Store) any { return st.Households() }))
		r.Get("/members", s.view(func(st *store.Store) any { return st.Members() }))
		r.Get("/shopping", s.view(func(st *store.Store) any { return st.ShoppingItems() }))
		r.Get("/tasks", s.view(func(st *store.Store) any { return st.Tasks() }))
		r.Get("/tickets", s.view(func(st *store.Store) any { return st.Tickets() }))
		r.Get("/events", s.view(func(st *store.Store) any { return st.UpcomingEvents(time.Now()) }))
		r.Get("/recipes", s.view(func(st *store.Store) any { return st.Recipes() }))
		r.Get("/mealplan", s.view(func(st *store.Store) any { return st.MealPlan() }))
		r.Get("/rewards", s.view(func(st *store.Store) any { return st.Rewards() }))
		r.Get("/pantry", s.view(func(st *store.Store) any { return st.Pantry() }))
		r.Get("/scenes", s.view(func(st *store.Store) any { return st.Scenes() }))
		r.Get("/balances", s.view(func(st *store.Store) any { return st.Balances() }))
		r.Get("/debts", s.view(func(st *store.Store) any { return st.DebtEdges() }))
		r.Get("/leaderboard", s.view(func(st *store.Store) any { return st.Leaderboard() }))
		r.Get("/costs", s.view(s.costs))
		r.Get("/log", s.view(func(st *store.Store) any { return st.Log() }))
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Do runs fn with exclusive access to the store.
func (s *Server) Do(fn func(st *store.Store)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.store)
}

// view adapts a store read to a JSON handler.
func (s *Server) view(read func(st *store.Store) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var out any
		s.Do(func(st *store.Store) { out = read(st) })
		writeJSON(w, s.logger, http.StatusOK, out)
	}
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var (
		u  types.User
		ok bool
	)
	s.Do(func(st *store.Store) { u, ok = st.User(id) })
	if !ok {
		writeError(w, s.logger, http.StatusNotFound, "not_found", fmt.Sprintf("user %q not found", id))
		return
	}
	writeJSON(w, s.logger, http.StatusOK, u)
}

type sessionView struct {
	User            *types.User      `json:"user"`
	Household       *types.Household `json:"household"`
	Impersonating   bool             `json:"impersonating"`
	Onboarding      float64          `json:"onboardingProgress"`
	MaintenanceMode bool             `json:"maintenanceMode"`
	Broadcast       string           `json:"broadcast,omitempty"`
}

func (s *Server) session(st *store.Store) any {
	sess := st.Session()
	return sessionView{
		User:            sess.User,
		Household:       sess.Household,
		Impersonating:   sess.IsImpersonating(),
		Onboarding:      st.OnboardingProgress(),
		MaintenanceMode: st.MaintenanceMode(),
		Broadcast:       st.Broadcast(),
	}
}

type costsView struct {
	Items []types.RecurringCost `json:"items"`
	Total float64               `json:"monthlyTotal"`
	Share float64               `json:"perMember"`
}

func (s *Server) costs(st *store.Store) any {
	return costsView{
		Items: st.RecurringCosts(),
		Total: st.MonthlyRecurringTotal(),
		Share: st.RecurringCostShare(),
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("http server stopped")
	return nil
}
