// Package http exposes the JSON API: dashboard, ledger entries, recurring
// rules, and saving goals.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"budgetbuddy/internal/cache"
	"budgetbuddy/internal/core"
	"budgetbuddy/internal/middleware/security"
	"budgetbuddy/internal/middleware/trace"
	"budgetbuddy/internal/services"
)

const summaryCacheTTL = 30 * time.Second

type Server struct {
	http.Server

	ledger    *services.LedgerService
	rules     *services.RuleService
	goals     *services.GoalService
	processor *services.RecurrenceProcessor
	reporter  *services.Reporter

	rateLimiter *rateLimiter

	// Per-owner summary cache; invalidated on any mutation for the owner.
	summaryCache *cache.LRUCache[core.Summary]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// Deps bundles the services the server needs.
type Deps struct {
	Ledger    *services.LedgerService
	Rules     *services.RuleService
	Goals     *services.GoalService
	Processor *services.RecurrenceProcessor
	Reporter  *services.Reporter
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, deps Deps) *Server {
	mux := http.NewServeMux()

	s := &Server{
		ledger:       deps.Ledger,
		rules:        deps.Rules,
		goals:        deps.Goals,
		processor:    deps.Processor,
		reporter:     deps.Reporter,
		rateLimiter:  newRateLimiter(),
		summaryCache: cache.NewLRUCache[core.Summary](500, summaryCacheTTL),
		cacheManager: cache.NewManager(),
	}
	s.cacheManager.Register(s.summaryCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)

	mux.HandleFunc("GET /api/entries", s.handleListEntries)
	mux.HandleFunc("POST /api/entries", s.handleCreateEntry)
	mux.HandleFunc("DELETE /api/entries/{id}", s.handleDeleteEntry)

	mux.HandleFunc("GET /api/rules", s.handleListRules)
	mux.HandleFunc("POST /api/rules", s.handleCreateRule)
	mux.HandleFunc("DELETE /api/rules/{id}", s.handleDeleteRule)
	mux.HandleFunc("GET /api/rules/preview", s.handlePreviewRule)

	mux.HandleFunc("GET /api/goals", s.handleListGoals)
	mux.HandleFunc("POST /api/goals", s.handleCreateGoal)
	mux.HandleFunc("DELETE /api/goals/{id}", s.handleDeleteGoal)
	mux.HandleFunc("POST /api/goals/{id}/deposit", s.handleGoalDeposit)
	mux.HandleFunc("POST /api/goals/{id}/withdraw", s.handleGoalWithdraw)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware(extractClientIP)

	handler := tracer.Middleware(headers.Middleware(s.withRateLimit(mux)))

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// withRateLimit applies per-IP rate limiting to mutating requests.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && !s.rateLimiter.allow(extractClientIP(r)) {
			slog.WarnContext(r.Context(), "Rate limit exceeded",
				"client_ip", extractClientIP(r), "method", r.Method, "path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, r, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) invalidateSummary(owner string) {
	s.summaryCache.Delete(owner)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
