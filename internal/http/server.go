package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	applog "daytrack/internal/log"
	"daytrack/internal/middleware/ratelimit"
	"daytrack/internal/middleware/security"
	"daytrack/internal/middleware/trace"
	"daytrack/internal/services"
)

// Server wires the JSON API over the service layer.
type Server struct {
	http.Server

	tasks    *services.TaskService
	expenses *services.ExpenseService
	reports  *services.ReportService
	users    *services.UserService
	prop     *services.Propagator

	// loc interprets date path parameters; day boundaries downstream
	// use the same location.
	loc *time.Location

	limiter      *ratelimit.Limiter
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, loc *time.Location, tasks *services.TaskService, expenses *services.ExpenseService, reports *services.ReportService, users *services.UserService, prop *services.Propagator) *Server {
	s := &Server{
		tasks:    tasks,
		expenses: expenses,
		reports:  reports,
		users:    users,
		prop:     prop,
		loc:      loc,
		limiter:  ratelimit.NewLimiter(ratelimit.DefaultConfig()),
	}

	r := chi.NewRouter()

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	resolver := security.NewClientIPResolver()
	clientIP := resolver.ExtractClientIP
	tracer := trace.NewMiddleware(clientIP)

	httpLogger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: applog.ComponentHTTP,
	})

	r.Use(chimw.Recoverer)
	r.Use(tracer.Middleware)
	r.Use(applog.Middleware(httpLogger))
	r.Use(applog.RequestIDMiddleware(func(req *http.Request) string {
		return trace.GetRequestID(req.Context())
	}))
	r.Use(headers.Middleware)

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handleHealth)

		// Mutations are rate limited per client IP.
		limited := s.limiter.Middleware(clientIP, nil)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/{email}/{date}", s.handleDayTasks)
			r.With(limited).Post("/", s.handleCreateTask)
			r.With(limited).Put("/{id}", s.handleUpdateTask)
			r.With(limited).Delete("/{id}", s.handleDeleteTask)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Get("/{email}/{date}", s.handleDayExpenses)
			r.With(limited).Post("/", s.handleCreateExpense)
			r.With(limited).Put("/{id}", s.handleUpdateExpense)
			r.With(limited).Delete("/{id}", s.handleDeleteExpense)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/daily/{email}/{date}", s.handleDailyReport)
			r.Get("/monthly/{email}/{year}/{month}", s.handleMonthlyReport)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(limited).Post("/", s.handleRegisterUser)
			r.With(limited).Post("/register", s.handleRegisterUser)
		})
	})

	s.Server = http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Shutdown stops the rate limiter's cleanup goroutine along with the
// HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.limiter != nil {
			s.limiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
