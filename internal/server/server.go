package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/habitquest/internal/character"
	"github.com/osse101/habitquest/internal/database"
	"github.com/osse101/habitquest/internal/handler"
	"github.com/osse101/habitquest/internal/logger"
	"github.com/osse101/habitquest/internal/metrics"
	"github.com/osse101/habitquest/internal/middleware"
	"github.com/osse101/habitquest/internal/task"
)

// Options carries the settings the HTTP layer needs from config
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	Location       *time.Location // game timezone for audit dates
}

type Server struct {
	httpServer       *http.Server
	dbPool           database.Pool
	taskService      task.Service
	characterService character.Service
}

// NewServer creates a new Server instance
func NewServer(opts Options, dbPool database.Pool, taskService task.Service, characterService character.Service) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, dbPool, taskService, characterService),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		dbPool:           dbPool,
		taskService:      taskService,
		characterService: characterService,
	}
}

// NewRouter builds the full route tree with its middleware stack.
// Chi middleware executes in the order defined (outermost to innermost).
func NewRouter(opts Options, dbPool database.Pool, taskService task.Service, characterService character.Service) http.Handler {
	r := chi.NewRouter()

	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	taskHandler := handler.NewTaskHandler(taskService, opts.Location, time.Now)
	characterHandler := handler.NewCharacterHandler(characterService)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/shop/rewards", characterHandler.HandleListRewards)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/audit", taskHandler.HandleRunAudit)
		})

		// Routes acting on behalf of a player
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.HandleListTasks)
				r.Post("/", taskHandler.HandleCreateTask)
				r.Get("/due", taskHandler.HandleListDueToday)
				r.Patch("/{taskID}", taskHandler.HandleUpdateTask)
				r.Delete("/{taskID}", taskHandler.HandleDeleteTask)

				r.Group(func(r chi.Router) {
					r.Use(middleware.EnsureCharacter(characterService))
					r.Post("/{taskID}/complete", taskHandler.HandleCompleteTask)
					r.Post("/{taskID}/habit", taskHandler.HandleLogHabit)
					r.Post("/{taskID}/streak", taskHandler.HandleUpdateStreak)
				})
			})
			r.Get("/streaks", taskHandler.HandleListStreaks)

			r.Route("/analytics", func(r chi.Router) {
				r.Get("/xp", taskHandler.HandleXPHistory)
				r.Get("/tasks", taskHandler.HandleTaskStats)
				r.Get("/streaks", taskHandler.HandleStreakData)
			})

			r.Get("/character", characterHandler.HandleGetSheet)
			r.Get("/character/lifetime", characterHandler.HandleGetLifetimeLevel)
			r.Post("/shop/purchase", characterHandler.HandlePurchase)
		})
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func isQuietPath(path string) bool {
	for _, prefix := range QuietPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
