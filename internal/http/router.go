package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/preston-bernstein/goal-light/internal/http/handlers"
	"github.com/preston-bernstein/goal-light/internal/http/middleware"
	"github.com/preston-bernstein/goal-light/internal/metrics"
)

// NewRouter registers the status routes behind recovery, real-IP and request
// logging middleware.
func NewRouter(handler *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Middleware(logger, recorder))
	r.Use(chimiddleware.Recoverer)

	r.Get("/", handler.Index)
	r.Get("/status", handler.Status)
	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)
	return r
}
