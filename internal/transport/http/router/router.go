package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/grabticket/bot/internal/config"
	"github.com/grabticket/bot/internal/transport/http/handlers"
	appmw "github.com/grabticket/bot/internal/transport/http/middleware"
)

// New builds the liveness-only HTTP surface. Every path answers 200 so the
// hosting platform's health probe is satisfied regardless of what it polls.
func New(z *handlers.HealthHandler, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(appmw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(appmw.AccessLog)

	if cfg.RLEnabled {
		r.Use(httprate.LimitByIP(cfg.RLLimit, cfg.RLWindow))
	}

	r.Get("/healthz", z.Live)
	r.NotFound(z.Live)
	r.MethodNotAllowed(z.Live)

	return r
}
