package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/yourorg/ui-prompt-relay/internal/middleware"
	"github.com/yourorg/ui-prompt-relay/internal/relay"
	"github.com/yourorg/ui-prompt-relay/internal/store"
)

// History is the read side of the generation log.
type History interface {
	Recent(ctx context.Context, limit int) ([]store.Generation, error)
	Get(ctx context.Context, id string) (store.Generation, error)
}

type Server struct {
	Router http.Handler
}

// NewServer wires the routes. hist may be nil, in which case the history
// endpoints are not mounted.
func NewServer(rel *relay.Relay, hist History, upstreamTimeout time.Duration, logger zerolog.Logger) (*Server, error) {
	if rel == nil {
		return nil, errors.New("relay nil")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(logger))
	r.Use(middleware.AccessLog(logger))
	r.Use(middleware.CORS())

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", Generate(rel, upstreamTimeout))

		if hist != nil {
			r.Get("/generations", ListGenerations(hist))
			r.Get("/generations/{id}", GetGeneration(hist))
		}
	})

	return &Server{Router: r}, nil
}
