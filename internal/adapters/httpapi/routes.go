// Package httpapi exposes the demon list services over HTTP as JSON.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/example/demonlist/internal/ports/primary"
)

// Services are the primary ports the API serves.
type Services struct {
	Demons    primary.DemonService
	Players   primary.PlayerService
	Integrity primary.IntegrityService
}

// SetupRoutes builds the router for the public API.
func SetupRoutes(s Services, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestContext(logger))
	r.Use(middleware.Recoverer)

	r.Route("/api/v2/demons", func(r chi.Router) {
		r.Post("/", CreateDemon(s.Demons, logger))
		r.Get("/listed/", ListDemons(s.Demons, logger))
		r.Get("/{id}/", GetDemon(s.Demons, logger))
		r.Patch("/{id}/", UpdateDemon(s.Demons, logger))
		r.Post("/{id}/creators/", AddCreator(s.Demons, logger))
		r.Delete("/{id}/creators/{player}/", RemoveCreator(s.Demons, logger))
	})

	r.Get("/api/v1/demons/{position}/", GetDemonByPosition(s.Demons, logger))

	r.Route("/api/v1/players", func(r chi.Router) {
		r.Get("/", ListPlayers(s.Players, logger))
		r.Get("/{id}/", GetPlayer(s.Players, logger))
	})

	r.Get("/healthz", Healthz(s.Integrity, logger))
	return r
}
