package web

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/itbasis/go-clock"
	"github.com/moosarra/nfl-survivor-bot/controller"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, clock clock.Clock, render *render.Render) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/healthz", healthHandler(render))

	r.Route("/guilds/{guildID}", func(r chi.Router) {
		r.Get("/standings", standingsHandler(ctrl, render))
		r.Get("/users/{userID}/picks", userPicksHandler(ctrl, render))

		r.Route("/weeks/{week:\\d+}", func(r chi.Router) {
			r.Get("/picks", weekPicksHandler(ctrl, clock, render))
			r.Get("/teams", weekTeamsHandler(ctrl, render))
		})
	})

	return r
}
