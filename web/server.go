package web

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/moosarra/nfl-survivor-bot/controller"
	"github.com/rs/zerolog/log"
	"github.com/unrolled/render"
)

type Server struct {
	server *http.Server
}

func NewServer(port int, ctrl controller.C, clock clock.Clock) (*Server, error) {
	if port <= 0 {
		return nil, fmt.Errorf("invalid port: %d", port)
	}

	render := newRender()
	router := getRouter(ctrl, clock, render)

	s := &Server{
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		},
	}
	return s, nil
}

func (s *Server) ListenAndServe(shutdown chan bool, wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()

		// Wait for the shutdown signal and safely close the server.
		<-shutdown

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			log.Fatal().Err(err).Msg("fatal error shutting down server")
		}
	}()

	log.Info().Str("addr", s.server.Addr).Msg("status api is listening")
	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("fatal error with server")
	}
}

func newRender() *render.Render {
	return render.New(render.Options{
		IndentJSON: true,
	})
}
