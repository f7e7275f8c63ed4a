package testutils

import (
	"embed"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

//go:embed espndata
var espndata embed.FS

const (
	// Dates the fake server fails for, in different ways.
	ESPNErrorDate     = "20250905"
	ESPNMalformedDate = "20250906"
)

type FakeESPNServer struct {
	s *httptest.Server
}

func NewFakeESPNServer() *FakeESPNServer {
	r := chi.NewRouter()
	r.Route("/apis/v2/sports/football/nfl", func(r chi.Router) {
		r.Get("/scoreboard", scoreboardHandler)
	})

	return &FakeESPNServer{
		s: httptest.NewServer(r),
	}
}

func (f *FakeESPNServer) Close() {
	f.s.Close()
}

func (f *FakeESPNServer) URL() string {
	return f.s.URL
}

func scoreboardHandler(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("dates")
	if date == ESPNErrorDate {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal error"))
		return
	}

	b, err := espndata.ReadFile(fmt.Sprintf("espndata/scoreboard_%s.json", date))
	if err != nil {
		// ESPN returns an empty scoreboard for dates without games
		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"events":[]}`))
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(b); err != nil {
		log.Error().Err(err).Str("date", date).Msg("error writing fake scoreboard")
	}
}
