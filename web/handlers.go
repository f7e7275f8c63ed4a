package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/itbasis/go-clock"
	"github.com/moosarra/nfl-survivor-bot/controller"
	"github.com/moosarra/nfl-survivor-bot/model"
	"github.com/rs/zerolog/log"
	"github.com/unrolled/render"
)

type playerResponse struct {
	UserID string    `json:"user_id"`
	Alive  bool      `json:"alive"`
	Joined time.Time `json:"joined"`
}

type standingsResponse struct {
	Alive      []playerResponse `json:"alive"`
	Eliminated []playerResponse `json:"eliminated"`
}

type pickResponse struct {
	UserID string    `json:"user_id"`
	Week   int       `json:"week"`
	Team   string    `json:"team"`
	MadeAt time.Time `json:"made_at"`
	Result string    `json:"result"`
}

type matchupResponse struct {
	Home    string     `json:"home"`
	Away    string     `json:"away"`
	Kickoff *time.Time `json:"kickoff,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func healthHandler(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func standingsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := ctrl.Standings(r.Context(), chi.URLParam(r, "guildID"))
		if err != nil {
			renderError(w, render, err)
			return
		}

		render.JSON(w, http.StatusOK, standingsResponse{
			Alive:      toPlayerResponses(s.Alive),
			Eliminated: toPlayerResponses(s.Eliminated),
		})
	}
}

func weekPicksHandler(ctrl controller.C, clock clock.Clock, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		week, ok := parseWeek(w, r, render)
		if !ok {
			return
		}

		picks, err := ctrl.WeekPicks(r.Context(), chi.URLParam(r, "guildID"), ctrl.Season(), week, clock.Now())
		if err != nil {
			renderError(w, render, err)
			return
		}
		render.JSON(w, http.StatusOK, toPickResponses(picks))
	}
}

func userPicksHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		picks, err := ctrl.UserHistory(r.Context(), chi.URLParam(r, "guildID"), chi.URLParam(r, "userID"))
		if err != nil {
			renderError(w, render, err)
			return
		}
		render.JSON(w, http.StatusOK, toPickResponses(picks))
	}
}

func weekTeamsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		week, ok := parseWeek(w, r, render)
		if !ok {
			return
		}

		matchups, err := ctrl.WeekTeams(r.Context(), chi.URLParam(r, "guildID"), ctrl.Season(), week)
		if err != nil {
			renderError(w, render, err)
			return
		}

		result := make([]matchupResponse, 0, len(matchups))
		for _, m := range matchups {
			mr := matchupResponse{Home: m.HomeTeam, Away: m.AwayTeam}
			if !m.Kickoff.IsZero() {
				k := m.Kickoff
				mr.Kickoff = &k
			}
			result = append(result, mr)
		}
		render.JSON(w, http.StatusOK, result)
	}
}

func parseWeek(w http.ResponseWriter, r *http.Request, render *render.Render) (int, bool) {
	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil || !model.ValidWeek(week) {
		render.JSON(w, http.StatusBadRequest, errorResponse{Error: "week must be between 1 and 18"})
		return 0, false
	}
	return week, true
}

func renderError(w http.ResponseWriter, render *render.Render, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"

	switch {
	case errors.Is(err, controller.ErrNoPicksYet):
		status, msg = http.StatusNotFound, "no picks yet"
	case errors.Is(err, controller.ErrNoMatchupsLoaded):
		status, msg = http.StatusNotFound, "no matchups loaded"
	case errors.Is(err, controller.ErrPicksHidden):
		status, msg = http.StatusForbidden, "picks are hidden until kickoff"
	default:
		log.Error().Err(err).Msg("error handling status request")
	}

	render.JSON(w, status, errorResponse{Error: msg})
}

func toPlayerResponses(players []model.Player) []playerResponse {
	result := make([]playerResponse, 0, len(players))
	for _, p := range players {
		result = append(result, playerResponse{UserID: p.UserID, Alive: p.Alive, Joined: p.Joined})
	}
	return result
}

func toPickResponses(picks []model.Pick) []pickResponse {
	result := make([]pickResponse, 0, len(picks))
	for _, p := range picks {
		result = append(result, pickResponse{
			UserID: p.UserID,
			Week:   p.Week,
			Team:   p.Team,
			MadeAt: p.MadeAt,
			Result: string(p.Result),
		})
	}
	return result
}
