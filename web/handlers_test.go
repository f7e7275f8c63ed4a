package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/moosarra/nfl-survivor-bot/controller"
	"github.com/moosarra/nfl-survivor-bot/controller/mockcontroller"
	"github.com/moosarra/nfl-survivor-bot/model"
	"github.com/moosarra/nfl-survivor-bot/platforms/espn"
	"github.com/moosarra/nfl-survivor-bot/testutils"
	"github.com/stretchr/testify/mock"
)

// A global testDB instance to use for all of the tests instead of setting up a new one each time.
var testDB *testutils.TestDB

// TestMain controls the main for the tests and allows for setup and shutdown of the tests
func TestMain(m *testing.M) {
	defer func() {
		// Catch all panics to make sure the shutdown is successfully run
		if r := recover(); r != nil {
			if testDB != nil {
				testDB.Shutdown()
			}
			fmt.Printf("panic - %v\n", r)
		}
	}()

	// Setup the global testDB variable
	testDB = testutils.NewTestDB()
	defer testDB.Shutdown()

	code := m.Run()
	os.Exit(code)
}

var now = testutils.BeforeWeekOne

func newMockServer(ctrl controller.C) *httptest.Server {
	c := clock.NewMock()
	c.Set(now)
	return httptest.NewServer(getRouter(ctrl, c, newRender()))
}

func get(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("error making request: %v", err)
	}
	defer resp.Body.Close()

	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("error decoding response: %v", err)
		}
	}
	return resp.StatusCode
}

func TestHealthHandler(t *testing.T) {
	server := newMockServer(&mockcontroller.C{})
	defer server.Close()

	var body map[string]string
	if status := get(t, server.URL+"/healthz", &body); status != http.StatusOK {
		t.Errorf("unexpected status code. Got: %d", status)
	}
	if body["status"] != "ok" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestStandingsHandler(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("Standings", mock.Anything, "g1").Return(&model.Standings{
		Alive:      []model.Player{{UserID: "u1", Alive: true}},
		Eliminated: []model.Player{{UserID: "u2"}},
	}, nil)

	server := newMockServer(ctrl)
	defer server.Close()

	var body standingsResponse
	if status := get(t, server.URL+"/guilds/g1/standings", &body); status != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", status)
	}
	if len(body.Alive) != 1 || body.Alive[0].UserID != "u1" || !body.Alive[0].Alive {
		t.Errorf("unexpected alive players: %v", body.Alive)
	}
	if len(body.Eliminated) != 1 || body.Eliminated[0].UserID != "u2" {
		t.Errorf("unexpected eliminated players: %v", body.Eliminated)
	}
	ctrl.AssertExpectations(t)
}

func TestWeekPicksHandler_errors(t *testing.T) {
	tests := map[string]struct {
		err  error
		want int
	}{
		"no picks":  {err: controller.ErrNoPicksYet, want: http.StatusNotFound},
		"hidden":    {err: controller.ErrPicksHidden, want: http.StatusForbidden},
		"store err": {err: errors.New("connection refused"), want: http.StatusInternalServerError},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := &mockcontroller.C{}
			ctrl.On("Season").Return(2025)
			ctrl.On("WeekPicks", mock.Anything, "g1", 2025, 3, mock.AnythingOfType("time.Time")).Return(nil, tc.err)

			server := newMockServer(ctrl)
			defer server.Close()

			var body errorResponse
			if status := get(t, server.URL+"/guilds/g1/weeks/3/picks", &body); status != tc.want {
				t.Errorf("expected status %d, got %d", tc.want, status)
			}
			if body.Error == "" {
				t.Errorf("expected an error message")
			}
		})
	}
}

func TestWeekPicksHandler_success(t *testing.T) {
	madeAt := time.Date(2025, time.September, 6, 12, 0, 0, 0, time.UTC)
	ctrl := &mockcontroller.C{}
	ctrl.On("Season").Return(2025)
	ctrl.On("WeekPicks", mock.Anything, "g1", 2025, 1, mock.AnythingOfType("time.Time")).Return([]model.Pick{
		{UserID: "u1", Week: 1, Team: "Buffalo Bills", MadeAt: madeAt, Result: model.ResultPending},
	}, nil)

	server := newMockServer(ctrl)
	defer server.Close()

	var body []pickResponse
	if status := get(t, server.URL+"/guilds/g1/weeks/1/picks", &body); status != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", status)
	}

	expected := pickResponse{UserID: "u1", Week: 1, Team: "Buffalo Bills", MadeAt: madeAt, Result: "pending"}
	if len(body) != 1 || body[0].UserID != expected.UserID || body[0].Team != expected.Team ||
		!body[0].MadeAt.Equal(madeAt) || body[0].Result != expected.Result {
		t.Errorf("unexpected picks: %v", body)
	}
}

func TestWeekHandlers_badWeek(t *testing.T) {
	tests := map[string]string{
		"picks week 0":  "/guilds/g1/weeks/0/picks",
		"teams week 19": "/guilds/g1/weeks/19/teams",
	}

	for name, path := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := &mockcontroller.C{}
			server := newMockServer(ctrl)
			defer server.Close()

			if status := get(t, server.URL+path, nil); status != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", status)
			}
			ctrl.AssertNotCalled(t, "WeekPicks", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			ctrl.AssertNotCalled(t, "WeekTeams", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUserPicksHandler_noPicks(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("UserHistory", mock.Anything, "g1", "u1").Return(nil, controller.ErrNoPicksYet)

	server := newMockServer(ctrl)
	defer server.Close()

	if status := get(t, server.URL+"/guilds/g1/users/u1/picks", nil); status != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", status)
	}
}

func TestWeekTeamsHandler_noMatchups(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("Season").Return(2025)
	ctrl.On("WeekTeams", mock.Anything, "g1", 2025, 5).Return(nil, controller.ErrNoMatchupsLoaded)

	server := newMockServer(ctrl)
	defer server.Close()

	if status := get(t, server.URL+"/guilds/g1/weeks/5/teams", nil); status != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", status)
	}
}

func TestStatusAPI_integration(t *testing.T) {
	testCtrl := testutils.NewTestController(testDB)
	defer testCtrl.Close()

	ctrl, err := controller.New(testCtrl.Clock, espn.NewForTest(testCtrl.ESPNURL()), testDB.DB, controller.Config{
		Season:     testutils.Season,
		MaxPlayers: 12,
	})
	if err != nil {
		t.Fatalf("error creating controller: %v", err)
	}

	guildID := testutils.NewGuildID()
	if err := testutils.InsertWeekOneMatchups(testDB.DB, guildID); err != nil {
		t.Fatalf("error inserting matchups: %v", err)
	}
	if _, err := ctrl.SubmitPick(context.Background(), guildID, "u1", 1, "Kansas City Chiefs", testCtrl.Clock.Now()); err != nil {
		t.Fatalf("error submitting pick: %v", err)
	}

	server := httptest.NewServer(getRouter(ctrl, testCtrl.Clock, newRender()))
	defer server.Close()

	var teams []matchupResponse
	if status := get(t, server.URL+"/guilds/"+guildID+"/weeks/1/teams", &teams); status != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", status)
	}
	if len(teams) != 3 || teams[0].Home != "Kansas City Chiefs" || teams[0].Kickoff == nil {
		t.Errorf("unexpected teams: %v", teams)
	}

	var standings standingsResponse
	if status := get(t, server.URL+"/guilds/"+guildID+"/standings", &standings); status != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", status)
	}
	if len(standings.Alive) != 1 || standings.Alive[0].UserID != "u1" {
		t.Errorf("unexpected standings: %v", standings)
	}

	var picks []pickResponse
	if status := get(t, server.URL+"/guilds/"+guildID+"/users/u1/picks", &picks); status != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", status)
	}
	if len(picks) != 1 || picks[0].Team != "Kansas City Chiefs" {
		t.Errorf("unexpected picks: %v", picks)
	}
}
