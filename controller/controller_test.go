package controller

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/moosarra/nfl-survivor-bot/model"
	"github.com/moosarra/nfl-survivor-bot/platforms/espn"
	"github.com/moosarra/nfl-survivor-bot/testutils"
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

func defaultConfig() Config {
	return Config{
		Season:                testutils.Season,
		MaxPlayers:            12,
		EliminateMissingPicks: true,
	}
}

// newTestController returns a controller backed by the test database and the fake ESPN server.
func newTestController(t *testing.T, cfg Config) C {
	tc := testutils.NewTestController(testDB)
	t.Cleanup(tc.Close)

	ctrl, err := New(tc.Clock, espn.NewForTest(tc.ESPNURL()), testDB.DB, cfg)
	if err != nil {
		t.Fatalf("error creating controller: %v", err)
	}
	return ctrl
}

func errorsEqual(e1, e2 error) bool {
	if e1 == nil && e2 == nil {
		return true
	}
	if e1 == nil || e2 == nil {
		return false
	}
	return e1.Error() == e2.Error()
}

type fakeAnnouncer struct {
	mu     sync.Mutex
	panels []string
	recaps []*model.Resolution
	err    error
}

func (a *fakeAnnouncer) PostPanel(ctx context.Context, guildID, channelID string, week int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.panels = append(a.panels, fmt.Sprintf("%s/%s/%d", guildID, channelID, week))
	return a.err
}

func (a *fakeAnnouncer) PostRecap(ctx context.Context, guildID, channelID string, res *model.Resolution) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.recaps = append(a.recaps, res)
	return a.err
}
