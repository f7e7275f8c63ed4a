package testutils

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/moosarra/nfl-survivor-bot/containers"
	"github.com/moosarra/nfl-survivor-bot/db"
	"github.com/moosarra/nfl-survivor-bot/model"
	"github.com/rs/zerolog/log"
)

const Season = 2025

var (
	// The Friday before week 1, nothing has kicked off yet.
	BeforeWeekOne = time.Date(2025, time.September, 5, 16, 0, 0, 0, time.UTC)
	// Kickoff of the first Sunday game in the fake ESPN data.
	WeekOneKickoff = time.Date(2025, time.September, 7, 17, 0, 0, 0, time.UTC)

	guildCtr = int32(0)
)

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     *clock.Mock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	clock := clock.NewMock()
	clock.Set(BeforeWeekOne)

	db, err := db.New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to db in test container")
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
	}
}

func (db *TestDB) Shutdown() {
	db.container.Shutdown()
}

// NewGuildID returns a guild id that no other test uses, so tests sharing a database don't see
// each other's data.
func NewGuildID() string {
	return fmt.Sprintf("test-guild-%04d", atomic.AddInt32(&guildCtr, 1))
}

// InsertWeekOneMatchups stores the week 1 games from the fake ESPN data without going through a
// refresh.
func InsertWeekOneMatchups(d db.DB, guildID string) error {
	matchups := []model.Matchup{
		{HomeTeam: model.TEAM_KC.String(), AwayTeam: model.TEAM_BUF.String(), Kickoff: WeekOneKickoff},
		{HomeTeam: model.TEAM_CLE.String(), AwayTeam: model.TEAM_CIN.String(), Kickoff: time.Date(2025, time.September, 7, 20, 25, 0, 0, time.UTC)},
		{HomeTeam: model.TEAM_CHI.String(), AwayTeam: model.TEAM_MIN.String(), Kickoff: time.Date(2025, time.September, 9, 0, 15, 0, 0, time.UTC)},
	}
	for i := range matchups {
		matchups[i].GuildID = guildID
		matchups[i].Season = Season
		matchups[i].Week = 1
	}
	_, err := d.SaveMatchups(context.Background(), matchups)
	return err
}
