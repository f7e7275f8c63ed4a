package mockdb

import (
	"context"

	"github.com/moosarra/nfl-survivor-bot/model"
	"github.com/stretchr/testify/mock"
)

type DB struct {
	mock.Mock
}

func (db *DB) GetPlayer(ctx context.Context, guildID, userID string) (*model.Player, error) {
	args := db.Called(ctx, guildID, userID)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}

	return p, args.Error(1)
}

func (db *DB) ListPlayers(ctx context.Context, guildID string) ([]model.Player, error) {
	args := db.Called(ctx, guildID)

	var r []model.Player
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Player)
	}
	return r, args.Error(1)
}

func (db *DB) JoinPlayer(ctx context.Context, guildID, userID string, maxPlayers int) (bool, error) {
	args := db.Called(ctx, guildID, userID, maxPlayers)
	return args.Bool(0), args.Error(1)
}

func (db *DB) SetPlayerAlive(ctx context.Context, guildID, userID string, alive bool) error {
	args := db.Called(ctx, guildID, userID, alive)
	return args.Error(0)
}

func (db *DB) RevivePlayer(ctx context.Context, guildID, userID string) error {
	args := db.Called(ctx, guildID, userID)
	return args.Error(0)
}

func (db *DB) ListGuilds(ctx context.Context) ([]string, error) {
	args := db.Called(ctx)

	var r []string
	if args.Get(0) != nil {
		r = args.Get(0).([]string)
	}
	return r, args.Error(1)
}

func (db *DB) SavePick(ctx context.Context, p *model.Pick, maxPlayers int) error {
	args := db.Called(ctx, p, maxPlayers)
	return args.Error(0)
}

func (db *DB) GetUsedTeams(ctx context.Context, guildID, userID string, exceptWeek int) ([]string, error) {
	args := db.Called(ctx, guildID, userID, exceptWeek)

	var r []string
	if args.Get(0) != nil {
		r = args.Get(0).([]string)
	}
	return r, args.Error(1)
}

func (db *DB) GetWeekPicks(ctx context.Context, guildID string, week int) ([]model.Pick, error) {
	args := db.Called(ctx, guildID, week)

	var r []model.Pick
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Pick)
	}
	return r, args.Error(1)
}

func (db *DB) GetUserPicks(ctx context.Context, guildID, userID string) ([]model.Pick, error) {
	args := db.Called(ctx, guildID, userID)

	var r []model.Pick
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Pick)
	}
	return r, args.Error(1)
}

func (db *DB) ApplyResults(ctx context.Context, guildID string, season, week int, results map[string]model.PickResult, eliminate []string) error {
	args := db.Called(ctx, guildID, season, week, results, eliminate)
	return args.Error(0)
}

func (db *DB) SaveMatchups(ctx context.Context, matchups []model.Matchup) (int, error) {
	args := db.Called(ctx, matchups)
	return args.Int(0), args.Error(1)
}

func (db *DB) GetMatchups(ctx context.Context, guildID string, season, week int) ([]model.Matchup, error) {
	args := db.Called(ctx, guildID, season, week)

	var r []model.Matchup
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Matchup)
	}
	return r, args.Error(1)
}

func (db *DB) SetPanelChannel(ctx context.Context, guildID string, season int, channelID string) error {
	args := db.Called(ctx, guildID, season, channelID)
	return args.Error(0)
}

func (db *DB) GetPanelChannel(ctx context.Context, guildID string, season int) (string, error) {
	args := db.Called(ctx, guildID, season)
	return args.String(0), args.Error(1)
}

func (db *DB) ListPanelChannels(ctx context.Context, season int) ([]model.PanelConfig, error) {
	args := db.Called(ctx, season)

	var r []model.PanelConfig
	if args.Get(0) != nil {
		r = args.Get(0).([]model.PanelConfig)
	}
	return r, args.Error(1)
}

func (db *DB) MarkPanelPosted(ctx context.Context, guildID string, season, week int, channelID string) (bool, error) {
	args := db.Called(ctx, guildID, season, week, channelID)
	return args.Bool(0), args.Error(1)
}
