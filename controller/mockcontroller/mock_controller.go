package mockcontroller

import (
	"context"
	"sync"
	"time"

	"github.com/moosarra/nfl-survivor-bot/controller"
	"github.com/moosarra/nfl-survivor-bot/model"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) Join(ctx context.Context, guildID, userID string) error {
	args := c.Called(ctx, guildID, userID)
	return args.Error(0)
}

func (c *C) SubmitPick(ctx context.Context, guildID, userID string, week int, team string, now time.Time) (*model.Pick, error) {
	args := c.Called(ctx, guildID, userID, week, team, now)

	var p *model.Pick
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Pick)
	}
	return p, args.Error(1)
}

func (c *C) Standings(ctx context.Context, guildID string) (*model.Standings, error) {
	args := c.Called(ctx, guildID)

	var s *model.Standings
	if args.Get(0) != nil {
		s = args.Get(0).(*model.Standings)
	}
	return s, args.Error(1)
}

func (c *C) WeekPicks(ctx context.Context, guildID string, season, week int, now time.Time) ([]model.Pick, error) {
	args := c.Called(ctx, guildID, season, week, now)

	var r []model.Pick
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Pick)
	}
	return r, args.Error(1)
}

func (c *C) UserHistory(ctx context.Context, guildID, userID string) ([]model.Pick, error) {
	args := c.Called(ctx, guildID, userID)

	var r []model.Pick
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Pick)
	}
	return r, args.Error(1)
}

func (c *C) AvailableTeams(ctx context.Context, guildID string, season, week int, userID string, now time.Time) ([]string, error) {
	args := c.Called(ctx, guildID, season, week, userID, now)

	var r []string
	if args.Get(0) != nil {
		r = args.Get(0).([]string)
	}
	return r, args.Error(1)
}

func (c *C) RefreshWeek(ctx context.Context, guildID string, season, week int) (int, error) {
	args := c.Called(ctx, guildID, season, week)
	return args.Int(0), args.Error(1)
}

func (c *C) WeekTeams(ctx context.Context, guildID string, season, week int) ([]model.Matchup, error) {
	args := c.Called(ctx, guildID, season, week)

	var r []model.Matchup
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Matchup)
	}
	return r, args.Error(1)
}

func (c *C) AdminEliminate(ctx context.Context, guildID, userID string) error {
	args := c.Called(ctx, guildID, userID)
	return args.Error(0)
}

func (c *C) AdminRevive(ctx context.Context, guildID, userID string) error {
	args := c.Called(ctx, guildID, userID)
	return args.Error(0)
}

func (c *C) SetPanelChannel(ctx context.Context, guildID, channelID string) error {
	args := c.Called(ctx, guildID, channelID)
	return args.Error(0)
}

func (c *C) PanelChannel(ctx context.Context, guildID string) (string, error) {
	args := c.Called(ctx, guildID)
	return args.String(0), args.Error(1)
}

func (c *C) ResolveWeek(ctx context.Context, guildID string, season, week int, winners map[string]bool) (*model.Resolution, error) {
	args := c.Called(ctx, guildID, season, week, winners)

	var r *model.Resolution
	if args.Get(0) != nil {
		r = args.Get(0).(*model.Resolution)
	}
	return r, args.Error(1)
}

func (c *C) ResolveWeekFromProvider(ctx context.Context, guildID string, season, week int) (*model.Resolution, error) {
	args := c.Called(ctx, guildID, season, week)

	var r *model.Resolution
	if args.Get(0) != nil {
		r = args.Get(0).(*model.Resolution)
	}
	return r, args.Error(1)
}

func (c *C) Season() int {
	args := c.Called()
	return args.Int(0)
}

func (c *C) CurrentWeek(now time.Time) int {
	args := c.Called(now)
	return args.Int(0)
}

func (c *C) PanelWeek(now time.Time) int {
	args := c.Called(now)
	return args.Int(0)
}

func (c *C) RunDueJobs(ctx context.Context, a controller.Announcer, now time.Time) []string {
	args := c.Called(ctx, a, now)

	var r []string
	if args.Get(0) != nil {
		r = args.Get(0).([]string)
	}
	return r
}

func (c *C) RunScheduledJobs(frequency time.Duration, a controller.Announcer, shutdown chan bool, wg *sync.WaitGroup) {
	c.Called(frequency, a, shutdown, wg)
	wg.Done()
}
