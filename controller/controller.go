package controller

import (
	"context"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/moosarra/nfl-survivor-bot/db"
	"github.com/moosarra/nfl-survivor-bot/model"
	"github.com/moosarra/nfl-survivor-bot/platforms/espn"
)

// C encapsulates the survivor pool logic without worrying about the chat platform or any web layers.
// Every operation is scoped to a single guild.
type C interface {
	// Adds the user to the guild's pool. Joining twice is not an error.
	Join(ctx context.Context, guildID, userID string) error
	// Saves the user's pick for the week, replacing any earlier pick for the same week. Returns
	// ErrInvalidTeam if the team isn't one of the user's available teams at time now.
	SubmitPick(ctx context.Context, guildID, userID string, week int, team string, now time.Time) (*model.Pick, error)
	Standings(ctx context.Context, guildID string) (*model.Standings, error)
	// Picks for the week, the earliest first. Returns ErrNoPicksYet if nobody has picked.
	WeekPicks(ctx context.Context, guildID string, season, week int, now time.Time) ([]model.Pick, error)
	// The user's picks ordered by week. Returns ErrNoPicksYet if the user has never picked.
	UserHistory(ctx context.Context, guildID, userID string) ([]model.Pick, error)

	// The teams the user can still pick for the week at time now, in schedule order.
	AvailableTeams(ctx context.Context, guildID string, season, week int, userID string, now time.Time) ([]string, error)
	// Loads the week's games from the schedule provider. Returns the number of matchups saved.
	RefreshWeek(ctx context.Context, guildID string, season, week int) (int, error)
	// The week's matchups, refreshing from the schedule provider if none are loaded yet.
	WeekTeams(ctx context.Context, guildID string, season, week int) ([]model.Matchup, error)

	AdminEliminate(ctx context.Context, guildID, userID string) error
	AdminRevive(ctx context.Context, guildID, userID string) error
	SetPanelChannel(ctx context.Context, guildID, channelID string) error
	PanelChannel(ctx context.Context, guildID string) (string, error)

	// Sets the result of each of the week's picks and eliminates the losing players. winners is keyed
	// by canonical team name. Returns ErrWeekResolved if the week was already resolved.
	ResolveWeek(ctx context.Context, guildID string, season, week int, winners map[string]bool) (*model.Resolution, error)
	// Resolves the week from the final scores reported by the schedule provider. Returns
	// ErrResultsIncomplete if any of the week's games hasn't finished.
	ResolveWeekFromProvider(ctx context.Context, guildID string, season, week int) (*model.Resolution, error)

	Season() int
	CurrentWeek(now time.Time) int
	PanelWeek(now time.Time) int

	// Runs every scheduled job that is due at time now. Returns the names of the jobs that ran.
	RunDueJobs(ctx context.Context, a Announcer, now time.Time) []string
	RunScheduledJobs(frequency time.Duration, a Announcer, shutdown chan bool, wg *sync.WaitGroup)
}

type Config struct {
	Season                int
	MaxPlayers            int
	EliminateMissingPicks bool
	HidePicksUntilKickoff bool
}

type controller struct {
	clock clock.Clock
	espn  espn.Client
	db    db.DB
	cfg   Config

	jobsMu  sync.Mutex
	lastRun map[string]time.Time
}

func New(clock clock.Clock, espn espn.Client, db db.DB, cfg Config) (C, error) {
	c := &controller{
		clock:   clock,
		espn:    espn,
		db:      db,
		cfg:     cfg,
		lastRun: make(map[string]time.Time),
	}
	return c, nil
}

func (c *controller) Season() int {
	return c.cfg.Season
}

func (c *controller) CurrentWeek(now time.Time) int {
	return model.CurrentWeek(c.cfg.Season, now)
}

func (c *controller) PanelWeek(now time.Time) int {
	return model.PanelWeek(c.cfg.Season, now)
}
