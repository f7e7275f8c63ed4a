package db

import (
	"context"

	"github.com/moosarra/nfl-survivor-bot/model"
)

// DB is the league and schedule store. Every method is scoped to a guild, nothing is ever shared
// between guilds.
type DB interface {
	GetPlayer(ctx context.Context, guildID, userID string) (*model.Player, error)
	ListPlayers(ctx context.Context, guildID string) ([]model.Player, error)
	// Adds the player to the guild's roster if they are not already on it. Returns true if the player
	// was added, false if they were already on the roster. Returns ErrRosterFull if the player is new
	// and the roster already has maxPlayers players. A maxPlayers <= 0 means no limit.
	JoinPlayer(ctx context.Context, guildID, userID string, maxPlayers int) (bool, error)
	// Sets the alive flag of an existing player, returns ErrPlayerNotFound if there is no such player.
	SetPlayerAlive(ctx context.Context, guildID, userID string, alive bool) error
	// Marks the player as alive, adding them to the roster if needed. Not limited by the roster size.
	RevivePlayer(ctx context.Context, guildID, userID string) error
	// Lists every guild that has players or a configured panel.
	ListGuilds(ctx context.Context) ([]string, error)

	// Saves the pick, replacing any earlier pick by the same user for the same week. The player is
	// added to the roster if needed, subject to maxPlayers. Returns ErrTeamAlreadyUsed if the user
	// picked the same team in a different week.
	SavePick(ctx context.Context, p *model.Pick, maxPlayers int) error
	// Every team the user has picked in any week other than exceptWeek. Pass 0 to get every week.
	GetUsedTeams(ctx context.Context, guildID, userID string, exceptWeek int) ([]string, error)
	// Picks for the week, the earliest pick first.
	GetWeekPicks(ctx context.Context, guildID string, week int) ([]model.Pick, error)
	// All picks for the user ordered by week.
	GetUserPicks(ctx context.Context, guildID, userID string) ([]model.Pick, error)
	// Sets the result of the week's picks, keyed by user id, eliminates the given users and records
	// the week as resolved, in a single transaction. Returns ErrWeekResolved without changing
	// anything if the week was already resolved.
	ApplyResults(ctx context.Context, guildID string, season, week int, results map[string]model.PickResult, eliminate []string) error

	// Saves the matchups, ignoring any that are already saved for the same guild, season, week and
	// teams. A known kickoff time replaces the stored one. Returns the number of new matchups.
	SaveMatchups(ctx context.Context, matchups []model.Matchup) (int, error)
	// Matchups for the week in the order they were saved.
	GetMatchups(ctx context.Context, guildID string, season, week int) ([]model.Matchup, error)

	SetPanelChannel(ctx context.Context, guildID string, season int, channelID string) error
	// Returns ErrPanelNotConfigured if no channel was set.
	GetPanelChannel(ctx context.Context, guildID string, season int) (string, error)
	ListPanelChannels(ctx context.Context, season int) ([]model.PanelConfig, error)
	// Records that the panel for the week was posted. Returns false if it had already been recorded.
	MarkPanelPosted(ctx context.Context, guildID string, season, week int, channelID string) (bool, error)
}
