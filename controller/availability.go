package controller

import (
	"context"
	"time"

	"github.com/moosarra/nfl-survivor-bot/model"
)

func (c *controller) AvailableTeams(ctx context.Context, guildID string, season, week int, userID string, now time.Time) ([]string, error) {
	matchups, err := c.WeekTeams(ctx, guildID, season, week)
	if err != nil {
		return nil, err
	}

	used, err := c.db.GetUsedTeams(ctx, guildID, userID, week)
	if err != nil {
		return nil, err
	}

	return filterAvailable(matchups, used, now), nil
}

// filterAvailable returns the canonical teams playing in matchups, home team first, that are not in
// used and haven't kicked off by now. Each team appears at most once. used must leave out the week's
// own pick so it can be made again.
func filterAvailable(matchups []model.Matchup, used []string, now time.Time) []string {
	usedSet := make(map[string]bool, len(used))
	for _, t := range used {
		usedSet[t] = true
	}

	seen := make(map[string]bool, len(matchups)*2)
	available := make([]string, 0, len(matchups)*2)
	for _, m := range matchups {
		started := m.Started(now)
		for _, team := range []string{m.HomeTeam, m.AwayTeam} {
			if seen[team] || !model.IsCanonical(team) {
				continue
			}
			seen[team] = true

			if usedSet[team] || started {
				continue
			}
			available = append(available, team)
		}
	}
	return available
}
