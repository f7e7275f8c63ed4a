package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/moosarra/nfl-survivor-bot/model"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Days either side of the week's Sunday that are fetched from the schedule provider.
const windowDays = 2

func (c *controller) RefreshWeek(ctx context.Context, guildID string, season, week int) (int, error) {
	if !model.ValidWeek(week) {
		return 0, fmt.Errorf("RefreshWeek - invalid week %d", week)
	}

	games, _ := c.fetchWeek(ctx, season, week)

	matchups := make([]model.Matchup, 0, len(games))
	for _, g := range games {
		home := normalizeTeam(g.Home, guildID, week)
		away := normalizeTeam(g.Away, guildID, week)
		matchups = append(matchups, model.Matchup{
			GuildID:  guildID,
			Season:   season,
			Week:     week,
			HomeTeam: home,
			AwayTeam: away,
			Kickoff:  g.Kickoff,
		})
	}

	n, err := c.db.SaveMatchups(ctx, matchups)
	if err != nil {
		return 0, fmt.Errorf("error saving matchups for week %d: %w", week, err)
	}

	log.Info().Str("guild", guildID).Int("week", week).Int("games", len(games)).Int("new", n).Msg("refreshed week")
	return n, nil
}

func (c *controller) WeekTeams(ctx context.Context, guildID string, season, week int) ([]model.Matchup, error) {
	matchups, err := c.db.GetMatchups(ctx, guildID, season, week)
	if err != nil {
		return nil, err
	}
	if len(matchups) > 0 {
		return matchups, nil
	}

	if _, err := c.RefreshWeek(ctx, guildID, season, week); err != nil {
		return nil, err
	}

	matchups, err = c.db.GetMatchups(ctx, guildID, season, week)
	if err != nil {
		return nil, err
	}
	if len(matchups) == 0 {
		return nil, ErrNoMatchupsLoaded
	}
	return matchups, nil
}

// fetchWeek gets the games for every date in the week's window concurrently. A date that fails is
// logged and skipped, the number of failed dates is returned alongside the games. Games are ordered
// by date, then as the provider reported them.
func (c *controller) fetchWeek(ctx context.Context, season, week int) ([]model.Game, int) {
	dates := weekWindow(season, week)
	perDate := make([][]model.Game, len(dates))
	failed := make([]bool, len(dates))

	g, gctx := errgroup.WithContext(ctx)
	for i, d := range dates {
		i, d := i, d
		g.Go(func() error {
			games, err := c.espn.Scoreboard(gctx, d)
			if err != nil {
				// Skip the date, never fail the whole week
				log.Warn().Err(err).Time("date", d).Int("week", week).Msg("skipping scoreboard date")
				failed[i] = true
				return nil
			}
			perDate[i] = games
			return nil
		})
	}
	g.Wait()

	games := make([]model.Game, 0, 16)
	numFailed := 0
	for i := range dates {
		if failed[i] {
			numFailed++
		}
		games = append(games, perDate[i]...)
	}
	return games, numFailed
}

func weekWindow(season, week int) []time.Time {
	sunday := model.WeekSunday(season, week)
	dates := make([]time.Time, 0, 2*windowDays+1)
	for i := -windowDays; i <= windowDays; i++ {
		dates = append(dates, sunday.AddDate(0, 0, i))
	}
	return dates
}

func normalizeTeam(raw, guildID string, week int) string {
	name, ok := model.NormalizeTeamName(raw)
	if !ok {
		log.Warn().Str("guild", guildID).Int("week", week).Str("team", raw).Msg("unrecognized team name")
	}
	return name
}
