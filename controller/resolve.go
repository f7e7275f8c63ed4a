package controller

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/moosarra/nfl-survivor-bot/db"
	"github.com/moosarra/nfl-survivor-bot/model"
	"github.com/rs/zerolog/log"
)

func (c *controller) ResolveWeek(ctx context.Context, guildID string, season, week int, winners map[string]bool) (*model.Resolution, error) {
	picks, err := c.db.GetWeekPicks(ctx, guildID, week)
	if err != nil {
		return nil, err
	}
	players, err := c.db.ListPlayers(ctx, guildID)
	if err != nil {
		return nil, err
	}

	alive := make(map[string]bool, len(players))
	for _, p := range players {
		alive[p.UserID] = p.Alive
	}

	res := &model.Resolution{
		GuildID: guildID,
		Week:    week,
	}
	results := make(map[string]model.PickResult, len(picks))
	picked := make(map[string]bool, len(picks))
	for _, p := range picks {
		picked[p.UserID] = true
		if winners[p.Team] {
			p.Result = model.ResultWin
			res.Winners = append(res.Winners, p)
		} else {
			p.Result = model.ResultLoss
			res.Losers = append(res.Losers, p)
			if alive[p.UserID] {
				res.Eliminated = append(res.Eliminated, p.UserID)
			}
		}
		results[p.UserID] = p.Result
	}

	for _, p := range players {
		if p.Alive && !picked[p.UserID] {
			res.NoPick = append(res.NoPick, p.UserID)
		}
	}
	if c.cfg.EliminateMissingPicks {
		res.Eliminated = append(res.Eliminated, res.NoPick...)
	}
	slices.Sort(res.Eliminated)

	if err := c.db.ApplyResults(ctx, guildID, season, week, results, res.Eliminated); err != nil {
		if errors.Is(err, db.ErrWeekResolved) {
			return nil, ErrWeekResolved
		}
		return nil, err
	}

	log.Info().Str("guild", guildID).Int("season", season).Int("week", week).
		Int("winners", len(res.Winners)).Int("losers", len(res.Losers)).Int("eliminated", len(res.Eliminated)).
		Msg("week resolved")
	return res, nil
}

func (c *controller) ResolveWeekFromProvider(ctx context.Context, guildID string, season, week int) (*model.Resolution, error) {
	if !model.ValidWeek(week) {
		return nil, fmt.Errorf("ResolveWeekFromProvider - invalid week %d", week)
	}

	games, failed := c.fetchWeek(ctx, season, week)
	if failed > 0 || len(games) == 0 {
		return nil, ErrResultsIncomplete
	}

	winners, complete := winningTeams(games, guildID, week)
	if !complete {
		return nil, ErrResultsIncomplete
	}
	return c.ResolveWeek(ctx, guildID, season, week, winners)
}

// winningTeams returns the canonical names of the teams that won, and false if any game isn't final.
// A tie has no winner.
func winningTeams(games []model.Game, guildID string, week int) (map[string]bool, bool) {
	winners := make(map[string]bool, len(games))
	for _, g := range games {
		if !g.Completed {
			return nil, false
		}
		if g.Winner != "" {
			winners[normalizeTeam(g.Winner, guildID, week)] = true
		}
	}
	return winners, true
}
