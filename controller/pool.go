package controller

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/moosarra/nfl-survivor-bot/db"
	"github.com/moosarra/nfl-survivor-bot/model"
	"github.com/rs/zerolog/log"
)

func (c *controller) Join(ctx context.Context, guildID, userID string) error {
	added, err := c.db.JoinPlayer(ctx, guildID, userID, c.cfg.MaxPlayers)
	if err != nil {
		if errors.Is(err, db.ErrRosterFull) {
			return ErrCapacityExceeded
		}
		return err
	}

	if added {
		log.Info().Str("guild", guildID).Str("user", userID).Msg("player joined")
	}
	return nil
}

func (c *controller) SubmitPick(ctx context.Context, guildID, userID string, week int, team string, now time.Time) (*model.Pick, error) {
	if !model.ValidWeek(week) {
		return nil, ErrInvalidTeam
	}

	if canonical, ok := model.NormalizeTeamName(team); ok {
		team = canonical
	}

	available, err := c.AvailableTeams(ctx, guildID, c.cfg.Season, week, userID, now)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(available, team) {
		return nil, ErrInvalidTeam
	}

	pick := &model.Pick{
		GuildID: guildID,
		UserID:  userID,
		Week:    week,
		Team:    team,
		MadeAt:  now,
	}
	if err := c.db.SavePick(ctx, pick, c.cfg.MaxPlayers); err != nil {
		switch {
		case errors.Is(err, db.ErrRosterFull):
			return nil, ErrCapacityExceeded
		case errors.Is(err, db.ErrTeamAlreadyUsed):
			return nil, ErrInvalidTeam
		default:
			return nil, err
		}
	}

	log.Info().Str("guild", guildID).Str("user", userID).Int("week", week).Str("team", team).Msg("pick saved")
	return pick, nil
}

func (c *controller) Standings(ctx context.Context, guildID string) (*model.Standings, error) {
	players, err := c.db.ListPlayers(ctx, guildID)
	if err != nil {
		return nil, err
	}

	s := &model.Standings{
		Alive:      make([]model.Player, 0, len(players)),
		Eliminated: make([]model.Player, 0, len(players)),
	}
	for _, p := range players {
		if p.Alive {
			s.Alive = append(s.Alive, p)
		} else {
			s.Eliminated = append(s.Eliminated, p)
		}
	}
	return s, nil
}

func (c *controller) WeekPicks(ctx context.Context, guildID string, season, week int, now time.Time) ([]model.Pick, error) {
	if c.cfg.HidePicksUntilKickoff {
		matchups, err := c.db.GetMatchups(ctx, guildID, season, week)
		if err != nil {
			return nil, err
		}
		if !allStarted(matchups, now) {
			return nil, ErrPicksHidden
		}
	}

	picks, err := c.db.GetWeekPicks(ctx, guildID, week)
	if err != nil {
		return nil, err
	}
	if len(picks) == 0 {
		return nil, ErrNoPicksYet
	}
	return picks, nil
}

func (c *controller) UserHistory(ctx context.Context, guildID, userID string) ([]model.Pick, error) {
	picks, err := c.db.GetUserPicks(ctx, guildID, userID)
	if err != nil {
		return nil, err
	}
	if len(picks) == 0 {
		return nil, ErrNoPicksYet
	}
	return picks, nil
}

func (c *controller) AdminEliminate(ctx context.Context, guildID, userID string) error {
	p, err := c.db.GetPlayer(ctx, guildID, userID)
	if errors.Is(err, db.ErrPlayerNotFound) {
		log.Info().Str("guild", guildID).Str("user", userID).Msg("eliminate ignored, not a player")
		return nil
	}
	if err != nil {
		return err
	}
	if !p.Alive {
		log.Info().Str("guild", guildID).Str("user", userID).Msg("eliminate ignored, already out")
		return nil
	}

	if err := c.db.SetPlayerAlive(ctx, guildID, userID, false); err != nil {
		return err
	}

	log.Info().Str("guild", guildID).Str("user", userID).Msg("player eliminated by commissioner")
	return nil
}

func (c *controller) AdminRevive(ctx context.Context, guildID, userID string) error {
	if err := c.db.RevivePlayer(ctx, guildID, userID); err != nil {
		return err
	}

	log.Info().Str("guild", guildID).Str("user", userID).Msg("player revived by commissioner")
	return nil
}

func (c *controller) SetPanelChannel(ctx context.Context, guildID, channelID string) error {
	if channelID == "" {
		return errors.New("SetPanelChannel - channel is empty")
	}
	return c.db.SetPanelChannel(ctx, guildID, c.cfg.Season, channelID)
}

func (c *controller) PanelChannel(ctx context.Context, guildID string) (string, error) {
	return c.db.GetPanelChannel(ctx, guildID, c.cfg.Season)
}

// allStarted is false when there are no matchups, or any kickoff is unknown or still in the future.
func allStarted(matchups []model.Matchup, now time.Time) bool {
	if len(matchups) == 0 {
		return false
	}
	for _, m := range matchups {
		if !m.Started(now) {
			return false
		}
	}
	return true
}
