package controller

import (
	"context"
	"errors"
	"time"

	"github.com/moosarra/nfl-survivor-bot/db"
	"github.com/moosarra/nfl-survivor-bot/model"
	"github.com/rs/zerolog/log"
)

const (
	JobScheduleRefresh = "schedule-refresh"
	JobWeeklyPanel     = "weekly-panel"
	JobWeeklyResolve   = "weekly-resolve"

	refreshEvery = 6 * time.Hour
	panelHour    = 12
	resolveHour  = 8

	// Days after the last Sunday of the season that the final week can still be resolved.
	lastResolveDays = 7
)

// Announcer posts scheduled messages to a guild's chat channel.
type Announcer interface {
	PostPanel(ctx context.Context, guildID, channelID string, week int) error
	PostRecap(ctx context.Context, guildID, channelID string, res *model.Resolution) error
}

func (c *controller) jobs(a Announcer) []Job {
	return []Job{
		{Name: JobScheduleRefresh, Due: every(refreshEvery), Run: c.refreshSchedules},
		{Name: JobWeeklyResolve, Due: weeklyAt(time.Tuesday, resolveHour), Run: func(ctx context.Context, now time.Time) error {
			return c.resolveWeeks(ctx, a, now)
		}},
		{Name: JobWeeklyPanel, Due: weeklyAt(time.Tuesday, panelHour), Run: func(ctx context.Context, now time.Time) error {
			return c.postPanels(ctx, a, now)
		}},
	}
}

func (c *controller) refreshSchedules(ctx context.Context, now time.Time) error {
	guilds, err := c.db.ListGuilds(ctx)
	if err != nil {
		return err
	}

	week := c.PanelWeek(now)
	var errs []error
	for _, g := range guilds {
		if _, err := c.RefreshWeek(ctx, g, c.cfg.Season, week); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *controller) postPanels(ctx context.Context, a Announcer, now time.Time) error {
	configs, err := c.db.ListPanelChannels(ctx, c.cfg.Season)
	if err != nil {
		return err
	}

	week := c.PanelWeek(now)
	var errs []error
	for _, cfg := range configs {
		// Claim the week before posting so a restart never posts twice.
		claimed, err := c.db.MarkPanelPosted(ctx, cfg.GuildID, c.cfg.Season, week, cfg.ChannelID)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !claimed {
			log.Debug().Str("guild", cfg.GuildID).Int("week", week).Msg("panel already posted")
			continue
		}

		if err := a.PostPanel(ctx, cfg.GuildID, cfg.ChannelID, week); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *controller) resolveWeeks(ctx context.Context, a Announcer, now time.Time) error {
	week := c.CurrentWeek(now)
	if model.WeekSunday(c.cfg.Season, week).After(now) {
		log.Info().Int("week", week).Msg("week not played yet, nothing to resolve")
		return nil
	}
	if now.After(model.WeekSunday(c.cfg.Season, model.LastWeek).AddDate(0, 0, lastResolveDays)) {
		log.Info().Int("season", c.cfg.Season).Msg("season is over, nothing to resolve")
		return nil
	}

	guilds, err := c.db.ListGuilds(ctx)
	if err != nil {
		return err
	}

	var errs []error
	for _, g := range guilds {
		res, err := c.ResolveWeekFromProvider(ctx, g, c.cfg.Season, week)
		if errors.Is(err, ErrResultsIncomplete) {
			log.Info().Str("guild", g).Int("week", week).Msg("results incomplete, skipping")
			continue
		}
		if errors.Is(err, ErrWeekResolved) {
			log.Debug().Str("guild", g).Int("week", week).Msg("week already resolved")
			continue
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}

		channelID, err := c.db.GetPanelChannel(ctx, g, c.cfg.Season)
		if errors.Is(err, db.ErrPanelNotConfigured) {
			continue
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := a.PostRecap(ctx, g, channelID, res); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
