package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/moosarra/nfl-survivor-bot/model"
)

// Week zero of the panels table holds the configured channel.
const channelWeek = 0

func (db *postgresDB) SetPanelChannel(ctx context.Context, guildID string, season int, channelID string) error {
	const query = `INSERT INTO panels (guild_id, season, week, channel_id, posted_at)
					VALUES (@guildID, @season, @week, @channelID, @now)
					ON CONFLICT (guild_id, season, week) DO UPDATE SET channel_id=EXCLUDED.channel_id, posted_at=EXCLUDED.posted_at`

	args := pgx.NamedArgs{
		"guildID":   guildID,
		"season":    season,
		"week":      channelWeek,
		"channelID": channelID,
		"now":       timestamptz(db.clock.Now()),
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error saving panel channel for %s: %w", guildID, err)
	}
	return nil
}

func (db *postgresDB) GetPanelChannel(ctx context.Context, guildID string, season int) (string, error) {
	const query = `SELECT channel_id FROM panels WHERE guild_id=@guildID AND season=@season AND week=@week`

	args := pgx.NamedArgs{
		"guildID": guildID,
		"season":  season,
		"week":    channelWeek,
	}
	var channelID sql.NullString
	if err := db.pool.QueryRow(ctx, query, args).Scan(&channelID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrPanelNotConfigured
		}
		return "", fmt.Errorf("error looking up panel channel for %s: %w", guildID, err)
	}
	if ch := valueOrEmpty(channelID); ch != "" {
		return ch, nil
	}
	return "", ErrPanelNotConfigured
}

func (db *postgresDB) ListPanelChannels(ctx context.Context, season int) ([]model.PanelConfig, error) {
	const query = `SELECT guild_id, season, week, channel_id, posted_at FROM panels
					WHERE season=@season AND week=@week ORDER BY guild_id`

	args := pgx.NamedArgs{
		"season": season,
		"week":   channelWeek,
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error listing panel channels: %w", err)
	}
	defer rows.Close()

	configs := make([]model.PanelConfig, 0, 4)
	for rows.Next() {
		var c model.PanelConfig
		var postedAt pgtype.Timestamptz
		if err := rows.Scan(&c.GuildID, &c.Season, &c.Week, &c.ChannelID, &postedAt); err != nil {
			return nil, fmt.Errorf("error scanning panel channel: %w", err)
		}
		c.PostedAt = postedAt.Time
		configs = append(configs, c)
	}
	return configs, rows.Err()
}

func (db *postgresDB) MarkPanelPosted(ctx context.Context, guildID string, season, week int, channelID string) (bool, error) {
	if week <= channelWeek {
		return false, fmt.Errorf("MarkPanelPosted - invalid week %d", week)
	}

	const query = `INSERT INTO panels (guild_id, season, week, channel_id, posted_at)
					VALUES (@guildID, @season, @week, @channelID, @now)
					ON CONFLICT (guild_id, season, week) DO NOTHING`

	args := pgx.NamedArgs{
		"guildID":   guildID,
		"season":    season,
		"week":      week,
		"channelID": channelID,
		"now":       timestamptz(db.clock.Now()),
	}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return false, fmt.Errorf("error marking panel posted for %s week %d: %w", guildID, week, err)
	}
	return tag.RowsAffected() == 1, nil
}
