package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/moosarra/nfl-survivor-bot/model"
)

func (db *postgresDB) SaveMatchups(ctx context.Context, matchups []model.Matchup) (int, error) {
	if len(matchups) == 0 {
		return 0, nil
	}

	// xmax is only zero for rows created by this statement.
	const query = `INSERT INTO matchups (guild_id, season, week, home_team, away_team, kickoff)
					VALUES (@guildID, @season, @week, @home, @away, @kickoff)
					ON CONFLICT (guild_id, season, week, home_team, away_team)
					DO UPDATE SET kickoff=COALESCE(EXCLUDED.kickoff, matchups.kickoff)
					RETURNING (xmax = 0)`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	inserted := 0
	for _, m := range matchups {
		args := pgx.NamedArgs{
			"guildID": m.GuildID,
			"season":  m.Season,
			"week":    m.Week,
			"home":    m.HomeTeam,
			"away":    m.AwayTeam,
			"kickoff": timestamptz(m.Kickoff),
		}
		var isNew bool
		if err := tx.QueryRow(ctx, query, args).Scan(&isNew); err != nil {
			return 0, fmt.Errorf("error saving matchup %s @ %s: %w", m.AwayTeam, m.HomeTeam, err)
		}
		if isNew {
			inserted++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("error commiting matchups transaction: %w", err)
	}
	return inserted, nil
}

func (db *postgresDB) GetMatchups(ctx context.Context, guildID string, season, week int) ([]model.Matchup, error) {
	const query = `SELECT id, guild_id, season, week, home_team, away_team, kickoff FROM matchups
					WHERE guild_id=@guildID AND season=@season AND week=@week ORDER BY id`

	args := pgx.NamedArgs{
		"guildID": guildID,
		"season":  season,
		"week":    week,
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error looking up matchups: %w", err)
	}
	defer rows.Close()

	matchups := make([]model.Matchup, 0, 16)
	for rows.Next() {
		var m model.Matchup
		var kickoff pgtype.Timestamptz
		err := rows.Scan(&m.ID, &m.GuildID, &m.Season, &m.Week, &m.HomeTeam, &m.AwayTeam, &kickoff)
		if err != nil {
			return nil, fmt.Errorf("error scanning matchup: %w", err)
		}
		if kickoff.Valid {
			m.Kickoff = kickoff.Time
		}
		matchups = append(matchups, m)
	}
	return matchups, rows.Err()
}
