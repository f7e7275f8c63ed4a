package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/moosarra/nfl-survivor-bot/model"
)

func (db *postgresDB) GetPlayer(ctx context.Context, guildID, userID string) (*model.Player, error) {
	const query = `SELECT guild_id, user_id, alive, joined FROM players
					WHERE guild_id=@guildID AND user_id=@userID`

	args := pgx.NamedArgs{
		"guildID": guildID,
		"userID":  userID,
	}
	p, err := scanPlayer(db.pool.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("error scanning player %s: %w", userID, err)
	}
	return p, nil
}

func (db *postgresDB) ListPlayers(ctx context.Context, guildID string) ([]model.Player, error) {
	const query = `SELECT guild_id, user_id, alive, joined FROM players
					WHERE guild_id=@guildID ORDER BY joined, user_id`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"guildID": guildID})
	if err != nil {
		return nil, fmt.Errorf("error listing players: %w", err)
	}
	defer rows.Close()

	players := make([]model.Player, 0, 16)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning player: %w", err)
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

func (db *postgresDB) JoinPlayer(ctx context.Context, guildID, userID string, maxPlayers int) (bool, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	if err := lockGuild(ctx, tx, guildID); err != nil {
		return false, err
	}

	added, err := db.ensurePlayer(ctx, tx, guildID, userID, maxPlayers)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("error commiting join transaction: %w", err)
	}
	return added, nil
}

func (db *postgresDB) SetPlayerAlive(ctx context.Context, guildID, userID string, alive bool) error {
	const query = `UPDATE players SET alive=@alive, updated=@updated
					WHERE guild_id=@guildID AND user_id=@userID`

	args := pgx.NamedArgs{
		"guildID": guildID,
		"userID":  userID,
		"alive":   alive,
		"updated": timestamptz(db.clock.Now()),
	}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error updating player %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (db *postgresDB) RevivePlayer(ctx context.Context, guildID, userID string) error {
	const query = `INSERT INTO players (guild_id, user_id, alive, joined)
					VALUES (@guildID, @userID, TRUE, @now)
					ON CONFLICT (guild_id, user_id) DO UPDATE SET alive=TRUE, updated=@now`

	args := pgx.NamedArgs{
		"guildID": guildID,
		"userID":  userID,
		"now":     timestamptz(db.clock.Now()),
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error reviving player %s: %w", userID, err)
	}
	return nil
}

func (db *postgresDB) ListGuilds(ctx context.Context) ([]string, error) {
	const query = `SELECT guild_id FROM players UNION SELECT guild_id FROM panels ORDER BY 1`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing guilds: %w", err)
	}
	defer rows.Close()

	guilds := make([]string, 0, 4)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning guild id: %w", err)
		}
		guilds = append(guilds, id)
	}
	return guilds, rows.Err()
}

func (db *postgresDB) SavePick(ctx context.Context, p *model.Pick, maxPlayers int) error {
	if p == nil {
		return errors.New("SavePick - pick is nil")
	}

	const used = `SELECT EXISTS(SELECT 1 FROM picks
					WHERE guild_id=@guildID AND user_id=@userID AND team=@team AND week<>@week)`

	const upsert = `INSERT INTO picks (guild_id, user_id, week, team, made_at, result)
					VALUES (@guildID, @userID, @week, @team, @madeAt, @result)
					ON CONFLICT (guild_id, user_id, week)
					DO UPDATE SET team=EXCLUDED.team, made_at=EXCLUDED.made_at, result=EXCLUDED.result`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := lockGuild(ctx, tx, p.GuildID); err != nil {
		return err
	}

	if _, err := db.ensurePlayer(ctx, tx, p.GuildID, p.UserID, maxPlayers); err != nil {
		return err
	}

	madeAt := p.MadeAt
	if madeAt.IsZero() {
		madeAt = db.clock.Now()
	}
	args := pgx.NamedArgs{
		"guildID": p.GuildID,
		"userID":  p.UserID,
		"week":    p.Week,
		"team":    p.Team,
		"madeAt":  timestamptz(madeAt),
		"result":  string(model.ResultPending),
	}

	var alreadyUsed bool
	if err := tx.QueryRow(ctx, used, args).Scan(&alreadyUsed); err != nil {
		return fmt.Errorf("error checking used teams: %w", err)
	}
	if alreadyUsed {
		return ErrTeamAlreadyUsed
	}

	if _, err := tx.Exec(ctx, upsert, args); err != nil {
		return fmt.Errorf("error saving pick for %s week %d: %w", p.UserID, p.Week, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error commiting pick transaction: %w", err)
	}

	p.MadeAt = madeAt
	p.Result = model.ResultPending
	return nil
}

func (db *postgresDB) GetUsedTeams(ctx context.Context, guildID, userID string, exceptWeek int) ([]string, error) {
	const query = `SELECT DISTINCT team FROM picks
					WHERE guild_id=@guildID AND user_id=@userID AND week<>@exceptWeek`

	args := pgx.NamedArgs{
		"guildID":    guildID,
		"userID":     userID,
		"exceptWeek": exceptWeek,
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error looking up used teams: %w", err)
	}
	defer rows.Close()

	teams := make([]string, 0, 18)
	for rows.Next() {
		var team string
		if err := rows.Scan(&team); err != nil {
			return nil, fmt.Errorf("error scanning team: %w", err)
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (db *postgresDB) GetWeekPicks(ctx context.Context, guildID string, week int) ([]model.Pick, error) {
	const query = `SELECT guild_id, user_id, week, team, made_at, result FROM picks
					WHERE guild_id=@guildID AND week=@week ORDER BY made_at, user_id`

	args := pgx.NamedArgs{
		"guildID": guildID,
		"week":    week,
	}
	return db.queryPicks(ctx, query, args)
}

func (db *postgresDB) GetUserPicks(ctx context.Context, guildID, userID string) ([]model.Pick, error) {
	const query = `SELECT guild_id, user_id, week, team, made_at, result FROM picks
					WHERE guild_id=@guildID AND user_id=@userID ORDER BY week`

	args := pgx.NamedArgs{
		"guildID": guildID,
		"userID":  userID,
	}
	return db.queryPicks(ctx, query, args)
}

func (db *postgresDB) ApplyResults(ctx context.Context, guildID string, season, week int, results map[string]model.PickResult, eliminate []string) error {
	const markResolved = `INSERT INTO resolutions (guild_id, season, week, resolved_at)
							VALUES (@guildID, @season, @week, @now)
							ON CONFLICT (guild_id, season, week) DO NOTHING`

	const updatePick = `UPDATE picks SET result=@result
						WHERE guild_id=@guildID AND user_id=@userID AND week=@week`

	const eliminatePlayer = `UPDATE players SET alive=FALSE, updated=@updated
							WHERE guild_id=@guildID AND user_id=@userID`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := timestamptz(db.clock.Now())
	tag, err := tx.Exec(ctx, markResolved, pgx.NamedArgs{
		"guildID": guildID,
		"season":  season,
		"week":    week,
		"now":     now,
	})
	if err != nil {
		return fmt.Errorf("error marking week %d resolved: %w", week, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrWeekResolved
	}

	for userID, result := range results {
		args := pgx.NamedArgs{
			"guildID": guildID,
			"userID":  userID,
			"week":    week,
			"result":  string(result),
		}
		if _, err := tx.Exec(ctx, updatePick, args); err != nil {
			return fmt.Errorf("error saving result for %s week %d: %w", userID, week, err)
		}
	}

	for _, userID := range eliminate {
		args := pgx.NamedArgs{
			"guildID": guildID,
			"userID":  userID,
			"updated": now,
		}
		if _, err := tx.Exec(ctx, eliminatePlayer, args); err != nil {
			return fmt.Errorf("error eliminating %s: %w", userID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error commiting results transaction: %w", err)
	}
	return nil
}

// ensurePlayer adds the player to the roster if they aren't on it yet. The caller must hold the
// guild lock.
func (db *postgresDB) ensurePlayer(ctx context.Context, tx pgx.Tx, guildID, userID string, maxPlayers int) (bool, error) {
	const exists = `SELECT EXISTS(SELECT 1 FROM players WHERE guild_id=@guildID AND user_id=@userID)`
	const count = `SELECT COUNT(*) FROM players WHERE guild_id=@guildID`
	const insert = `INSERT INTO players (guild_id, user_id, alive, joined) VALUES (@guildID, @userID, TRUE, @joined)`

	args := pgx.NamedArgs{
		"guildID": guildID,
		"userID":  userID,
		"joined":  timestamptz(db.clock.Now()),
	}

	var found bool
	if err := tx.QueryRow(ctx, exists, args).Scan(&found); err != nil {
		return false, fmt.Errorf("error looking up player %s: %w", userID, err)
	}
	if found {
		return false, nil
	}

	if maxPlayers > 0 {
		var n int
		if err := tx.QueryRow(ctx, count, args).Scan(&n); err != nil {
			return false, fmt.Errorf("error counting players: %w", err)
		}
		if n >= maxPlayers {
			return false, ErrRosterFull
		}
	}

	if _, err := tx.Exec(ctx, insert, args); err != nil {
		return false, fmt.Errorf("error inserting player %s: %w", userID, err)
	}
	return true, nil
}

func (db *postgresDB) queryPicks(ctx context.Context, query string, args pgx.NamedArgs) ([]model.Pick, error) {
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error running picks query: %w", err)
	}
	defer rows.Close()

	picks := make([]model.Pick, 0, 16)
	for rows.Next() {
		p, err := scanPick(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning pick: %w", err)
		}
		picks = append(picks, *p)
	}
	return picks, rows.Err()
}

func scanPlayer(row pgx.Row) (*model.Player, error) {
	var result model.Player
	var joined pgtype.Timestamptz
	err := row.Scan(&result.GuildID, &result.UserID, &result.Alive, &joined)
	if err != nil {
		return nil, err
	}
	result.Joined = joined.Time
	return &result, nil
}

func scanPick(row pgx.Row) (*model.Pick, error) {
	var result model.Pick
	var madeAt pgtype.Timestamptz
	var res pgtype.Text
	err := row.Scan(&result.GuildID, &result.UserID, &result.Week, &result.Team, &madeAt, &res)
	if err != nil {
		return nil, err
	}
	result.MadeAt = madeAt.Time
	result.Result = model.ParsePickResult(res.String)
	return &result, nil
}
