package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrPlayerNotFound     error = errors.New("player not found")
	ErrRosterFull         error = errors.New("roster is full")
	ErrTeamAlreadyUsed    error = errors.New("team already used")
	ErrPanelNotConfigured error = errors.New("panel channel not configured")
	ErrWeekResolved       error = errors.New("week already resolved")
)

func New(ctx context.Context, connString string, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock}, nil
}

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

// lockGuild serializes roster changes within a guild until the transaction ends, so that counting
// the roster and adding a player can't race with another join.
func lockGuild(ctx context.Context, tx pgx.Tx, guildID string) error {
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext(@guildID))`, pgx.NamedArgs{"guildID": guildID})
	if err != nil {
		return fmt.Errorf("error locking guild %s: %w", guildID, err)
	}
	return nil
}

func timestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{
		Time:             t.UTC(),
		InfinityModifier: pgtype.Finite,
		Valid:            !t.IsZero(),
	}
}

func valueOrEmpty(v sql.NullString) string {
	if v.Valid {
		return v.String
	}
	return ""
}
