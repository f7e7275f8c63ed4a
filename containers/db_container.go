package containers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	image      = "postgres:16.3-alpine"
	dbName     = "survivor"
	dbUser     = "survivor"
	dbPassword = "secret"

	readyLog       = "database system is ready to accept connections"
	startupTimeout = 30 * time.Second
)

var errNoModuleRoot = errors.New("go.mod not found above working directory")

// DBContainer is a throwaway postgres instance with the bot's schema applied.
type DBContainer struct {
	container *postgres.PostgresContainer
}

// NewDBContainer starts postgres and loads schema/schema.sql from the module root, found by
// walking up from the working directory of the test binary.
func NewDBContainer() *DBContainer {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting working directory")
	}
	schema, err := schemaFile(wd)
	if err != nil {
		log.Fatal().Err(err).Str("dir", wd).Msg("error locating schema")
	}

	// postgres logs ready once for the init scripts and once for real
	container, err := postgres.Run(context.Background(), image,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.WithInitScripts(schema),
		testcontainers.WithWaitStrategy(wait.ForLog(readyLog).WithOccurrence(2).WithStartupTimeout(startupTimeout)),
	)
	if err != nil {
		log.Fatal().Err(err).Str("schema", schema).Msg("error starting postgres")
	}

	log.Debug().Str("schema", schema).Msg("postgres container started")
	return &DBContainer{container: container}
}

// schemaFile returns schema/schema.sql under the nearest directory at or above dir holding a go.mod.
func schemaFile(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "schema", "schema.sql"), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errNoModuleRoot
		}
		dir = parent
	}
}

func (c *DBContainer) Shutdown() {
	if err := c.container.Terminate(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("error terminating postgres")
	}
}

func (c *DBContainer) ConnectionString() string {
	// no TLS inside the container
	connStr, err := c.container.ConnectionString(context.Background(), "sslmode=disable")
	if err != nil {
		log.Fatal().Err(err).Msg("error getting connection string")
	}
	return connStr
}
