package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type migrationStep struct {
	Name string
	SQL  string
}

const sentinelQuery = "SELECT to_regclass('public.documents') IS NOT NULL"

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  kind         TEXT        NOT NULL CHECK (kind IN ('resume', 'job_description')),
  filename     TEXT        NOT NULL,
  storage_path TEXT        NOT NULL UNIQUE,
  size         BIGINT      NOT NULL CHECK (size >= 0),
  content_type TEXT        NOT NULL,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_documents_kind_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_kind_created_at ON documents (kind, created_at DESC);`,
	},
	{
		Name: "create_index_documents_filename",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_filename ON documents (filename);`,
	},
}

// EnsureMigrated creates the schema unless the documents table already exists.
func EnsureMigrated(ctx context.Context, db *sql.DB, log zerolog.Logger, dbHost string) error {
	start := time.Now()
	log = log.With().Str("component", "database").Str("db_host", dbHost).Logger()

	log.Info().Str("event", "db_migration_check").Msg("checking schema")

	var exists bool
	if err := db.QueryRowContext(ctx, sentinelQuery).Scan(&exists); err != nil {
		log.Error().Err(err).
			Str("event", "db_migration_failed").
			Dur("duration", time.Since(start)).
			Msg("sentinel table check failed")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info().
			Str("event", "db_migration_skip").
			Dur("duration", time.Since(start)).
			Msg("schema already exists, skipping migration")
		return nil
	}

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error().Err(err).
				Str("event", "db_migration_failed").
				Str("migration_step", step.Name).
				Dur("step_duration", time.Since(stepStart)).
				Msg("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Debug().
			Str("event", "db_migration_step").
			Str("migration_step", step.Name).
			Dur("step_duration", time.Since(stepStart)).
			Msg("migration step applied")
	}

	log.Info().
		Str("event", "db_migration_success").
		Int("steps", len(steps)).
		Dur("duration", time.Since(start)).
		Msg("schema migrated")
	return nil
}
