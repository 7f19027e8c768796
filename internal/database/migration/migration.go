package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_language",
		SQL: `CREATE TABLE IF NOT EXISTS language (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  parent_id  UUID        NULL REFERENCES language (id) ON DELETE SET NULL,
  name       TEXT        NOT NULL,
  locale     TEXT        NOT NULL UNIQUE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_sales_channel",
		SQL: `CREATE TABLE IF NOT EXISTS sales_channel (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name        TEXT        NOT NULL,
  access_key  TEXT        NOT NULL UNIQUE,
  language_id UUID        NOT NULL REFERENCES language (id),
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_sales_channel_language",
		SQL: `CREATE TABLE IF NOT EXISTS sales_channel_language (
  sales_channel_id UUID NOT NULL REFERENCES sales_channel (id) ON DELETE CASCADE,
  language_id      UUID NOT NULL REFERENCES language (id) ON DELETE CASCADE,
  PRIMARY KEY (sales_channel_id, language_id)
);`,
	},
	{
		Name: "create_index_language_name",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_language_name ON language (lower(name));`,
	},
	{
		Name: "create_table_media",
		SQL: `CREATE TABLE IF NOT EXISTS media (
  id           UUID        PRIMARY KEY,
  file_name    TEXT        NOT NULL,
  extension    TEXT        NOT NULL DEFAULT '',
  storage_path TEXT        NOT NULL UNIQUE,
  mime_type    TEXT        NOT NULL,
  size         BIGINT      NOT NULL CHECK (size >= 0),
  source_url   TEXT        NULL,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_media_mime_type",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_media_mime_type ON media (mime_type);`,
	},
	{
		Name: "create_index_media_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_media_created_at ON media (created_at DESC, id DESC);`,
	},
}

// sentinelQuery checks for the table created by the last schema step.
const sentinelQuery = "SELECT to_regclass('public.media') IS NOT NULL"

// EnsureMigrated creates the schema unless the media table already exists.
// Every step is idempotent, so a run interrupted halfway is completed by the next start.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string) error {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))

	start := time.Now()
	log.Info("db_migration_check", zap.String("status", "starting"))

	var exists bool
	if err := db.QueryRowContext(ctx, sentinelQuery).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("reason", "schema already exists"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	log.Info("db_migration_start", zap.String("status", "in_progress"), zap.Int("steps", len(steps)))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Debug("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}
