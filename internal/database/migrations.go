package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

type migration struct {
	Version int
	Name    string
	SQL     string
}

// Migrate installs the tables and stored procedures for the store's dialect.
// MySQL commits DDL implicitly, so a failed MySQL migration can leave part of
// its statements applied; the version row is only written on success.
func (s *Store) Migrate(ctx context.Context) error {
	s.log.Info().Str("dialect", string(s.dialect)).Msg("Running database migrations")

	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var currentVersion int
	err = s.db.QueryRowxContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	s.log.Debug().Int("current_version", currentVersion).Msg("Current schema version")

	for _, m := range s.dialect.migrations() {
		if m.Version <= currentVersion {
			continue
		}
		s.log.Info().Int("version", m.Version).Str("name", m.Name).Msg("Applying migration")

		if err := s.transaction(ctx, func(tx *sqlx.Tx) error {
			statements := splitSQLStatements(m.SQL)
			for i, stmt := range statements {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("migration %d statement %d failed: %w", m.Version, i+1, err)
				}
			}

			if _, err := tx.ExecContext(ctx, tx.Rebind("INSERT INTO schema_migrations (version) VALUES (?)"), m.Version); err != nil {
				return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
			}
			return nil
		}); err != nil {
			return err
		}
	}

	s.log.Info().Msg("Database migrations complete")
	return nil
}

func (d Dialect) migrations() []migration {
	if d == Postgres {
		return postgresMigrations
	}
	return mysqlMigrations
}

// splitSQLStatements splits a script into individual statements.
// It understands the mysql client's DELIMITER directive and Postgres
// dollar-quoted bodies, so procedure bodies stay in one piece. Comment lines
// outside bodies are dropped and the trailing delimiter is removed.
func splitSQLStatements(script string) []string {
	var statements []string
	var current strings.Builder
	delimiter := ";"
	inBody := false

	flush := func() {
		if stmt := strings.TrimSpace(current.String()); stmt != "" {
			statements = append(statements, stmt)
		}
		current.Reset()
	}

	for line := range strings.SplitSeq(script, "\n") {
		trimmed := strings.TrimSpace(line)

		if !inBody {
			if trimmed == "" || strings.HasPrefix(trimmed, "--") {
				continue
			}
			if rest, ok := strings.CutPrefix(trimmed, "DELIMITER "); ok {
				flush()
				delimiter = strings.TrimSpace(rest)
				continue
			}
		}

		if strings.Count(line, "$$")%2 == 1 {
			inBody = !inBody
		}

		if !inBody && strings.HasSuffix(trimmed, delimiter) {
			current.WriteString(strings.TrimSuffix(trimmed, delimiter))
			flush()
			continue
		}

		current.WriteString(line)
		current.WriteString("\n")
	}

	flush()
	return statements
}
