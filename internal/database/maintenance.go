package database

import (
	"context"
	"fmt"
	"strings"
)

var maintainedTables = []string{
	"customers",
	"product_types",
	"products",
	"invoices",
	"invoice_products",
}

// Analyze refreshes the planner statistics of the invoicing tables.
func (s *Store) Analyze(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("database not initialized")
	}

	stmt := "ANALYZE " + strings.Join(maintainedTables, ", ")
	if s.dialect == MySQL {
		stmt = "ANALYZE TABLE " + strings.Join(maintainedTables, ", ")
	}

	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		s.log.Error().Err(err).Msg("Failed to analyze tables")
		return fmt.Errorf("failed to analyze tables: %w", err)
	}

	s.log.Info().Int("tables", len(maintainedTables)).Msg("Table statistics refreshed")
	return nil
}
