package store

import (
	"context"
	"errors"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS exchanges (
		id TEXT PRIMARY KEY,
		method TEXT NOT NULL,
		route TEXT NOT NULL,
		status INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		requested_at INTEGER NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_exchanges_requested ON exchanges(requested_at);`,
	`CREATE INDEX IF NOT EXISTS idx_exchanges_route ON exchanges(route);`,
	`CREATE TABLE IF NOT EXISTS gateway_events (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		guild_id TEXT,
		channel_id TEXT,
		payload TEXT NOT NULL,
		received_at INTEGER NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_gateway_events_received ON gateway_events(received_at);`,
	`CREATE INDEX IF NOT EXISTS idx_gateway_events_type ON gateway_events(type);`,
}

// Migrate ensures the required database tables exist.
func (s *Store) Migrate(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	for _, stmt := range schemaStatements {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store migration failed: %w", err)
		}
	}

	return nil
}
