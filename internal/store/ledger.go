package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cordialhq/cordial/rest"
)

// EventEntry is one recorded gateway event.
type EventEntry struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	GuildID    string          `json:"guild_id,omitempty"`
	ChannelID  string          `json:"channel_id,omitempty"`
	Payload    json.RawMessage `json:"payload"`
	ReceivedAt time.Time       `json:"received_at"`
}

// RouteStat aggregates recorded exchanges for one route.
type RouteStat struct {
	Route     string    `json:"route"`
	Requests  int       `json:"requests"`
	Errors    int       `json:"errors"`
	AvgMillis float64   `json:"avg_ms"`
	LastAt    time.Time `json:"last_at"`
}

// EventStat aggregates recorded gateway events of one type.
type EventStat struct {
	Type   string    `json:"type"`
	Count  int       `json:"count"`
	LastAt time.Time `json:"last_at"`
}

// InsertExchange records one completed REST exchange.
func (s *Store) InsertExchange(ctx context.Context, ex rest.Exchange) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	at := ex.At
	if at.IsZero() {
		at = time.Now()
	}

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO exchanges (id, method, route, status, duration_ms, requested_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), ex.Method, ex.Route, ex.Status, ex.Duration.Milliseconds(), at.UTC().Unix())
	if err != nil {
		return fmt.Errorf("record exchange: %w", err)
	}

	return nil
}

// InsertEvent records one received gateway event.
func (s *Store) InsertEvent(ctx context.Context, entry EventEntry) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	eventType := strings.TrimSpace(entry.Type)
	if eventType == "" {
		return errors.New("event type is required")
	}

	payload := entry.Payload
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}

	at := entry.ReceivedAt
	if at.IsZero() {
		at = time.Now()
	}

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO gateway_events (id, type, guild_id, channel_id, payload, received_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), eventType, entry.GuildID, entry.ChannelID, string(payload), at.UTC().Unix())
	if err != nil {
		return fmt.Errorf("record event: %w", err)
	}

	return nil
}

// RouteStats aggregates recorded exchanges per route since the given
// time. A zero time means everything in the ledger.
func (s *Store) RouteStats(ctx context.Context, since time.Time) ([]RouteStat, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT route, COUNT(*),
			SUM(CASE WHEN status >= 400 THEN 1 ELSE 0 END),
			AVG(duration_ms), MAX(requested_at)
		FROM exchanges
		WHERE requested_at >= ?
		GROUP BY route
		ORDER BY COUNT(*) DESC, route
	`, sinceUnix(since))
	if err != nil {
		return nil, fmt.Errorf("fetch route stats: %w", err)
	}
	defer rows.Close() // nolint:errcheck // best-effort cleanup on SQL rows

	var stats []RouteStat
	for rows.Next() {
		var (
			stat   RouteStat
			avg    sql.NullFloat64
			lastAt int64
		)
		if err := rows.Scan(&stat.Route, &stat.Requests, &stat.Errors, &avg, &lastAt); err != nil {
			return nil, fmt.Errorf("scan route stats: %w", err)
		}
		stat.AvgMillis = avg.Float64
		stat.LastAt = time.Unix(lastAt, 0).UTC()
		stats = append(stats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch route stats: %w", err)
	}

	return stats, nil
}

// EventCounts aggregates recorded gateway events per type since the
// given time. A zero time means everything in the ledger.
func (s *Store) EventCounts(ctx context.Context, since time.Time) ([]EventStat, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT type, COUNT(*), MAX(received_at)
		FROM gateway_events
		WHERE received_at >= ?
		GROUP BY type
		ORDER BY COUNT(*) DESC, type
	`, sinceUnix(since))
	if err != nil {
		return nil, fmt.Errorf("fetch event counts: %w", err)
	}
	defer rows.Close() // nolint:errcheck // best-effort cleanup on SQL rows

	var stats []EventStat
	for rows.Next() {
		var (
			stat   EventStat
			lastAt int64
		)
		if err := rows.Scan(&stat.Type, &stat.Count, &lastAt); err != nil {
			return nil, fmt.Errorf("scan event counts: %w", err)
		}
		stat.LastAt = time.Unix(lastAt, 0).UTC()
		stats = append(stats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch event counts: %w", err)
	}

	return stats, nil
}

// RecentEvents returns the newest recorded events, optionally filtered
// by event type. Limit zero means 50.
func (s *Store) RecentEvents(ctx context.Context, eventType string, limit int) ([]EventEntry, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, type, guild_id, channel_id, payload, received_at
		FROM gateway_events
	`
	args := []any{}
	if trimmed := strings.TrimSpace(eventType); trimmed != "" {
		query += ` WHERE type = ?`
		args = append(args, trimmed)
	}
	query += ` ORDER BY received_at DESC, id LIMIT ?`
	args = append(args, limit)

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch recent events: %w", err)
	}
	defer rows.Close() // nolint:errcheck // best-effort cleanup on SQL rows

	var entries []EventEntry
	for rows.Next() {
		var (
			entry      EventEntry
			guildID    sql.NullString
			channelID  sql.NullString
			payload    string
			receivedAt int64
		)
		if err := rows.Scan(&entry.ID, &entry.Type, &guildID, &channelID, &payload, &receivedAt); err != nil {
			return nil, fmt.Errorf("scan recent events: %w", err)
		}
		entry.GuildID = guildID.String
		entry.ChannelID = channelID.String
		entry.Payload = json.RawMessage(payload)
		entry.ReceivedAt = time.Unix(receivedAt, 0).UTC()
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch recent events: %w", err)
	}

	return entries, nil
}

func sinceUnix(since time.Time) int64 {
	if since.IsZero() {
		return 0
	}
	return since.UTC().Unix()
}
