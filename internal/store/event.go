// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"storyforge/internal/models"
)

// EventStore handles coarse analytics event persistence. Events are
// append-only; nothing in the request path ever reads them back.
type EventStore struct {
	db *sql.DB
}

// NewEventStore creates a new EventStore with the given database connection.
func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

// Record appends one analytics event. Nil properties are stored as an
// empty JSON object.
func (s *EventStore) Record(event string, properties map[string]any) error {
	props := []byte("{}")
	if len(properties) > 0 {
		var err error
		props, err = json.Marshal(properties)
		if err != nil {
			return fmt.Errorf("marshal event properties: %w", err)
		}
	}

	if _, err := s.db.Exec(`
		INSERT INTO analytics_events (event, properties_json) VALUES ($1, $2)
	`, event, props); err != nil {
		return fmt.Errorf("record event: %w", err)
	}
	return nil
}

// ListRecent returns the most recent events, newest first. Used by
// integration tests and ad-hoc inspection, not by the request path.
func (s *EventStore) ListRecent(limit int) ([]models.AnalyticsEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, event, properties_json, created_at
		FROM analytics_events
		ORDER BY id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent events: %w", err)
	}
	defer rows.Close()

	var events []models.AnalyticsEvent
	for rows.Next() {
		var e models.AnalyticsEvent
		var props []byte
		if err := rows.Scan(&e.ID, &e.Event, &props, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if err := json.Unmarshal(props, &e.Properties); err != nil {
			return nil, fmt.Errorf("unmarshal event properties: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
