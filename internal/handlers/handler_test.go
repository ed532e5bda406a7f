// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL or Valkey are
// unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"storyforge/internal/cache"
	"storyforge/internal/database"
	"storyforge/internal/generator"
	"storyforge/internal/models"
	"storyforge/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "storyforge")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "storyforge")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkey returns a Valkey client on the test database.
func testValkey(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})
	return client
}

// testAPI wires an API handler group against real backends with the
// template-only generator (no AI writer).
func testAPI(t *testing.T) (*API, *sql.DB) {
	t.Helper()

	db := testDB(t)
	client := testValkey(t)

	stories := store.NewStoryStore(db)
	events := store.NewEventStore(db)
	gen := generator.New(nil, nil, nil, nil)
	api := NewAPI(gen,
		stories,
		events,
		cache.NewStoryCache(client, time.Minute),
		cache.NewStatsCache(client, time.Minute),
	)
	return api, db
}

// testRouter mounts the API routes the way the production router does.
func testRouter(api *API) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/generate", api.Generate)
	r.Get("/api/stories/{id}", api.GetStory)
	r.Post("/api/stories/{id}/share", api.ShareStory)
	r.Get("/api/stats", api.Stats)
	r.Post("/api/events", api.RecordEvent)
	r.Get("/health", api.Health)
	return r
}

// cleanStoriesByName removes test stories after a handler test.
func cleanStoriesByName(t *testing.T, db *sql.DB, childName string) {
	t.Helper()
	if _, err := db.Exec(`DELETE FROM stories WHERE child_name = $1`, childName); err != nil {
		t.Errorf("cleanup stories: %v", err)
	}
}

// cleanEventsByName removes test analytics events after a handler test.
func cleanEventsByName(t *testing.T, db *sql.DB, event string) {
	t.Helper()
	if _, err := db.Exec(`DELETE FROM analytics_events WHERE event = $1`, event); err != nil {
		t.Errorf("cleanup events: %v", err)
	}
}

// insertStory persists a pre-built story directly through the store.
func insertStory(t *testing.T, db *sql.DB, story *models.Story) {
	t.Helper()
	if err := store.NewStoryStore(db).Create(story); err != nil {
		t.Fatalf("insert story: %v", err)
	}
}

// handlerStory builds a small valid story for retrieval tests.
func handlerStory(childName string) *models.Story {
	return &models.Story{
		ID:        uuid.New(),
		Title:     childName + " and the Golden Seed",
		ChildName: childName,
		ChildAge:  6,
		Interests: []string{"gardening"},
		Lessons:   []string{"Kindness & Sharing"},
		Setting:   "Enchanted Forest",
		Format:    models.FormatDigital,
		Source:    models.SourceTemplate,
		Pages: []models.StoryPage{
			{PageNumber: 1, Text: "Page one.", IllustrationDescription: "A garden", MoodColor: "#4A7C59"},
			{PageNumber: 2, Text: "Page two.", IllustrationDescription: "A seed", MoodColor: "#6B8E5B"},
		},
	}
}
