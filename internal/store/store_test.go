// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"storyforge/internal/database"
	"storyforge/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "storyforge")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "storyforge")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanStories removes test stories by id. Call in t.Cleanup().
func cleanStories(t *testing.T, db *sql.DB, ids ...uuid.UUID) {
	t.Helper()
	for _, id := range ids {
		db.Exec("DELETE FROM stories WHERE id = $1", id)
	}
}

// cleanEvents removes test events by event name. Call in t.Cleanup().
func cleanEvents(t *testing.T, db *sql.DB, events ...string) {
	t.Helper()
	for _, event := range events {
		db.Exec("DELETE FROM analytics_events WHERE event = $1", event)
	}
}

// testStory builds a template-sourced story ready for Create.
func testStory() *models.Story {
	return &models.Story{
		ID:         uuid.New(),
		Title:      "Nia and the Golden Seed",
		Subtitle:   "A story about how one small act of kindness can change everything",
		Dedication: "For Nia — whose kindness makes the world bloom.",
		ChildName:  "Nia",
		ChildAge:   5,
		Interests:  []string{"space", "drawing"},
		Lessons:    []string{"Kindness & Sharing"},
		Characters: []models.Character{
			{Name: "Suki", Relationship: models.RelationshipPet},
		},
		Setting: "Outer Space",
		Format:  models.FormatDigital,
		Source:  models.SourceTemplate,
		Pages: []models.StoryPage{
			{PageNumber: 1, Text: "Page one.", IllustrationDescription: "Nia with a tiny golden seed", MoodColor: "#1E3A5F"},
			{PageNumber: 2, Text: "Page two.", IllustrationDescription: "Nia holding the glowing seed", MoodColor: "#2C5282"},
		},
	}
}
