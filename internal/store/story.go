// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"storyforge/internal/models"
)

// ErrNotFound is returned by counter updates targeting a story that does
// not exist. Lookups return nil instead; only mutations need the sentinel.
var ErrNotFound = errors.New("store: not found")

// StoryStore handles all story-related database operations. Story content
// is immutable after Create; only the view and share counters change.
type StoryStore struct {
	db *sql.DB
}

// NewStoryStore creates a new StoryStore with the given database connection.
func NewStoryStore(db *sql.DB) *StoryStore {
	return &StoryStore{db: db}
}

// Create inserts a finished story. The questionnaire snapshot and pages are
// stored as JSON blobs; the child's name and age are denormalized for the
// stats feed. CreatedAt is set from the database clock.
func (s *StoryStore) Create(story *models.Story) error {
	input := models.StoryInput{
		Interests:  story.Interests,
		Lessons:    story.Lessons,
		Characters: story.Characters,
		Setting:    story.Setting,
		Format:     story.Format,
		Subtitle:   story.Subtitle,
		Dedication: story.Dedication,
	}

	inputJSON, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("marshal story input: %w", err)
	}
	pagesJSON, err := json.Marshal(story.Pages)
	if err != nil {
		return fmt.Errorf("marshal story pages: %w", err)
	}

	var costsJSON []byte
	if story.Costs != nil {
		costsJSON, err = json.Marshal(story.Costs)
		if err != nil {
			return fmt.Errorf("marshal story costs: %w", err)
		}
	}

	err = s.db.QueryRow(`
		INSERT INTO stories (id, title, child_name, child_age, input_json, pages_json, source, costs_json)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, views, shares
	`, story.ID, story.Title, story.ChildName, story.ChildAge,
		inputJSON, pagesJSON, story.Source, costsJSON,
	).Scan(&story.CreatedAt, &story.Views, &story.Shares)
	if err != nil {
		return fmt.Errorf("create story: %w", err)
	}
	return nil
}

// FindByID retrieves a story by its UUID. Returns nil if not found.
func (s *StoryStore) FindByID(id uuid.UUID) (*models.Story, error) {
	story := &models.Story{}
	var inputJSON, pagesJSON, costsJSON []byte

	err := s.db.QueryRow(`
		SELECT id, title, child_name, child_age, input_json, pages_json,
		       source, costs_json, created_at, views, shares
		FROM stories WHERE id = $1
	`, id).Scan(
		&story.ID, &story.Title, &story.ChildName, &story.ChildAge,
		&inputJSON, &pagesJSON, &story.Source, &costsJSON,
		&story.CreatedAt, &story.Views, &story.Shares,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find story by id: %w", err)
	}

	var input models.StoryInput
	if err := json.Unmarshal(inputJSON, &input); err != nil {
		return nil, fmt.Errorf("unmarshal story input: %w", err)
	}
	story.Interests = input.Interests
	story.Lessons = input.Lessons
	story.Characters = input.Characters
	story.Setting = input.Setting
	story.Format = input.Format
	story.Subtitle = input.Subtitle
	story.Dedication = input.Dedication

	if err := json.Unmarshal(pagesJSON, &story.Pages); err != nil {
		return nil, fmt.Errorf("unmarshal story pages: %w", err)
	}

	if len(costsJSON) > 0 {
		costs := &models.CostBreakdown{}
		if err := json.Unmarshal(costsJSON, costs); err != nil {
			return nil, fmt.Errorf("unmarshal story costs: %w", err)
		}
		story.Costs = costs
	}

	return story, nil
}

// IncrementViews atomically bumps the view counter and returns both fresh
// counters. Returns ErrNotFound for an unknown id.
func (s *StoryStore) IncrementViews(id uuid.UUID) (views, shares int, err error) {
	err = s.db.QueryRow(`
		UPDATE stories SET views = views + 1 WHERE id = $1 RETURNING views, shares
	`, id).Scan(&views, &shares)
	if err == sql.ErrNoRows {
		return 0, 0, ErrNotFound
	}
	if err != nil {
		return 0, 0, fmt.Errorf("increment views: %w", err)
	}
	return views, shares, nil
}

// IncrementShares atomically bumps the share counter and returns both
// fresh counters. Returns ErrNotFound for an unknown id.
func (s *StoryStore) IncrementShares(id uuid.UUID) (views, shares int, err error) {
	err = s.db.QueryRow(`
		UPDATE stories SET shares = shares + 1 WHERE id = $1 RETURNING views, shares
	`, id).Scan(&views, &shares)
	if err == sql.ErrNoRows {
		return 0, 0, ErrNotFound
	}
	if err != nil {
		return 0, 0, fmt.Errorf("increment shares: %w", err)
	}
	return views, shares, nil
}

// Totals returns the story count and the view and share sums.
func (s *StoryStore) Totals() (stories, views, shares int, err error) {
	err = s.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(views), 0), COALESCE(SUM(shares), 0) FROM stories
	`).Scan(&stories, &views, &shares)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("story totals: %w", err)
	}
	return stories, views, shares, nil
}

// ListInputs returns the questionnaire snapshot of every story, for the
// stats frequency scan.
func (s *StoryStore) ListInputs() ([]models.StoryInput, error) {
	rows, err := s.db.Query(`SELECT input_json FROM stories`)
	if err != nil {
		return nil, fmt.Errorf("list story inputs: %w", err)
	}
	defer rows.Close()

	var inputs []models.StoryInput
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan story input: %w", err)
		}
		var input models.StoryInput
		if err := json.Unmarshal(raw, &input); err != nil {
			return nil, fmt.Errorf("unmarshal story input: %w", err)
		}
		inputs = append(inputs, input)
	}
	return inputs, rows.Err()
}

// ListRecent returns compact summaries of the most recently created
// stories, newest first.
func (s *StoryStore) ListRecent(limit int) ([]models.StorySummary, error) {
	rows, err := s.db.Query(`
		SELECT id, title, child_name, child_age, created_at, views, shares
		FROM stories
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent stories: %w", err)
	}
	defer rows.Close()

	var summaries []models.StorySummary
	for rows.Next() {
		var sum models.StorySummary
		if err := rows.Scan(
			&sum.ID, &sum.Title, &sum.ChildName, &sum.ChildAge,
			&sum.CreatedAt, &sum.Views, &sum.Shares,
		); err != nil {
			return nil, fmt.Errorf("scan story summary: %w", err)
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}
