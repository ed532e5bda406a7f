// Package models defines the core domain types shared across the
// Storyforge service: generation requests, stories, pages, and the
// aggregate stats DTOs.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Relationship tags a named character in the questionnaire.
type Relationship string

const (
	RelationshipFriend  Relationship = "friend"
	RelationshipSibling Relationship = "sibling"
	RelationshipPet     Relationship = "pet"
)

// Character is a named companion supplied in the questionnaire.
type Character struct {
	Name         string       `json:"name"`
	Relationship Relationship `json:"relationship"`
}

// Format selects the output layout the reader UI renders.
type Format string

const (
	FormatDigital Format = "digital"
	FormatComic   Format = "comic"
	FormatA4Book  Format = "a4-book"
)

// GenerateRequest is the questionnaire input for one story generation.
// It is immutable once validated; the generation engine never mutates it.
type GenerateRequest struct {
	ChildName  string      `json:"childName"`
	ChildAge   int         `json:"childAge"`
	Interests  []string    `json:"interests"`
	Lessons    []string    `json:"lessons"`
	Characters []Character `json:"characters,omitempty"`
	Setting    string      `json:"setting,omitempty"`
	Format     Format      `json:"format"`
}

// CompanionName returns the name of the first named character, or "" when
// the questionnaire named none. Templates must only ever reference this name.
func (r *GenerateRequest) CompanionName() string {
	if len(r.Characters) == 0 {
		return ""
	}
	return r.Characters[0].Name
}

// StoryPage is one page of a generated story. IllustrationURL is set only
// when image generation succeeded for this page; readers fall back to a
// mood-color placeholder otherwise.
type StoryPage struct {
	PageNumber              int    `json:"pageNumber"`
	Text                    string `json:"text"`
	IllustrationDescription string `json:"illustrationDescription"`
	IllustrationURL         string `json:"illustrationUrl,omitempty"`
	MoodColor               string `json:"moodColor"`
}

// Source tags the provenance of a story's content.
type Source string

const (
	// SourceTemplate marks stories rendered by the deterministic templates.
	SourceTemplate Source = "template"
	// SourceAI marks stories whose content came from a structurally valid
	// AI response. A failed AI attempt that fell back is still "template".
	SourceAI Source = "ai"
)

// CostBreakdown is the approximate spend for one AI-sourced generation.
// Component values are rounded to 4 decimal places; Total is computed from
// the unrounded components and rounded last.
type CostBreakdown struct {
	TextGeneration float64 `json:"textGeneration"`
	Illustrations  float64 `json:"illustrations"`
	Total          float64 `json:"total"`
}

// Story is a finished, persisted storybook. Pages, title, and the
// denormalized request fields are immutable after creation; only Views,
// Shares, and per-page illustration URLs change afterwards.
type Story struct {
	ID         uuid.UUID      `json:"id"`
	Title      string         `json:"title"`
	Subtitle   string         `json:"subtitle"`
	Dedication string         `json:"dedication"`
	ChildName  string         `json:"childName"`
	ChildAge   int            `json:"childAge"`
	Interests  []string       `json:"interests"`
	Lessons    []string       `json:"lessons"`
	Characters []Character    `json:"characters,omitempty"`
	Setting    string         `json:"setting,omitempty"`
	Format     Format         `json:"format"`
	Pages      []StoryPage    `json:"pages"`
	Source     Source         `json:"source"`
	Costs      *CostBreakdown `json:"costs,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	Views      int            `json:"views"`
	Shares     int            `json:"shares"`
}

// StoryInput is the denormalized request snapshot stored as input_json.
// The store treats it as an opaque blob; the stats scan and the retrieval
// endpoint decode it back into display fields.
type StoryInput struct {
	Interests  []string    `json:"interests"`
	Lessons    []string    `json:"lessons"`
	Characters []Character `json:"characters,omitempty"`
	Setting    string      `json:"setting,omitempty"`
	Format     Format      `json:"format"`
	Subtitle   string      `json:"subtitle"`
	Dedication string      `json:"dedication"`
}
