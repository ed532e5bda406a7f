// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"storyforge/internal/models"
)

var errBoom = errors.New("boom")

func writerRequest() *models.GenerateRequest {
	return &models.GenerateRequest{
		ChildName: "Mira",
		ChildAge:  6,
		Interests: []string{"dinosaurs", "painting"},
		Lessons:   []string{"Kindness & Sharing"},
		Characters: []models.Character{
			{Name: "Rex", Relationship: models.RelationshipPet},
		},
		Format: models.FormatDigital,
	}
}

const validStoryJSON = `{
  "title": "Mira and the Painted Valley",
  "subtitle": "A dino-sized adventure",
  "dedication": "For Mira, who shares her colors with everyone.",
  "pages": [
    {"pageNumber": 1, "text": "Page one.", "illustrationDescription": "Mira meets Rex", "moodColor": "#4A7C59"},
    {"pageNumber": 2, "text": "Page two.", "illustrationDescription": "A painted valley", "moodColor": "#6B8E5B"},
    {"pageNumber": 3, "text": "Page three.", "illustrationDescription": "Sharing brushes", "moodColor": "#8FBC8F"},
    {"pageNumber": 4, "text": "Page four.", "illustrationDescription": "Home at sunset", "moodColor": "#3D6B4F"}
  ]
}`

func newWriterWithProvider(p Provider) *Writer {
	reg := &Registry{
		providers: map[string]Provider{"mock": p},
		active:    "mock",
	}
	return NewWriter(reg)
}

func TestWriterWriteStory_Success(t *testing.T) {
	mock := &usageMockProvider{
		mockProvider: mockProvider{name: "mock", response: validStoryJSON},
		usage:        Usage{InputTokens: 500, OutputTokens: 1200},
	}
	w := newWriterWithProvider(mock)

	draft, err := w.WriteStory(context.Background(), writerRequest())
	if err != nil {
		t.Fatalf("WriteStory: unexpected error: %v", err)
	}

	if draft.Title != "Mira and the Painted Valley" {
		t.Errorf("title: got %q", draft.Title)
	}
	if len(draft.Pages) != aiPageCount {
		t.Fatalf("pages: got %d, want %d", len(draft.Pages), aiPageCount)
	}
	if draft.Usage.InputTokens != 500 || draft.Usage.OutputTokens != 1200 {
		t.Errorf("usage: got %+v", draft.Usage)
	}
	if draft.Pages[0].MoodColor != "#4A7C59" {
		t.Errorf("page 1 mood color: got %q", draft.Pages[0].MoodColor)
	}
}

func TestWriterWriteStory_StripsCodeFence(t *testing.T) {
	mock := &mockProvider{name: "mock", response: "```json\n" + validStoryJSON + "\n```"}
	w := newWriterWithProvider(mock)

	draft, err := w.WriteStory(context.Background(), writerRequest())
	if err != nil {
		t.Fatalf("WriteStory: unexpected error: %v", err)
	}
	if len(draft.Pages) != aiPageCount {
		t.Errorf("pages: got %d, want %d", len(draft.Pages), aiPageCount)
	}
}

func TestWriterWriteStory_TrimsExtraPages(t *testing.T) {
	sixPages := strings.Replace(validStoryJSON, `"moodColor": "#3D6B4F"}`,
		`"moodColor": "#3D6B4F"},
    {"pageNumber": 5, "text": "Bonus.", "illustrationDescription": "Extra", "moodColor": "#5B8C5A"},
    {"pageNumber": 6, "text": "Bonus.", "illustrationDescription": "Extra", "moodColor": "#7CAA7C"}`, 1)

	mock := &mockProvider{name: "mock", response: sixPages}
	w := newWriterWithProvider(mock)

	draft, err := w.WriteStory(context.Background(), writerRequest())
	if err != nil {
		t.Fatalf("WriteStory: unexpected error: %v", err)
	}
	if len(draft.Pages) != aiPageCount {
		t.Errorf("pages: got %d, want %d", len(draft.Pages), aiPageCount)
	}
}

func TestWriterWriteStory_RejectsTooFewPages(t *testing.T) {
	threePages := `{"title": "Short", "pages": [
		{"pageNumber": 1, "text": "a", "illustrationDescription": "x"},
		{"pageNumber": 2, "text": "b", "illustrationDescription": "y"},
		{"pageNumber": 3, "text": "c", "illustrationDescription": "z"}]}`

	mock := &mockProvider{name: "mock", response: threePages}
	w := newWriterWithProvider(mock)

	if _, err := w.WriteStory(context.Background(), writerRequest()); err == nil {
		t.Fatal("expected error for 3-page draft, got nil")
	}
}

func TestWriterWriteStory_RejectsMissingTitle(t *testing.T) {
	noTitle := strings.Replace(validStoryJSON, `"title": "Mira and the Painted Valley",`, `"title": "",`, 1)
	mock := &mockProvider{name: "mock", response: noTitle}
	w := newWriterWithProvider(mock)

	if _, err := w.WriteStory(context.Background(), writerRequest()); err == nil {
		t.Fatal("expected error for missing title, got nil")
	}
}

func TestWriterWriteStory_RejectsNonJSON(t *testing.T) {
	mock := &mockProvider{name: "mock", response: "Once upon a time, here is your story!"}
	w := newWriterWithProvider(mock)

	if _, err := w.WriteStory(context.Background(), writerRequest()); err == nil {
		t.Fatal("expected error for non-JSON response, got nil")
	}
}

func TestWriterWriteStory_ProviderError(t *testing.T) {
	mock := &mockProvider{name: "mock", err: errBoom}
	w := newWriterWithProvider(mock)

	if _, err := w.WriteStory(context.Background(), writerRequest()); err == nil {
		t.Fatal("expected error when provider fails, got nil")
	}
}

// flaggingModerator always flags with the given categories.
type flaggingModerator struct {
	categories []string
}

func (m *flaggingModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	return &ModerationResult{Safe: false, Categories: m.categories}, nil
}

func TestWriterWriteStory_ModerationFlagBlocksGeneration(t *testing.T) {
	mock := &mockProvider{name: "mock", response: validStoryJSON}
	reg := &Registry{
		providers: map[string]Provider{"mock": mock},
		active:    "mock",
		moderator: &flaggingModerator{categories: []string{"violence"}},
	}
	w := NewWriter(reg)

	_, err := w.WriteStory(context.Background(), writerRequest())
	if err == nil {
		t.Fatal("expected error for flagged prompt, got nil")
	}
	if !strings.Contains(err.Error(), "violence") {
		t.Errorf("error should mention flagged category: got %q", err.Error())
	}
	if mock.callCount != 0 {
		t.Errorf("provider should not be called for flagged prompt, got %d calls", mock.callCount)
	}
}

func TestBuildSystemPrompt_AgeBands(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{3, "Age 2-4"},
		{4, "Age 2-4"},
		{5, "Age 5-7"},
		{7, "Age 5-7"},
		{8, "Age 8-10"},
		{10, "Age 8-10"},
	}

	for _, tt := range tests {
		req := writerRequest()
		req.ChildAge = tt.age
		prompt := buildSystemPrompt(req)
		if !strings.Contains(prompt, tt.want) {
			t.Errorf("age %d: prompt missing %q", tt.age, tt.want)
		}
	}
}

func TestBuildSystemPrompt_LearningLessons(t *testing.T) {
	req := writerRequest()
	req.Lessons = []string{"Learning to Read", "Learning to Write"}

	prompt := buildSystemPrompt(req)
	if !strings.Contains(prompt, "phonics-friendly") {
		t.Error("prompt missing learning-to-read instructions")
	}
	if !strings.Contains(prompt, "letter tracing") {
		t.Error("prompt missing learning-to-write instructions")
	}
}

func TestBuildSystemPrompt_Characters(t *testing.T) {
	prompt := buildSystemPrompt(writerRequest())
	if !strings.Contains(prompt, "- Rex (pet)") {
		t.Errorf("prompt missing character line: %s", prompt)
	}
}

func TestStripJSONFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"whitespace", "  {\"a\":1}  ", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripJSONFence(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
