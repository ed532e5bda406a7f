// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"storyforge/internal/generator"
	"storyforge/internal/models"
)

// aiPageCount is the fixed page count of AI-written stories. Templates
// produce longer books; the AI variant trades length for personalization.
const aiPageCount = 4

// Writer produces story drafts through the provider registry. It implements
// generator.StoryWriter: prompts are moderated before generation, and any
// moderation flag, provider error, or malformed response surfaces as an
// error so the caller falls back to the templates.
type Writer struct {
	registry *Registry
}

// NewWriter creates a story writer on top of a provider registry.
func NewWriter(registry *Registry) *Writer {
	return &Writer{registry: registry}
}

// WriteStory generates a complete story draft for the questionnaire.
func (w *Writer) WriteStory(ctx context.Context, req *models.GenerateRequest) (*generator.Draft, error) {
	// Free-text questionnaire fields go through moderation first. A
	// moderator outage is not fatal; a flag is.
	if result, err := w.registry.CheckPrompt(ctx, moderationInput(req)); err == nil && !result.Safe {
		return nil, fmt.Errorf("ai: prompt flagged by moderation: %s", strings.Join(result.Categories, ", "))
	}

	userPrompt := fmt.Sprintf(
		"Create a %d-page story for %s (age %d) who loves %s. The story should teach: %s.",
		aiPageCount, req.ChildName, req.ChildAge,
		strings.Join(req.Interests, " and "),
		strings.Join(req.Lessons, ", "))

	text, usage, err := w.registry.GenerateWithUsage(ctx, buildSystemPrompt(req), userPrompt)
	if err != nil {
		return nil, fmt.Errorf("ai: generate story: %w", err)
	}

	var parsed aiStoryResponse
	if err := json.Unmarshal([]byte(stripJSONFence(text)), &parsed); err != nil {
		return nil, fmt.Errorf("ai: parse story response: %w", err)
	}

	if parsed.Title == "" || len(parsed.Pages) < aiPageCount {
		return nil, fmt.Errorf("ai: invalid story structure (title %q, %d pages)", parsed.Title, len(parsed.Pages))
	}
	parsed.Pages = parsed.Pages[:aiPageCount]

	pages := make([]models.StoryPage, len(parsed.Pages))
	for i, p := range parsed.Pages {
		pages[i] = models.StoryPage{
			PageNumber:              p.PageNumber,
			Text:                    p.Text,
			IllustrationDescription: p.IllustrationDescription,
			MoodColor:               p.MoodColor,
		}
	}

	return &generator.Draft{
		Title:      parsed.Title,
		Subtitle:   parsed.Subtitle,
		Dedication: parsed.Dedication,
		Pages:      pages,
		Usage: generator.Usage{
			InputTokens:  usage.InputTokens,
			OutputTokens: usage.OutputTokens,
		},
	}, nil
}

// buildSystemPrompt assembles the author instructions for one request:
// age-appropriate language guidance, the lessons to weave in, named
// characters, and the strict JSON output contract.
func buildSystemPrompt(req *models.GenerateRequest) string {
	var ageGuidance string
	switch {
	case req.ChildAge <= 4:
		ageGuidance = "Age 2-4: Very simple words, short sentences (max 15 words). Lots of repetition and rhythm. Sensory language. Simple cause and effect. Gentle emotions. No scary moments."
	case req.ChildAge <= 7:
		ageGuidance = "Age 5-7: Adventure and wonder! Some new vocabulary with context clues. Clear cause and effect. Dialogue. Light humor. The hero solves problems with creativity and kindness."
	default:
		ageGuidance = "Age 8-10: More complex plots. Nuanced lessons. Rich character development. Longer dialogue. The hero faces real dilemmas and grows."
	}

	var special strings.Builder
	if lessonContains(req.Lessons, "learning to read") {
		special.WriteString("\n\nSPECIAL: This story is for \"Learning to Read\". Use BIG, simple words. Short phonics-friendly sentences. Repetitive patterns. Each page should have only 1-3 simple sentences with common sight words.")
	}
	if lessonContains(req.Lessons, "learning to write") {
		special.WriteString("\n\nSPECIAL: This story is for \"Learning to Write\". Include letter tracing prompts. Each page should feature a key letter or word that the child can practice writing. Use phrases like \"Can you trace the letter ___?\" or \"Try writing ___ with your finger!\"")
	}

	var characters string
	if len(req.Characters) > 0 {
		lines := make([]string, len(req.Characters))
		for i, c := range req.Characters {
			lines[i] = fmt.Sprintf("- %s (%s)", c.Name, c.Relationship)
		}
		characters = "Include these characters in the story:\n" + strings.Join(lines, "\n") + "\n"
	}

	return fmt.Sprintf(`You are a world-class children's story author. Generate a personalized %d-page children's story as structured JSON.

STORY REQUIREMENTS:
- The child (%s, age %d) is the HERO
- Weave in their interests naturally: %s
- Lessons to teach (SHOW don't tell): %s
%s- %s
- YOU decide the best setting/world for this story based on the child's interests and lessons
- Create a satisfying story arc: setup, then challenge, then growth, then resolution
- Each page should be a distinct scene/moment%s

OUTPUT FORMAT (JSON only, no markdown):
{
  "title": "Story Title",
  "subtitle": "A short tagline",
  "dedication": "For %s, who...",
  "pages": [
    {
      "pageNumber": 1,
      "text": "The story text for this page (2-4 paragraphs)",
      "illustrationDescription": "Detailed scene description for an illustrator: characters, setting, action, mood, colors. Be specific about the art style: warm watercolor children's book illustration.",
      "moodColor": "#hex color that matches the emotional tone"
    }
  ]
}

Generate EXACTLY %d pages. Return ONLY valid JSON, no other text.`,
		aiPageCount,
		req.ChildName, req.ChildAge,
		strings.Join(req.Interests, ", "),
		strings.Join(req.Lessons, ", "),
		characters,
		ageGuidance,
		special.String(),
		req.ChildName,
		aiPageCount)
}

// moderationInput concatenates the request's free-text fields into one
// string for the safety check. Curated dropdown values ride along; only
// the names can carry arbitrary input.
func moderationInput(req *models.GenerateRequest) string {
	parts := []string{req.ChildName}
	parts = append(parts, req.Interests...)
	parts = append(parts, req.Lessons...)
	for _, c := range req.Characters {
		parts = append(parts, c.Name)
	}
	return strings.Join(parts, "\n")
}

// lessonContains reports whether any lesson contains the keyword,
// case-insensitively.
func lessonContains(lessons []string, keyword string) bool {
	for _, l := range lessons {
		if strings.Contains(strings.ToLower(l), keyword) {
			return true
		}
	}
	return false
}

// stripJSONFence removes a surrounding markdown code fence from a model
// response. Models often wrap JSON in ```json blocks despite instructions.
func stripJSONFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// --- AI story response types ---

type aiStoryResponse struct {
	Title      string        `json:"title"`
	Subtitle   string        `json:"subtitle"`
	Dedication string        `json:"dedication"`
	Pages      []aiStoryPage `json:"pages"`
}

type aiStoryPage struct {
	PageNumber              int    `json:"pageNumber"`
	Text                    string `json:"text"`
	IllustrationDescription string `json:"illustrationDescription"`
	MoodColor               string `json:"moodColor"`
}
