package generator

import (
	"strings"

	"storyforge/internal/models"
)

// TemplateID names one of the fixed narrative templates.
type TemplateID string

const (
	TemplateQuest     TemplateID = "quest"
	TemplateDiscovery TemplateID = "discovery"
	TemplateKindness  TemplateID = "kindness"
)

// featureHash is a low-entropy additive hash over cheap request attributes.
// It is not cryptographic; it only adds repeatable variety so that similar
// questionnaires do not all land on the same template. The same request
// always produces the same value.
func featureHash(req *models.GenerateRequest) int {
	return len(req.ChildName) + len(req.Interests) + req.ChildAge
}

// hasLesson reports whether any lesson contains the keyword,
// case-insensitively. Lessons may be curated labels or free text, so
// substring matching is deliberate ("Kindness & Sharing" matches "kindness").
func hasLesson(lessons []string, keyword string) bool {
	keyword = strings.ToLower(keyword)
	for _, l := range lessons {
		if strings.Contains(strings.ToLower(l), keyword) {
			return true
		}
	}
	return false
}

// SelectTemplate maps a validated request to exactly one template.
// Lesson keywords give each template an affinity; the feature hash breaks
// ties. The quest template is the default, so selection never fails.
func SelectTemplate(req *models.GenerateRequest) TemplateID {
	kindness := hasLesson(req.Lessons, "kindness") ||
		hasLesson(req.Lessons, "sharing") ||
		hasLesson(req.Lessons, "cause") ||
		hasLesson(req.Lessons, "systems")
	curiosity := hasLesson(req.Lessons, "curiosity") ||
		hasLesson(req.Lessons, "creativity") ||
		hasLesson(req.Lessons, "first")

	hash := featureHash(req)
	if kindness && hash%3 != 0 {
		return TemplateKindness
	}
	if curiosity || hash%2 == 0 {
		return TemplateDiscovery
	}
	return TemplateQuest
}
