// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"unicode/utf8"

	"storyforge/internal/models"
)

// Validation limits for questionnaire fields.
const (
	maxNameLen      = 50
	minAge          = 2
	maxAge          = 10
	maxInterests    = 5
	maxLessons      = 3
	maxLessonLen    = 100
	maxInterestLen  = 50
	maxCharacters   = 3
	maxEventNameLen = 100
)

// normalizeGenerateRequest trims whitespace from free-text fields and
// drops empty list entries, so validation and generation see the same
// cleaned values.
func normalizeGenerateRequest(req *models.GenerateRequest) {
	req.ChildName = strings.TrimSpace(req.ChildName)
	req.Interests = trimNonEmpty(req.Interests)
	req.Lessons = trimNonEmpty(req.Lessons)
	req.Setting = strings.TrimSpace(req.Setting)

	for i := range req.Characters {
		req.Characters[i].Name = strings.TrimSpace(req.Characters[i].Name)
	}
	if req.Format == "" {
		req.Format = models.FormatDigital
	}
}

func trimNonEmpty(values []string) []string {
	out := values[:0]
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// validateGenerateRequest checks a normalized questionnaire and returns
// the first error found, or "" when the request is acceptable. Unknown
// settings are allowed; the generator falls back to its default setting.
func validateGenerateRequest(req *models.GenerateRequest) string {
	if req.ChildName == "" {
		return "Child name is required."
	}
	if utf8.RuneCountInString(req.ChildName) > maxNameLen {
		return "Child name is too long (max 50 characters)."
	}
	if req.ChildAge < minAge || req.ChildAge > maxAge {
		return "Child age must be between 2 and 10."
	}

	if len(req.Interests) == 0 {
		return "At least one interest is required."
	}
	if len(req.Interests) > maxInterests {
		return "Too many interests (max 5)."
	}
	seen := make(map[string]bool, len(req.Interests))
	for _, interest := range req.Interests {
		if utf8.RuneCountInString(interest) > maxInterestLen {
			return "Interest is too long (max 50 characters)."
		}
		key := strings.ToLower(interest)
		if seen[key] {
			return "Interests must be unique."
		}
		seen[key] = true
	}

	if len(req.Lessons) == 0 {
		return "At least one lesson is required."
	}
	if len(req.Lessons) > maxLessons {
		return "Too many lessons (max 3)."
	}
	for _, lesson := range req.Lessons {
		if utf8.RuneCountInString(lesson) > maxLessonLen {
			return "Lesson is too long (max 100 characters)."
		}
	}

	if len(req.Characters) > maxCharacters {
		return "Too many characters (max 3)."
	}
	for _, c := range req.Characters {
		if c.Name == "" {
			return "Character name is required."
		}
		if utf8.RuneCountInString(c.Name) > maxNameLen {
			return "Character name is too long (max 50 characters)."
		}
		switch c.Relationship {
		case models.RelationshipFriend, models.RelationshipSibling, models.RelationshipPet:
		default:
			return "Character relationship must be friend, sibling, or pet."
		}
	}

	switch req.Format {
	case models.FormatDigital, models.FormatComic, models.FormatA4Book:
	default:
		return "Format must be digital, comic, or a4-book."
	}

	return ""
}

// validateEventName checks an analytics event name.
func validateEventName(event string) string {
	if event == "" {
		return "Event name is required."
	}
	if utf8.RuneCountInString(event) > maxEventNameLen {
		return "Event name is too long (max 100 characters)."
	}
	return ""
}
