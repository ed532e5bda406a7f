package generator

import (
	"storyforge/internal/models"
)

// TemplatePageCount is the fixed page count of every deterministic
// template. It never varies per request.
const TemplatePageCount = 8

// youngAgeMax is the upper bound of the "young" language register.
// The register is a pure function of age, not of template: at or below
// this age, pages use short sentences, repetition, and simple vocabulary.
const youngAgeMax = 4

// Rendered is the output of one template render: derived display text plus
// the ordered page sequence.
type Rendered struct {
	Title      string
	Subtitle   string
	Dedication string
	Pages      []models.StoryPage
}

// slots carries the request-derived values every template pulls from.
// Populating them once keeps companions and interests consistent across
// all pages of one story: no page may reference a name that is not here.
type slots struct {
	name      string
	age       int
	young     bool
	companion string
	hasComp   bool
	interest  string
	interest2 string
	setting   string
	palette   []string
	lessons   []string
}

// newSlots derives the slot values from a validated request. Missing
// optional fields get the same defaults for every template, so rendering
// stays total and deterministic.
func newSlots(req *models.GenerateRequest) slots {
	s := slots{
		name:      req.ChildName,
		age:       req.ChildAge,
		young:     req.ChildAge <= youngAgeMax,
		companion: req.CompanionName(),
		setting:   req.Setting,
		lessons:   req.Lessons,
	}
	s.hasComp = s.companion != ""

	if !KnownSetting(s.setting) {
		s.setting = DefaultSetting
	}
	s.palette = Palette(s.setting)

	s.interest = "adventure"
	if len(req.Interests) > 0 && req.Interests[0] != "" {
		s.interest = req.Interests[0]
	}
	s.interest2 = "exploring"
	if len(req.Interests) > 1 && req.Interests[1] != "" {
		s.interest2 = req.Interests[1]
	} else if len(req.Interests) > 0 && req.Interests[0] != "" {
		s.interest2 = req.Interests[0]
	}

	return s
}

// teaches reports whether any of the request's lessons matches any of the
// given keywords.
func (s slots) teaches(keywords ...string) bool {
	for _, k := range keywords {
		if hasLesson(s.lessons, k) {
			return true
		}
	}
	return false
}

// color returns the mood color for a 0-based page index.
func (s slots) color(i int) string {
	return s.palette[i%len(s.palette)]
}

// Render fills the identified template with the request's slot values.
// It is pure and total: identical input yields byte-identical output, and
// it never fails for a request that passed validation.
func Render(id TemplateID, req *models.GenerateRequest) Rendered {
	s := newSlots(req)
	switch id {
	case TemplateKindness:
		return renderKindness(s)
	case TemplateDiscovery:
		return renderDiscovery(s)
	default:
		return renderQuest(s)
	}
}
