package generator

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"storyforge/internal/models"
	"storyforge/internal/pricing"
)

// Usage is the token accounting a writer reports for one generation.
// Writers that cannot report usage leave it zero.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Draft is a candidate story produced by a StoryWriter, before
// normalization and persistence.
type Draft struct {
	Title      string
	Subtitle   string
	Dedication string
	Pages      []models.StoryPage
	Usage      Usage
}

// StoryWriter produces a complete story draft for a questionnaire.
// Implementations must return an error rather than a partial draft; the
// generator treats any error as a signal to fall back to the templates.
type StoryWriter interface {
	WriteStory(ctx context.Context, req *models.GenerateRequest) (*Draft, error)
}

// Illustrator renders one illustration from a page description. It returns
// the image bytes and their content type.
type Illustrator interface {
	Illustrate(ctx context.Context, description, setting string) ([]byte, string, error)
}

// IllustrationSink stores one page illustration and returns its public URL.
type IllustrationSink interface {
	SaveIllustration(ctx context.Context, storyID uuid.UUID, pageNumber int, contentType string, data []byte) (string, error)
}

// Generator assembles finished stories. The writer, illustrator, and sink
// are all optional; with none configured the generator is the pure
// deterministic template engine.
type Generator struct {
	writer      StoryWriter
	illustrator Illustrator
	sink        IllustrationSink
	logger      *slog.Logger
}

// New builds a Generator. Any of writer, illustrator, and sink may be nil.
func New(writer StoryWriter, illustrator Illustrator, sink IllustrationSink, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{writer: writer, illustrator: illustrator, sink: sink, logger: logger}
}

// Generate produces a complete story for a validated request. It never
// fails: when the AI writer errors or returns a structurally unusable
// draft, the deterministic template path takes over. Illustration failures
// degrade individual pages, not the story.
func (g *Generator) Generate(ctx context.Context, req *models.GenerateRequest) *models.Story {
	story := &models.Story{
		ID:         uuid.New(),
		ChildName:  req.ChildName,
		ChildAge:   req.ChildAge,
		Interests:  req.Interests,
		Lessons:    req.Lessons,
		Characters: req.Characters,
		Setting:    req.Setting,
		Format:     req.Format,
	}

	var usage Usage
	if g.writer != nil {
		draft, err := g.writer.WriteStory(ctx, req)
		switch {
		case err != nil:
			g.logger.Warn("ai story generation failed, using template",
				"error", err)
		case draft.Title == "" || len(draft.Pages) == 0:
			g.logger.Warn("ai draft unusable, using template",
				"pages", len(draft.Pages))
		default:
			story.Title = draft.Title
			story.Subtitle = draft.Subtitle
			story.Dedication = draft.Dedication
			story.Pages = normalizePages(draft.Pages, req.Setting)
			story.Source = models.SourceAI
			usage = draft.Usage
		}
	}

	if story.Source != models.SourceAI {
		rendered := Render(SelectTemplate(req), req)
		story.Title = rendered.Title
		story.Subtitle = rendered.Subtitle
		story.Dedication = rendered.Dedication
		story.Pages = rendered.Pages
		story.Source = models.SourceTemplate
	}

	images := g.illustrate(ctx, story)

	if story.Source == models.SourceAI {
		costs := pricing.Estimate(usage.InputTokens, usage.OutputTokens, images)
		story.Costs = &costs
	}

	return story
}

// illustrate renders and stores an image for each page in order, returning
// the number of pages that got one. A failed page keeps its mood-color
// placeholder; later pages still get their turn.
func (g *Generator) illustrate(ctx context.Context, story *models.Story) int {
	if g.illustrator == nil || g.sink == nil {
		return 0
	}

	images := 0
	for i := range story.Pages {
		page := &story.Pages[i]
		data, contentType, err := g.illustrator.Illustrate(ctx, page.IllustrationDescription, story.Setting)
		if err != nil {
			g.logger.Warn("illustration failed",
				"story_id", story.ID,
				"page", page.PageNumber,
				"error", err)
			continue
		}
		url, err := g.sink.SaveIllustration(ctx, story.ID, page.PageNumber, contentType, data)
		if err != nil {
			g.logger.Warn("illustration upload failed",
				"story_id", story.ID,
				"page", page.PageNumber,
				"error", err)
			continue
		}
		page.IllustrationURL = url
		images++
	}
	return images
}

// normalizePages renumbers pages 1..N and backfills missing mood colors
// from the setting's palette. AI drafts control their own text but never
// the page ordering contract.
func normalizePages(pages []models.StoryPage, setting string) []models.StoryPage {
	out := make([]models.StoryPage, len(pages))
	for i, p := range pages {
		p.PageNumber = i + 1
		if p.MoodColor == "" {
			p.MoodColor = MoodColor(setting, i)
		}
		out[i] = p
	}
	return out
}
