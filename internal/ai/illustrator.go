// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
)

// Illustrator adapts the registry's image generation to the engine's
// per-page illustration contract (generator.Illustrator).
type Illustrator struct {
	registry *Registry
}

// NewIllustrator creates an illustrator on top of a provider registry.
func NewIllustrator(registry *Registry) *Illustrator {
	return &Illustrator{registry: registry}
}

// Illustrate renders one page illustration. The page description comes
// from the story engine; the style prefix keeps all pages of a book
// visually consistent.
func (il *Illustrator) Illustrate(ctx context.Context, description, setting string) ([]byte, string, error) {
	prompt := "Children's book illustration, warm watercolor style, gentle and whimsical: " + description
	if setting != "" {
		prompt += fmt.Sprintf(" The scene takes place in %s.", setting)
	}
	return il.registry.GenerateImage(ctx, prompt)
}
