// Package pricing estimates the dollar cost of an AI story generation from
// the token and image counts the providers report. The estimates are
// display-only; nothing bills against them.
package pricing

import (
	"math"

	"storyforge/internal/models"
)

// Per-unit prices in USD. Token prices are per million tokens.
const (
	inputTokenPrice  = 0.10
	outputTokenPrice = 0.40
	imagePrice       = 0.04
)

// round4 rounds to 4 decimal places, the resolution the reader UI shows.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// Estimate computes the cost breakdown for one generation. Component
// fields are individually rounded; Total is the rounded sum of the
// unrounded components, so Total can differ from the sum of the displayed
// components by at most one rounding step.
func Estimate(inputTokens, outputTokens, images int) models.CostBreakdown {
	text := float64(inputTokens)/1_000_000*inputTokenPrice +
		float64(outputTokens)/1_000_000*outputTokenPrice
	imgs := float64(images) * imagePrice

	return models.CostBreakdown{
		TextGeneration: round4(text),
		Illustrations:  round4(imgs),
		Total:          round4(text + imgs),
	}
}
