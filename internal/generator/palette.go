// Package generator implements the procedural story-generation engine:
// a deterministic template compositor that picks a narrative template for
// a questionnaire, fills its slots, and assigns mood colors and
// illustration prompts per page. The Generator type wraps the deterministic
// path with an optional AI writer and illustrator, falling back to the
// templates on any upstream failure.
package generator

// DefaultSetting is used when a request omits the setting or names one
// the palette table does not know.
const DefaultSetting = "Enchanted Forest"

// moodPalettes maps each story setting to an ordered list of hex colors.
// Page i gets palette[i mod len(palette)], so every page has a color even
// when a template has more pages than the palette has entries.
var moodPalettes = map[string][]string{
	"Enchanted Forest":       {"#4A7C59", "#6B8E5B", "#8FBC8F", "#3D6B4F", "#5B8C5A", "#7CAA7C", "#4E8B57", "#6DAF6D"},
	"Outer Space":            {"#1E3A5F", "#2C5282", "#4A90D9", "#1A365D", "#2B4C7E", "#3B6FA0", "#1E4D8C", "#5B8DB8"},
	"Underwater Kingdom":     {"#0E7490", "#0891B2", "#22D3EE", "#0C6478", "#1098AD", "#38BDF8", "#0D9488", "#2DD4BF"},
	"Magical School":         {"#7C3AED", "#8B5CF6", "#A78BFA", "#6D28D9", "#9333EA", "#C084FC", "#7E22CE", "#B57EDC"},
	"Neighborhood Adventure": {"#D97706", "#F59E0B", "#FBBF24", "#B45309", "#D4A754", "#EAB308", "#CA8A04", "#F5C842"},
	"Dinosaur World":         {"#065F46", "#047857", "#10B981", "#064E3B", "#059669", "#34D399", "#0D7B5F", "#6EE7B7"},
	"Pirate Ship":            {"#92400E", "#B45309", "#D97706", "#78350F", "#A16207", "#CA8A04", "#8B5E14", "#D4A754"},
}

// Palette returns the mood color list for a setting, falling back to the
// default palette for unknown settings. The returned slice must not be
// modified by callers.
func Palette(setting string) []string {
	if p, ok := moodPalettes[setting]; ok {
		return p
	}
	return moodPalettes[DefaultSetting]
}

// MoodColor returns the palette color for a 0-based page index,
// cycling when the index exceeds the palette length.
func MoodColor(setting string, pageIndex int) string {
	p := Palette(setting)
	return p[pageIndex%len(p)]
}

// KnownSetting reports whether the setting has its own palette.
func KnownSetting(setting string) bool {
	_, ok := moodPalettes[setting]
	return ok
}

// Settings lists the settings the palette table knows, in a fixed order
// suitable for questionnaire dropdowns.
func Settings() []string {
	return []string{
		"Enchanted Forest",
		"Outer Space",
		"Underwater Kingdom",
		"Magical School",
		"Neighborhood Adventure",
		"Dinosaur World",
		"Pirate Ship",
	}
}
