package generator

import "testing"

func TestPaletteKnownSettings(t *testing.T) {
	for _, setting := range Settings() {
		p := Palette(setting)
		if len(p) != 8 {
			t.Errorf("Palette(%q): expected 8 colors, got %d", setting, len(p))
		}
		for i, c := range p {
			if len(c) != 7 || c[0] != '#' {
				t.Errorf("Palette(%q)[%d]: %q is not a hex color", setting, i, c)
			}
		}
	}
}

func TestPaletteUnknownFallsBack(t *testing.T) {
	got := Palette("The Moon")
	want := Palette(DefaultSetting)
	if len(got) != len(want) || got[0] != want[0] {
		t.Errorf("unknown setting should use the default palette, got %v", got)
	}
}

func TestMoodColorCycles(t *testing.T) {
	p := Palette("Outer Space")
	if MoodColor("Outer Space", 0) != p[0] {
		t.Errorf("page 0: got %q, want %q", MoodColor("Outer Space", 0), p[0])
	}
	if MoodColor("Outer Space", len(p)) != p[0] {
		t.Errorf("page %d should wrap to %q, got %q", len(p), p[0], MoodColor("Outer Space", len(p)))
	}
	if MoodColor("Outer Space", len(p)+3) != p[3] {
		t.Errorf("page %d should wrap to %q", len(p)+3, p[3])
	}
}

func TestKnownSetting(t *testing.T) {
	if !KnownSetting("Pirate Ship") {
		t.Error("Pirate Ship should be known")
	}
	if KnownSetting("Atlantis") {
		t.Error("Atlantis should not be known")
	}
	if KnownSetting("") {
		t.Error("empty setting should not be known")
	}
}

func TestSettingsListMatchesPalettes(t *testing.T) {
	names := Settings()
	if len(names) != 7 {
		t.Fatalf("expected 7 settings, got %d", len(names))
	}
	for _, name := range names {
		if !KnownSetting(name) {
			t.Errorf("listed setting %q has no palette", name)
		}
	}
}
