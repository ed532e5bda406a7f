// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import "testing"

func TestNewUnconfiguredReturnsNil(t *testing.T) {
	c, err := New("", "us-east-1", "", "", "storyforge-illustrations", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c != nil {
		t.Error("expected nil client when storage is unconfigured")
	}
}

func TestFileURL(t *testing.T) {
	c, err := New("https://s3.example.com/", "us-east-1", "key", "secret", "illustrations", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got := c.FileURL("stories/abc/page-1.png")
	want := "https://s3.example.com/illustrations/stories/abc/page-1.png"
	if got != want {
		t.Errorf("FileURL: got %q, want %q", got, want)
	}
}

func TestFileURLWithPublicURL(t *testing.T) {
	c, err := New("https://s3.example.com", "us-east-1", "key", "secret", "illustrations", "https://cdn.example.com/")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got := c.FileURL("stories/abc/page-1.png")
	want := "https://cdn.example.com/stories/abc/page-1.png"
	if got != want {
		t.Errorf("FileURL: got %q, want %q", got, want)
	}
}

func TestExtensionFor(t *testing.T) {
	cases := map[string]string{
		"image/png":  "png",
		"image/jpeg": "jpg",
		"image/webp": "webp",
		"":           "png",
	}
	for contentType, want := range cases {
		if got := extensionFor(contentType); got != want {
			t.Errorf("extensionFor(%q): got %q, want %q", contentType, got, want)
		}
	}
}
