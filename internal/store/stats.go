// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"sort"
	"strings"

	"storyforge/internal/models"
)

const (
	statsTopN        = 10
	statsRecentLimit = 20
)

// Stats aggregates the public stats feed: counter totals, top-10 frequency
// tables over the questionnaire snapshots, and the recent story list.
// The frequency tables are an O(n) scan over input_json; the table is small
// enough that no denormalized counters are kept.
func (s *StoryStore) Stats() (*models.Stats, error) {
	stories, views, shares, err := s.Totals()
	if err != nil {
		return nil, err
	}

	inputs, err := s.ListInputs()
	if err != nil {
		return nil, err
	}

	interests := make(map[string]int)
	lessons := make(map[string]int)
	settings := make(map[string]int)
	for _, input := range inputs {
		for _, v := range input.Interests {
			countValue(interests, v)
		}
		for _, v := range input.Lessons {
			countValue(lessons, v)
		}
		countValue(settings, input.Setting)
	}

	recent, err := s.ListRecent(statsRecentLimit)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []models.StorySummary{}
	}

	return &models.Stats{
		TotalStories:  stories,
		TotalViews:    views,
		TotalShares:   shares,
		TopInterests:  topEntries(interests, statsTopN),
		TopLessons:    topEntries(lessons, statsTopN),
		TopSettings:   topEntries(settings, statsTopN),
		RecentStories: recent,
	}, nil
}

// countValue bumps the counter for a trimmed value, skipping blanks.
func countValue(counts map[string]int, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	counts[value]++
}

// topEntries converts a frequency map to its top-N entries, ordered by
// count descending with value ascending as the tiebreak so the order is
// deterministic. Always returns a non-nil slice.
func topEntries(counts map[string]int, n int) []models.FrequencyEntry {
	entries := make([]models.FrequencyEntry, 0, len(counts))
	for value, count := range counts {
		entries = append(entries, models.FrequencyEntry{Value: value, Count: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Value < entries[j].Value
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
