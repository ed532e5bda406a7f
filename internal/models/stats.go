package models

import (
	"time"

	"github.com/google/uuid"
)

// FrequencyEntry is one row of a top-N frequency table.
type FrequencyEntry struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// StorySummary is the compact story listing used by the stats feed.
type StorySummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	ChildName string    `json:"childName"`
	ChildAge  int       `json:"childAge"`
	CreatedAt time.Time `json:"createdAt"`
	Views     int       `json:"views"`
	Shares    int       `json:"shares"`
}

// Stats is the aggregate feed served by GET /api/stats. Slices are always
// non-nil so an empty store serializes as [] rather than null.
type Stats struct {
	TotalStories  int              `json:"totalStories"`
	TotalViews    int              `json:"totalViews"`
	TotalShares   int              `json:"totalShares"`
	TopInterests  []FrequencyEntry `json:"topInterests"`
	TopLessons    []FrequencyEntry `json:"topLessons"`
	TopSettings   []FrequencyEntry `json:"topSettings"`
	RecentStories []StorySummary   `json:"recentStories"`
}

// AnalyticsEvent is one coarse client-side analytics record.
type AnalyticsEvent struct {
	ID         int64          `json:"id"`
	Event      string         `json:"event"`
	Properties map[string]any `json:"properties"`
	CreatedAt  time.Time      `json:"createdAt"`
}
