// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API: story generation, retrieval
// with view counting, sharing, the public stats feed, and analytics
// event capture.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"storyforge/internal/cache"
	"storyforge/internal/generator"
	"storyforge/internal/models"
	"storyforge/internal/store"
)

// maxRequestBody caps JSON request bodies. The questionnaire is small;
// anything bigger is abuse.
const maxRequestBody = 1 << 20

// API groups the JSON endpoint handlers. The story and stats caches sit
// in front of PostgreSQL; counters always come from the database.
type API struct {
	generator  *generator.Generator
	stories    *store.StoryStore
	events     *store.EventStore
	storyCache *cache.StoryCache
	statsCache *cache.StatsCache
}

// NewAPI creates the API handler group.
func NewAPI(gen *generator.Generator, stories *store.StoryStore, events *store.EventStore, storyCache *cache.StoryCache, statsCache *cache.StatsCache) *API {
	return &API{
		generator:  gen,
		stories:    stories,
		events:     events,
		storyCache: storyCache,
		statsCache: statsCache,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

type shareResponse struct {
	Views  int `json:"views"`
	Shares int `json:"shares"`
}

type eventRequest struct {
	Event      string         `json:"event"`
	Properties map[string]any `json:"properties"`
}

type okResponse struct {
	Success bool `json:"success"`
}

// Generate accepts a questionnaire and returns a finished story. The
// response carries the story even when persistence fails; a generated
// book must never be lost to a database hiccup.
func (a *API) Generate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON body."})
		return
	}

	normalizeGenerateRequest(&req)
	if msg := validateGenerateRequest(&req); msg != "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
		return
	}

	story := a.generator.Generate(r.Context(), &req)

	if err := a.stories.Create(story); err != nil {
		slog.Error("story persist failed", "story_id", story.ID, "error", err)
	} else {
		a.storyCache.Set(r.Context(), story)
		a.recordEvent("story_created", map[string]any{
			"story_id": story.ID.String(),
			"source":   string(story.Source),
			"setting":  story.Setting,
			"pages":    len(story.Pages),
		})
	}

	slog.Info("story generated",
		"story_id", story.ID,
		"source", story.Source,
		"pages", len(story.Pages))
	writeJSON(w, http.StatusOK, story)
}

// GetStory returns one story and counts the read. The view increment is
// the existence check: it hits the database even on cache hits, so the
// returned counters are always fresh.
func (a *API) GetStory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid story id."})
		return
	}

	views, shares, err := a.stories.IncrementViews(id)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Story not found."})
		return
	}
	if err != nil {
		slog.Error("view increment failed", "story_id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to load story."})
		return
	}

	story, ok := a.storyCache.Get(r.Context(), id)
	if !ok {
		story, err = a.stories.FindByID(id)
		if err != nil {
			slog.Error("story load failed", "story_id", id, "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to load story."})
			return
		}
		if story == nil {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "Story not found."})
			return
		}
		a.storyCache.Set(r.Context(), story)
	}

	story.Views = views
	story.Shares = shares
	writeJSON(w, http.StatusOK, story)
}

// ShareStory counts one share and returns the fresh counters.
func (a *API) ShareStory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid story id."})
		return
	}

	views, shares, err := a.stories.IncrementShares(id)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Story not found."})
		return
	}
	if err != nil {
		slog.Error("share increment failed", "story_id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to record share."})
		return
	}

	a.recordEvent("story_shared", map[string]any{"story_id": id.String()})
	writeJSON(w, http.StatusOK, shareResponse{Views: views, Shares: shares})
}

// Stats returns the aggregate feed, served from the short-TTL cache when
// possible.
func (a *API) Stats(w http.ResponseWriter, r *http.Request) {
	if stats, ok := a.statsCache.Get(r.Context()); ok {
		writeJSON(w, http.StatusOK, stats)
		return
	}

	stats, err := a.stories.Stats()
	if err != nil {
		slog.Error("stats query failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to load stats."})
		return
	}

	a.statsCache.Set(r.Context(), stats)
	writeJSON(w, http.StatusOK, stats)
}

// RecordEvent stores one client analytics event. Storage failures are
// logged but still acknowledged; analytics must never break a client.
func (a *API) RecordEvent(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON body."})
		return
	}

	req.Event = strings.TrimSpace(req.Event)
	if msg := validateEventName(req.Event); msg != "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
		return
	}

	a.recordEvent(req.Event, req.Properties)
	writeJSON(w, http.StatusOK, okResponse{Success: true})
}

// Health reports process liveness.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// recordEvent is the best-effort analytics write used by the request
// handlers.
func (a *API) recordEvent(event string, properties map[string]any) {
	if err := a.events.Record(event, properties); err != nil {
		slog.Warn("analytics event dropped", "event", event, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
