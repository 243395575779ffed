// internal/resolver/resolver.go

// Package resolver orchestrates question resolution: a fixed cascade of
// classifiers and heuristics in which every stage may fail soft and every
// request ends in a text answer.
package resolver

import (
	"context"
	"regexp"
	"strings"
	"time"

	"chinook-assistant/internal/common/logger"
	"chinook-assistant/internal/common/metrics"
	"chinook-assistant/internal/intent"
)

const greetingResponse = "I'm here to help! You can ask for reports like 'Show me top 10 artists', 'Report on albums by Queen', or 'Which genres have the most tracks?'"

var (
	trackArtistPattern = regexp.MustCompile(`(?:more|about|info|tell|song)\s+(?:about|on|me|for)?\s+([a-z0-9 &']+)\s+by\s+([a-z0-9 &']+)`)
	whoIsPattern       = regexp.MustCompile(`^\s*who\s+is\s+([a-z0-9 &']+)\s*$`)
)

// Reporter renders deterministic answers from the reference store.
type Reporter interface {
	Generate(ctx context.Context, entities intent.Entities) string
	ArtistTracks(ctx context.Context, limit int) string
	Genres(ctx context.Context, limit int) string
	SongInfo(ctx context.Context, songName string) string
	AlbumTracks(ctx context.Context, albumName string) string
	TrackByArtist(ctx context.Context, trackName, artistName string) string
}

// Enricher starts an asynchronous artist lookup and returns the
// acknowledgement text.
type Enricher interface {
	Trigger(ctx context.Context, artistName string) string
}

// Analyzer is the model-backed query classifier.
type Analyzer interface {
	Available() bool
	AnalyzeQuery(ctx context.Context, message string) intent.QueryAnalysis
}

// Synthesizer attempts a dynamic query; the bool reports whether it produced
// a real answer.
type Synthesizer interface {
	Execute(ctx context.Context, userQuery string) (string, bool)
}

type Resolver struct {
	reports     Reporter
	enricher    Enricher
	analyzer    Analyzer
	synthesizer Synthesizer
	logger      logger.Logger
}

func New(reports Reporter, enricher Enricher, analyzer Analyzer, synthesizer Synthesizer, log logger.Logger) *Resolver {
	return &Resolver{
		reports:     reports,
		enricher:    enricher,
		analyzer:    analyzer,
		synthesizer: synthesizer,
		logger: log.With(map[string]interface{}{
			"component": "resolver",
		}),
	}
}

// Resolve turns a user message into a text answer. It never returns an empty
// string and never fails: every stage of the cascade degrades to the next.
func (r *Resolver) Resolve(ctx context.Context, message string) string {
	start := time.Now()
	path, text := r.resolve(ctx, message)

	metrics.ResolutionsTotal.WithLabelValues(path).Inc()
	metrics.ResolutionDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())

	r.logger.Info("question resolved", map[string]interface{}{
		"path":       path,
		"durationMs": time.Since(start).Milliseconds(),
	})
	return text
}

func (r *Resolver) resolve(ctx context.Context, message string) (string, string) {
	lowered := strings.ToLower(message)

	switch strings.TrimSpace(lowered) {
	case "hi", "hello", "hey":
		return "greeting", greetingResponse
	}

	// Literal track+artist phrasing bypasses classification entirely.
	if m := trackArtistPattern.FindStringSubmatch(lowered); m != nil {
		return "track_by_artist", r.reports.TrackByArtist(ctx, strings.TrimSpace(m[1]), strings.TrimSpace(m[2]))
	}

	// A bare "who is X" is an artist question, answered asynchronously.
	if m := whoIsPattern.FindStringSubmatch(lowered); m != nil {
		return "enrichment_trigger", r.enricher.Trigger(ctx, strings.TrimSpace(m[1]))
	}

	ruleIntent, entities := intent.Classify(message)
	if limit, ok := intent.ExtractLimit(message); ok {
		entities.Limit = limit
	}

	if r.analyzer.Available() {
		analysis := r.analyzer.AnalyzeQuery(ctx, message)
		if path, text, ok := r.routeAnalysis(ctx, analysis); ok {
			return path, text
		}
	}

	for _, m := range heuristicMatchers {
		hit := m.attempt(lowered, ruleIntent, entities)
		if hit == nil {
			continue
		}
		r.logger.Debug("heuristic matched", map[string]interface{}{
			"matcher": m.name,
		})
		switch hit.route {
		case routeSongInfo:
			return "heuristic_song_info", r.reports.SongInfo(ctx, hit.value)
		case routeEnrichment:
			return "enrichment_trigger", r.enricher.Trigger(ctx, hit.value)
		case routeAlbumTracks:
			return "heuristic_album_tracks", r.reports.AlbumTracks(ctx, hit.value)
		}
	}

	if r.analyzer.Available() {
		if text, answered := r.synthesizer.Execute(ctx, message); answered {
			return "synthesized", text
		}
	}

	return "rule_report", r.reports.Generate(ctx, entities)
}

func (r *Resolver) routeAnalysis(ctx context.Context, analysis intent.QueryAnalysis) (string, string, bool) {
	limit := analysis.Limit
	if limit <= 0 {
		limit = intent.DefaultLimit
	}

	switch analysis.QueryType {
	case intent.QuerySongInfo:
		if analysis.SongName != "" {
			return "song_info", r.reports.SongInfo(ctx, analysis.SongName), true
		}
	case intent.QueryArtistInfo:
		if analysis.ArtistName != "" {
			return "enrichment_trigger", r.enricher.Trigger(ctx, analysis.ArtistName), true
		}
	case intent.QueryAlbumTracks:
		if analysis.AlbumName != "" {
			return "album_tracks", r.reports.AlbumTracks(ctx, analysis.AlbumName), true
		}
	case intent.QueryTopArtists:
		return "top_artists", r.reports.ArtistTracks(ctx, limit), true
	case intent.QueryTopGenres:
		return "top_genres", r.reports.Genres(ctx, limit), true
	}
	return "", "", false
}
