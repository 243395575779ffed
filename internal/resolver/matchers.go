// internal/resolver/matchers.go
package resolver

import (
	"regexp"
	"strings"

	"chinook-assistant/internal/intent"
)

// Routes a heuristic can take.
const (
	routeSongInfo    = "song_info"
	routeEnrichment  = "enrichment"
	routeAlbumTracks = "album_tracks"
)

type match struct {
	route string
	value string
}

// matcher is one step of the heuristic battery. Matchers run in slice order
// and the first hit wins; reordering them changes user-visible behavior.
type matcher struct {
	name    string
	attempt func(lowered, ruleIntent string, entities intent.Entities) *match
}

var (
	songArtistHintPattern = regexp.MustCompile(`(?:artist|who).+(?:for|of|sang|sings|performs|by)\s+([a-z0-9 &']+)`)
	whoMadePattern        = regexp.MustCompile(`who\s+(?:is|made|sang|performs|created|wrote)\s+(?:the\s+)?(?:song|track)?\s*([a-z0-9 &']+)`)
	whoIsArtistForPattern = regexp.MustCompile(`who\s+is\s+(?:the\s+)?artist\s+(?:for|of)\s+([a-z0-9 &']+)`)
	aboutArtistPattern    = regexp.MustCompile(`about\s+([a-z0-9 &']+)`)
	albumListingPattern   = regexp.MustCompile(`(?:tell|show|what|list)\s+(?:me\s+)?(?:the\s+)?(?:songs|tracks)\s+(?:in|on|from)\s+(?:the\s+)?(?:album\s+)?([a-z0-9 &']+)`)
)

var heuristicMatchers = []matcher{
	{
		name: "song-by-artist-phrase",
		attempt: func(lowered, _ string, _ intent.Entities) *match {
			if !strings.Contains(lowered, "artist") {
				return nil
			}
			if m := songArtistHintPattern.FindStringSubmatch(lowered); m != nil {
				return &match{route: routeSongInfo, value: strings.TrimSpace(m[1])}
			}
			return nil
		},
	},
	{
		name: "who-made-phrase",
		attempt: func(lowered, _ string, _ intent.Entities) *match {
			if m := whoMadePattern.FindStringSubmatch(lowered); m != nil {
				return &match{route: routeSongInfo, value: strings.TrimSpace(m[1])}
			}
			return nil
		},
	},
	{
		name: "who-is-artist-for-phrase",
		attempt: func(lowered, _ string, _ intent.Entities) *match {
			if m := whoIsArtistForPattern.FindStringSubmatch(lowered); m != nil {
				return &match{route: routeSongInfo, value: strings.TrimSpace(m[1])}
			}
			return nil
		},
	},
	{
		name: "extracted-artist-entity",
		attempt: func(_, _ string, entities intent.Entities) *match {
			if entities.ArtistName != "" {
				return &match{route: routeEnrichment, value: entities.ArtistName}
			}
			return nil
		},
	},
	{
		name: "about-artist-phrase",
		attempt: func(lowered, ruleIntent string, entities intent.Entities) *match {
			if ruleIntent != intent.IntentReport {
				return nil
			}
			switch entities.ReportType {
			case intent.ReportArtistSpecific, intent.ReportArtistTracks, intent.ReportArtistAlbums:
			default:
				return nil
			}
			if m := aboutArtistPattern.FindStringSubmatch(lowered); m != nil {
				name := strings.TrimSpace(m[1])
				// Very short captures are usually noise, not names.
				if len(name) > 2 {
					return &match{route: routeEnrichment, value: name}
				}
			}
			return nil
		},
	},
	{
		name: "album-listing-phrase",
		attempt: func(lowered, _ string, _ intent.Entities) *match {
			if m := albumListingPattern.FindStringSubmatch(lowered); m != nil {
				return &match{route: routeAlbumTracks, value: strings.TrimSpace(m[1])}
			}
			return nil
		},
	},
}
