// internal/intent/rules.go
package intent

import (
	"regexp"
	"strconv"
	"strings"
)

var topNPattern = regexp.MustCompile(`top (\d+)`)

var singularPhrases = []string{"only one", "just one", "single", "top 1"}

var genreWords = []string{"genre", "genres", "category", "categories", "type", "types"}
var albumWords = []string{"album", "albums", "record", "records"}
var artistWords = []string{"artist", "artists", "band", "bands", "musician", "musicians"}
var trackWords = []string{"track", "tracks", "song", "songs"}

// Loose on purpose: users misspell "report" and phrase requests many ways.
var reportKeywords = []string{"report", "repport", "show", "tell", "which", "what", "list", "give", "most", "top"}

func containsAny(message string, words []string) bool {
	for _, w := range words {
		if strings.Contains(message, w) {
			return true
		}
	}
	return false
}

// Classify is the deterministic fallback classifier. It never fails and never
// touches the network, so it is the floor the resolution pipeline degrades to.
func Classify(message string) (string, Entities) {
	entities := Entities{
		ReportType: ReportArtistTracks,
		Limit:      DefaultLimit,
	}

	message = strings.ToLower(message)

	if containsAny(message, singularPhrases) {
		entities.Limit = 1
	} else if match := topNPattern.FindStringSubmatch(message); match != nil {
		if n, err := strconv.Atoi(match[1]); err == nil {
			entities.Limit = n
		}
	}

	entities.ArtistName = ExtractArtist(message)

	switch {
	case strings.Contains(message, "all artists") ||
		strings.Contains(message, "list artists") ||
		strings.Contains(message, "all the artists"):
		entities.ReportType = ReportArtistList
		entities.Limit = ArtistListLimit
	case entities.ArtistName != "":
		entities.ReportType = ReportArtistSpecific
	case containsAny(message, genreWords):
		entities.ReportType = ReportGenre
	case containsAny(message, albumWords):
		entities.ReportType = ReportAlbum
	case containsAny(message, artistWords):
		if strings.Contains(message, "album") {
			entities.ReportType = ReportArtistAlbums
		} else {
			entities.ReportType = ReportArtistTracks
		}
	case containsAny(message, trackWords):
		entities.ReportType = ReportArtistTracks
	}

	var primary string
	switch {
	case strings.Contains(message, "hi") ||
		strings.Contains(message, "hello") ||
		strings.Contains(message, "hey"):
		primary = IntentGreeting
	case strings.Contains(message, "help"):
		primary = IntentHelp
	case containsAny(message, reportKeywords):
		primary = IntentReport
	default:
		primary = IntentUnknown
	}

	return primary, entities
}
