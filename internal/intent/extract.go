// internal/intent/extract.go
package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// Ordered: first pattern that matches wins.
var limitPatterns = []*regexp.Regexp{
	regexp.MustCompile(`top\s+(\d+)`),             // "top 10"
	regexp.MustCompile(`(\d+)\s+most`),            // "10 most"
	regexp.MustCompile(`(\d+)\s+top`),             // "10 top"
	regexp.MustCompile(`show\s+me\s+(\d+)`),       // "show me 10"
	regexp.MustCompile(`limit\s+(?:to\s+)?(\d+)`), // "limit to 10" or "limit 10"
	regexp.MustCompile(`^(\d+)\s+`),               // "5 artists"
}

// ExtractLimit pulls a result count out of the message. The second return is
// false when the message names no count, which is distinct from asking for 0.
func ExtractLimit(message string) (int, bool) {
	lowered := strings.ToLower(message)
	for _, pattern := range limitPatterns {
		if match := pattern.FindStringSubmatch(lowered); match != nil {
			if n, err := strconv.Atoi(match[1]); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

var (
	artistByPattern   = regexp.MustCompile(`by\s+([a-z0-9 &']+)`)
	artistFromPattern = regexp.MustCompile(`albums?\s+(?:from|of)\s+([a-z0-9 &']+)`)
)

// ExtractArtist pulls an artist name out of the message, trying "by X" first
// and "albums from/of X" second. Returns "" when neither form appears.
func ExtractArtist(message string) string {
	lowered := strings.ToLower(message)
	match := artistByPattern.FindStringSubmatch(lowered)
	if match == nil {
		match = artistFromPattern.FindStringSubmatch(lowered)
	}
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}
