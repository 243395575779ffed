// internal/report/similarity.go
package report

import (
	"context"
	"fmt"
	"strings"
)

const maxSuggestions = 10

// SimilarArtists suggests catalog artists whose names contain a word from the
// failed search. Words shorter than 3 characters are too noisy to match on.
func (g *Generator) SimilarArtists(ctx context.Context, searchTerm string) string {
	allArtists, err := g.store.AllArtistNames(ctx)
	if err != nil {
		g.logger.WithError(err).Error("similar artist lookup failed", nil)
		return fmt.Sprintf("Sorry, I couldn't find an artist matching '%s'. Try another artist name or check the spelling.", searchTerm)
	}

	searchWords := strings.Fields(strings.ToLower(searchTerm))

	var similar []string
	for _, artist := range allArtists {
		lowered := strings.ToLower(artist)
		for _, word := range searchWords {
			if len(word) > 2 && strings.Contains(lowered, word) {
				similar = append(similar, artist)
				break
			}
		}
	}

	if len(similar) == 0 {
		return fmt.Sprintf("Sorry, I couldn't find an artist matching '%s'. Try another artist name or check the spelling.", searchTerm)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Sorry, I couldn't find an artist matching '%s'\n\n", searchTerm)
	b.WriteString("Did you mean one of these?\n")
	for i, artist := range similar {
		if i == maxSuggestions {
			break
		}
		fmt.Fprintf(&b, "• %s\n", artist)
	}
	return b.String()
}
