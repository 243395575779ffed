// internal/intent/analyzer.go
package intent

import (
	"context"
	"encoding/json"

	commonerrors "chinook-assistant/internal/common/errors"
	"chinook-assistant/internal/common/logger"
	"chinook-assistant/internal/llm"
)

const analyzeQueryPrompt = `You are a music database assistant. Analyze the user's query and determine what type of information they're asking for.

Important rules:
1. "Who is X" queries are almost always asking about an artist, not a song.
2. Only classify as song_info if they're clearly asking about a specific song.
3. If there's ambiguity, prefer artist_info over song_info.

Return a JSON object with the following structure:
{
    "query_type": "song_info" | "artist_info" | "album_tracks" | "top_artists" | "top_genres" | "unknown",
    "song_name": "name of song if applicable",
    "artist_name": "name of artist if applicable",
    "album_name": "name of album if applicable",
    "limit": number of results to return (default: 5)
}`

// Completer is the slice of the language-model client the analyzer needs.
type Completer interface {
	Complete(ctx context.Context, system, user string, temperature float64) (string, error)
	Available() bool
}

// Analyzer asks the language model to read a question. Every failure mode
// collapses to "unknown" so the caller can fall through to the next stage.
type Analyzer struct {
	completer Completer
	logger    logger.Logger
}

func NewAnalyzer(completer Completer, log logger.Logger) *Analyzer {
	return &Analyzer{
		completer: completer,
		logger: log.With(map[string]interface{}{
			"component": "intent-analyzer",
		}),
	}
}

func (a *Analyzer) Available() bool {
	return a.completer.Available()
}

// AnalyzeQuery classifies a question into one of the query types. Timeouts,
// transport errors, and unparseable completions all come back as QueryUnknown.
func (a *Analyzer) AnalyzeQuery(ctx context.Context, message string) QueryAnalysis {
	unknown := QueryAnalysis{QueryType: QueryUnknown}

	result, err := a.completer.Complete(ctx, analyzeQueryPrompt, message, 0.1)
	if err != nil {
		a.logger.WithError(commonerrors.NewClassificationFailedError(err)).Warn("query analysis call failed", nil)
		return unknown
	}

	raw, ok := llm.ExtractJSON(result)
	if !ok {
		a.logger.Warn("no JSON in query analysis response", nil)
		return unknown
	}

	var analysis QueryAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		a.logger.WithError(commonerrors.NewClassificationFailedError(err)).Warn("failed to parse query analysis", nil)
		return unknown
	}
	if analysis.QueryType == "" {
		analysis.QueryType = QueryUnknown
	}

	a.logger.Debug("query analyzed", map[string]interface{}{
		"queryType": analysis.QueryType,
	})

	return analysis
}
