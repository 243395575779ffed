// internal/intent/analyzer_test.go
package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"chinook-assistant/internal/common/logger"
)

type fakeCompleter struct {
	response string
	err      error
}

func (f *fakeCompleter) Complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	return f.response, f.err
}

func (f *fakeCompleter) Available() bool { return true }

func TestAnalyzer_AnalyzeQuery_ParsesWrappedJSON(t *testing.T) {
	analyzer := NewAnalyzer(&fakeCompleter{
		response: "Here you go: {\"query_type\": \"song_info\", \"song_name\": \"Mofo\", \"limit\": 5}",
	}, logger.NewNoOpLogger())

	analysis := analyzer.AnalyzeQuery(context.Background(), "tell me about mofo")

	assert.Equal(t, QuerySongInfo, analysis.QueryType)
	assert.Equal(t, "Mofo", analysis.SongName)
	assert.Equal(t, 5, analysis.Limit)
}

func TestAnalyzer_AnalyzeQuery_UnknownOnCallFailure(t *testing.T) {
	analyzer := NewAnalyzer(&fakeCompleter{err: errors.New("connection refused")}, logger.NewNoOpLogger())

	analysis := analyzer.AnalyzeQuery(context.Background(), "tell me about mofo")

	assert.Equal(t, QueryUnknown, analysis.QueryType)
}

func TestAnalyzer_AnalyzeQuery_UnknownOnMissingJSON(t *testing.T) {
	analyzer := NewAnalyzer(&fakeCompleter{response: "I am not sure what you mean."}, logger.NewNoOpLogger())

	analysis := analyzer.AnalyzeQuery(context.Background(), "tell me about mofo")

	assert.Equal(t, QueryUnknown, analysis.QueryType)
}
