// internal/sqlgen/synthesizer.go

// Package sqlgen turns free-form questions into guarded SQL and renders the
// results. It is the stage the resolution pipeline reaches when no regex
// heuristic and no query classification produced an answer.
package sqlgen

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	commonerrors "chinook-assistant/internal/common/errors"
	"chinook-assistant/internal/common/logger"
)

const schemaPrompt = `You are a helpful SQL assistant. Generate a SQL query for a PostgreSQL Chinook database.

The Chinook database has these tables:
- albums (album_id, title, artist_id)
- artists (artist_id, name)
- customers (customer_id, first_name, last_name, company, address, city, state, country, postal_code, phone, fax, email, support_rep_id)
- employees (employee_id, last_name, first_name, title, reports_to, birth_date, hire_date, address, city, state, country, postal_code, phone, fax, email)
- genres (genre_id, name)
- invoices (invoice_id, customer_id, invoice_date, billing_address, billing_city, billing_state, billing_country, billing_postal_code, total)
- invoice_lines (invoice_line_id, invoice_id, track_id, unit_price, quantity)
- media_types (media_type_id, name)
- playlists (playlist_id, name)
- playlist_tracks (playlist_id, track_id)
- tracks (track_id, name, album_id, media_type_id, genre_id, composer, milliseconds, bytes, unit_price)

Return ONLY the SQL query without any explanation or markdown formatting.
Make sure the query is valid PostgreSQL syntax.
Limit results to 20 rows unless specified otherwise.`

var codeFencePattern = regexp.MustCompile("```sql\\s*|\\s*```")

// Completer is the slice of the language-model client the synthesizer needs.
type Completer interface {
	Complete(ctx context.Context, system, user string, temperature float64) (string, error)
	Available() bool
}

// Executor runs a read statement and returns column names plus stringified
// rows. The catalog store satisfies this.
type Executor interface {
	RawQuery(ctx context.Context, query string) ([]string, [][]string, error)
}

type Synthesizer struct {
	completer Completer
	executor  Executor
	logger    logger.Logger
}

func NewSynthesizer(completer Completer, executor Executor, log logger.Logger) *Synthesizer {
	return &Synthesizer{
		completer: completer,
		executor:  executor,
		logger: log.With(map[string]interface{}{
			"component": "sql-synthesizer",
		}),
	}
}

// GenerateSQL asks the model for a query, falling back to keyword templates
// when the model is unreachable. Returns "" when neither produces anything.
func (s *Synthesizer) GenerateSQL(ctx context.Context, userPrompt string) string {
	sqlQuery, err := s.completer.Complete(ctx, schemaPrompt, userPrompt, 0.1)
	if err == nil {
		return strings.TrimSpace(codeFencePattern.ReplaceAllString(sqlQuery, ""))
	}

	s.logger.WithError(commonerrors.NewSynthesisFailedError(err)).Warn("SQL generation failed, falling back to templates", nil)
	return fallbackQuery(userPrompt)
}

func fallbackQuery(userPrompt string) string {
	lowered := strings.ToLower(userPrompt)

	switch {
	case strings.Contains(lowered, "artist") &&
		(strings.Contains(lowered, "popular") || strings.Contains(lowered, "top") || strings.Contains(lowered, "most")):
		return `
			SELECT ar.name, COUNT(t.track_id) AS track_count
			FROM artists ar
			JOIN albums al ON ar.artist_id = al.artist_id
			JOIN tracks t ON al.album_id = t.album_id
			GROUP BY ar.name
			ORDER BY track_count DESC
			LIMIT 10`
	case strings.Contains(lowered, "genre"):
		return `
			SELECT g.name, COUNT(t.track_id) AS track_count
			FROM genres g
			JOIN tracks t ON g.genre_id = t.genre_id
			GROUP BY g.name
			ORDER BY track_count DESC
			LIMIT 10`
	case strings.Contains(lowered, "album"):
		return `
			SELECT al.title, ar.name, COUNT(t.track_id) AS track_count
			FROM albums al
			JOIN artists ar ON al.artist_id = ar.artist_id
			JOIN tracks t ON al.album_id = t.album_id
			GROUP BY al.title, ar.name
			ORDER BY track_count DESC
			LIMIT 10`
	default:
		return ""
	}
}

// Execute synthesizes, guards, runs, and renders a dynamic query. The return
// is always user-facing text; the second value reports whether a real answer
// was produced, so the caller knows whether to fall through.
func (s *Synthesizer) Execute(ctx context.Context, userQuery string) (string, bool) {
	sqlQuery := s.GenerateSQL(ctx, userQuery)
	if sqlQuery == "" {
		return "I had trouble generating a SQL query for that request.", false
	}

	if err := ValidateReadOnly(sqlQuery); err != nil {
		s.logger.WithError(commonerrors.NewQueryRejectedError(err.Error())).Warn("synthesized query rejected", map[string]interface{}{
			"query": sqlQuery,
		})
		return "I had trouble generating a SQL query for that request.", false
	}

	s.logger.Debug("executing synthesized query", map[string]interface{}{
		"query": sqlQuery,
	})

	columns, rows, err := s.executor.RawQuery(ctx, sqlQuery)
	if err != nil {
		s.logger.WithError(err).Error("dynamic query failed", nil)
		return fmt.Sprintf("I encountered an error: %v", err), false
	}

	if len(rows) == 0 {
		return "No data found for that query.", true
	}

	var b strings.Builder
	if len(columns) == 1 {
		for _, row := range rows {
			fmt.Fprintf(&b, "• %s\n", row[0])
		}
	} else {
		for _, row := range rows {
			parts := make([]string, len(row))
			for i, value := range row {
				parts[i] = fmt.Sprintf("%s: %s", columns[i], value)
			}
			fmt.Fprintf(&b, "• %s\n", strings.Join(parts, ", "))
		}
	}
	return b.String(), true
}
