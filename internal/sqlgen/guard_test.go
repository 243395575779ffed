// internal/sqlgen/guard_test.go
package sqlgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateReadOnly(t *testing.T) {
	tests := []struct {
		name  string
		query string
		valid bool
	}{
		{"plain select", "SELECT name FROM artists LIMIT 5", true},
		{"lowercase select", "select name from artists", true},
		{"cte", "WITH top AS (SELECT artist_id FROM albums) SELECT * FROM top", true},
		{"trailing semicolon", "SELECT name FROM artists;", true},
		{"leading whitespace", "  \n SELECT 1", true},
		{"empty", "   ", false},
		{"multiple statements", "SELECT 1; DROP TABLE artists", false},
		{"insert", "INSERT INTO artists (name) VALUES ('x')", false},
		{"delete", "DELETE FROM tracks", false},
		{"update disguised as lowercase", "update tracks set name = 'x'", false},
		{"drop inside select", "SELECT 1; DROP TABLE tracks;", false},
		{"embedded forbidden word", "SELECT * FROM tracks WHERE name = 'a' UNION SELECT 1 FROM pg_tables; TRUNCATE artists", false},
		{"non-select verb", "EXPLAIN SELECT 1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReadOnly(tt.query)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrQueryRejected)
			}
		})
	}
}

func TestValidateReadOnly_KeywordsInIdentifiersAllowed(t *testing.T) {
	// "created_at" contains "create" but is not the keyword itself.
	assert.NoError(t, ValidateReadOnly("SELECT created_at FROM playlists"))
	assert.NoError(t, ValidateReadOnly("SELECT name FROM tracks WHERE name LIKE '%updated%'"))
}

func TestValidateReadOnly_StandaloneForbiddenKeyword(t *testing.T) {
	assert.ErrorIs(t, ValidateReadOnly("SELECT * FROM tracks WHERE 1=1 OR delete FROM x"), ErrQueryRejected)
}
