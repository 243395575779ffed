// internal/sqlgen/guard.go
package sqlgen

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrQueryRejected = errors.New("QUERY_REJECTED")

// Statements may only read. Matched on word boundaries so column or table
// names containing these words don't trip the guard.
var forbiddenKeywords = []string{
	"INSERT", "UPDATE", "DELETE", "DROP", "ALTER", "CREATE", "TRUNCATE", "GRANT",
}

var forbiddenPattern = regexp.MustCompile(`(?i)\b(` + strings.Join(forbiddenKeywords, "|") + `)\b`)

// ValidateReadOnly rejects anything that is not a single SELECT (or WITH)
// statement. Every synthesized query passes through here before execution,
// whether the model produced it or a fallback template did.
func ValidateReadOnly(query string) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return fmt.Errorf("%w: empty statement", ErrQueryRejected)
	}

	// A trailing semicolon is fine; an embedded one means multiple statements.
	trimmed = strings.TrimSuffix(trimmed, ";")
	if strings.Contains(trimmed, ";") {
		return fmt.Errorf("%w: multiple statements", ErrQueryRejected)
	}

	upper := strings.ToUpper(trimmed)
	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "WITH") {
		return fmt.Errorf("%w: only SELECT statements are allowed", ErrQueryRejected)
	}

	if match := forbiddenPattern.FindString(trimmed); match != "" {
		return fmt.Errorf("%w: forbidden keyword %s", ErrQueryRejected, strings.ToUpper(match))
	}

	return nil
}
