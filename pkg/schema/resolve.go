package schema

import (
	"fmt"
	"strings"
)

// MissingColumnError reports a required logical field that could not be
// resolved against the input header.
type MissingColumnError struct {
	Field      string
	Candidates []string
	Columns    []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("no column for %s: tried %v against %v", e.Field, e.Candidates, e.Columns)
}

// FindColumn resolves f against the header. Exact case-insensitive
// matches win over substring matches; within each pass candidates are
// tried in rank order.
func FindColumn(header []string, f Field) (int, bool) {
	lowered := make([]string, len(header))
	for i, c := range header {
		lowered[i] = strings.ToLower(strings.TrimSpace(c))
	}
	for _, cand := range f.Candidates {
		want := strings.ToLower(cand)
		for i, col := range lowered {
			if col == want {
				return i, true
			}
		}
	}
	for _, cand := range f.Candidates {
		want := strings.ToLower(cand)
		for i, col := range lowered {
			if strings.Contains(col, want) {
				return i, true
			}
		}
	}
	return -1, false
}

// RequireColumn resolves f or fails with a MissingColumnError naming the
// field and the candidates tried.
func RequireColumn(header []string, f Field) (int, error) {
	if i, ok := FindColumn(header, f); ok {
		return i, nil
	}
	return -1, &MissingColumnError{Field: f.Name, Candidates: f.Candidates, Columns: header}
}
