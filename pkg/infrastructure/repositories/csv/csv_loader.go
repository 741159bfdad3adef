// Package csv loads the batch input tables from delimiter-separated
// files. Column meaning is resolved later by the schema package; the
// loader only produces raw tables.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nordicwms/allokera/pkg/schema"
)

// Loader reads raw tables from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadTable loads one file into a raw table. The delimiter is sniffed
// from the header line (comma, semicolon or tab) and a UTF-8 BOM is
// stripped. Ragged rows are allowed; the schema layer treats missing
// cells as empty.
func (l *Loader) LoadTable(filename string) (schema.Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return schema.Table{}, fmt.Errorf("failed to open input file %s: %w", filename, err)
	}
	defer file.Close()
	return l.ReadTable(file, filename)
}

// ReadTable reads one table from a stream. name is used in error
// messages only.
func (l *Loader) ReadTable(r io.Reader, name string) (schema.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return schema.Table{}, fmt.Errorf("failed to read %s: %w", name, err)
	}
	text := strings.TrimPrefix(string(data), "\ufeff")
	if strings.TrimSpace(text) == "" {
		return schema.Table{}, fmt.Errorf("%s is empty", name)
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = sniffDelimiter(text)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return schema.Table{}, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if len(records) == 0 {
		return schema.Table{}, fmt.Errorf("%s has no rows", name)
	}
	return schema.Table{Header: records[0], Rows: records[1:]}, nil
}

// sniffDelimiter picks the separator that splits the header line into
// the most fields. Comma wins ties.
func sniffDelimiter(text string) rune {
	header := text
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		header = text[:i]
	}
	best, bestCount := ',', strings.Count(header, ",")
	for _, cand := range []rune{';', '\t'} {
		if n := strings.Count(header, string(cand)); n > bestCount {
			best, bestCount = cand, n
		}
	}
	return best
}
