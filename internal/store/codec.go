// Package store implements the flat-file table engine behind every entity
// in the Wayfarer backend. Each table is one CSV file: a fixed header line
// followed by one record per line. Structured sub-documents (friend lists,
// sharing lists, tag lists) are JSON text inside a single cell, itself
// subject to the outer CSV quoting rules.
package store

import (
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"strings"
)

// EncodeLine renders one record as a single CSV line, without a trailing
// newline. Fields containing the delimiter, a quote, or a newline are
// quoted with internal quotes doubled (standard CSV quoting).
func EncodeLine(fields []string) string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	w.Write(fields) //nolint:errcheck — writes to strings.Builder never fail
	w.Flush()
	return strings.TrimRight(b.String(), "\r\n")
}

// DecodeLine is the inverse of EncodeLine. It parses quote-aware first and
// falls back to a naive comma split for legacy rows that were written
// without escaping and do not survive a strict CSV parse. The result is
// padded with empty strings (or truncated) to exactly n fields, so callers
// can index columns without bounds checks even on short legacy rows.
func DecodeLine(line string, n int) []string {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	fields, err := r.Read()
	if err != nil {
		fields = strings.Split(line, ",")
	}
	for len(fields) < n {
		fields = append(fields, "")
	}
	return fields[:n]
}

// DecodeJSONCell parses a cell holding an embedded JSON array. A blank cell
// or malformed JSON yields an empty slice, never an error: embedded
// sub-document corruption must degrade gracefully, not abort the read of
// the surrounding record. Malformed cells are logged so corruption is
// visible without being fatal.
func DecodeJSONCell[T any](table, column, cell string) []T {
	if strings.TrimSpace(cell) == "" {
		return []T{}
	}
	var out []T
	if err := json.Unmarshal([]byte(cell), &out); err != nil {
		slog.Warn("malformed embedded JSON cell, treating as empty",
			"table", table, "column", column, "error", err)
		return []T{}
	}
	if out == nil {
		return []T{}
	}
	return out
}

// EncodeJSONCell renders a slice as the JSON text stored in a single cell.
// Empty and nil slices both encode as "[]" so a blank-looking column still
// round-trips to an empty list.
func EncodeJSONCell[T any](v []T) string {
	if len(v) == 0 {
		return "[]"
	}
	b, err := json.Marshal(v)
	if err != nil {
		// Only unmarshalable types (channels, funcs) reach this branch,
		// and no table stores those.
		return "[]"
	}
	return string(b)
}
