package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/wayfarer-app/backend/internal/domain"
)

// Table is a flat-file table over records of type T. It owns one physical
// CSV file exclusively: a header line followed by one encoded record per
// line, every line newline-terminated.
//
// All operations serialize on a per-table RWMutex — reads share, mutations
// exclude — so a scan never observes a half-written file and two
// read-modify-rewrite cycles never silently drop each other's changes.
// Rewrites go through a temp file in the same directory followed by an
// atomic rename, so a crash mid-rewrite leaves the previous file intact
// rather than a truncated one.
type Table[T any] struct {
	path   string
	header []string
	encode func(T) []string
	decode func([]string) (T, error)
	mu     sync.RWMutex
}

// NewTable constructs a Table over the file at path. The encode and decode
// functions map between records and CSV field slices in header order;
// decode always receives exactly len(header) fields.
func NewTable[T any](path string, header []string, encode func(T) []string, decode func([]string) (T, error)) *Table[T] {
	return &Table[T]{path: path, header: header, encode: encode, decode: decode}
}

// Path returns the physical file this table owns.
func (t *Table[T]) Path() string { return t.path }

// Init creates the file with a header-only first line if it does not exist.
// Idempotent; call once at process start.
func (t *Table[T]) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := os.Stat(t.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("store.Table.Init: stat %s: %w", t.path, err)
	}
	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		return fmt.Errorf("store.Table.Init: %w", err)
	}
	if err := os.WriteFile(t.path, []byte(EncodeLine(t.header)+"\n"), 0o644); err != nil {
		return fmt.Errorf("store.Table.Init: %w", err)
	}
	return nil
}

// Append encodes rec and appends it as one line. Append never rewrites the
// file. The file invariant is maintained: every line ends in exactly one
// newline, so appends never produce a blank line or run two records
// together, even if an earlier writer left the file without a trailing
// newline.
func (t *Table[T]) Append(ctx context.Context, rec T) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("store.Table.Append: %w", err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.appendLocked(rec)
}

// Insert appends rec unless conflict matches an existing record, in which
// case it returns domain.ErrConflict. The scan and the append happen under
// one critical section, so uniqueness holds even under concurrent inserts.
func (t *Table[T]) Insert(ctx context.Context, rec T, conflict func(T) bool) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("store.Table.Insert: %w", err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	existing, err := t.readLocked()
	if err != nil {
		return fmt.Errorf("store.Table.Insert: %w", err)
	}
	for _, r := range existing {
		if conflict(r) {
			return fmt.Errorf("store.Table.Insert: %w", domain.ErrConflict)
		}
	}
	return t.appendLocked(rec)
}

// ReadAll decodes every record line after the header. A header-only file
// yields an empty, non-nil slice.
func (t *Table[T]) ReadAll(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("store.Table.ReadAll: %w", err)
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	recs, err := t.readLocked()
	if err != nil {
		return nil, fmt.Errorf("store.Table.ReadAll: %w", err)
	}
	return recs, nil
}

// UpdateWhere replaces every record matching match with apply(record) and
// rewrites the whole file. Returns the number of records changed, or
// domain.ErrNotFound if nothing matched (the file is left untouched).
func (t *Table[T]) UpdateWhere(ctx context.Context, match func(T) bool, apply func(T) T) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("store.Table.UpdateWhere: %w", err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	recs, err := t.readLocked()
	if err != nil {
		return 0, fmt.Errorf("store.Table.UpdateWhere: %w", err)
	}

	changed := 0
	for i, r := range recs {
		if match(r) {
			recs[i] = apply(r)
			changed++
		}
	}
	if changed == 0 {
		return 0, fmt.Errorf("store.Table.UpdateWhere: %w", domain.ErrNotFound)
	}
	if err := t.rewriteLocked(recs); err != nil {
		return 0, fmt.Errorf("store.Table.UpdateWhere: %w", err)
	}
	return changed, nil
}

// DeleteWhere removes every record matching match and rewrites the whole
// file. Returns the number removed, or domain.ErrNotFound if nothing
// matched (the file is left untouched).
func (t *Table[T]) DeleteWhere(ctx context.Context, match func(T) bool) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("store.Table.DeleteWhere: %w", err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	recs, err := t.readLocked()
	if err != nil {
		return 0, fmt.Errorf("store.Table.DeleteWhere: %w", err)
	}

	kept := recs[:0]
	removed := 0
	for _, r := range recs {
		if match(r) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	if removed == 0 {
		return 0, fmt.Errorf("store.Table.DeleteWhere: %w", domain.ErrNotFound)
	}
	if err := t.rewriteLocked(kept); err != nil {
		return 0, fmt.Errorf("store.Table.DeleteWhere: %w", err)
	}
	return removed, nil
}

// ---- unexported: callers must hold the appropriate lock --------------------

func (t *Table[T]) readLocked() ([]T, error) {
	data, err := os.ReadFile(t.path)
	if err != nil {
		return nil, err
	}

	rows, ok := readCSV(string(data))
	if !ok {
		// Legacy file that defeats even a lazy CSV parse: fall back to
		// line-at-a-time decoding with the naive-split codec.
		rows = nil
		for _, line := range strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			rows = append(rows, DecodeLine(line, len(t.header)))
		}
	}

	recs := []T{}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		for len(row) < len(t.header) {
			row = append(row, "")
		}
		rec, err := t.decode(row[:len(t.header)])
		if err != nil {
			return nil, fmt.Errorf("decode record %d: %w", i, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// readCSV parses the whole file quote-aware, so records whose fields carry
// quoted newlines stay intact. Returns ok=false when the content cannot be
// parsed as CSV at all.
func readCSV(data string) ([][]string, bool) {
	r := csv.NewReader(strings.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, false
	}
	return rows, true
}

func (t *Table[T]) appendLocked(rec T) error {
	f, err := os.OpenFile(t.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("store.Table.Append: %w", err)
	}
	defer f.Close()

	line := EncodeLine(t.encode(rec)) + "\n"
	if missing, err := missingTrailingNewline(t.path); err != nil {
		return fmt.Errorf("store.Table.Append: %w", err)
	} else if missing {
		line = "\n" + line
	}

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("store.Table.Append: %w", err)
	}
	return nil
}

// rewriteLocked writes header plus recs to a temp file in the same
// directory, fsyncs it, and renames it over the live file. Readers either
// see the old complete file or the new complete file, never a mix.
func (t *Table[T]) rewriteLocked(recs []T) error {
	var b strings.Builder
	b.WriteString(EncodeLine(t.header) + "\n")
	for _, r := range recs {
		b.WriteString(EncodeLine(t.encode(r)) + "\n")
	}

	dir := filepath.Dir(t.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(t.path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.WriteString(b.String()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), t.path)
}

// missingTrailingNewline reports whether the file is non-empty and its last
// byte is not '\n'. Only legacy files written by other tooling hit the true
// branch; files this package writes always end in a newline.
func missingTrailingNewline(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() == 0 {
		return false, nil
	}
	buf := make([]byte, 1)
	if _, err := f.ReadAt(buf, info.Size()-1); err != nil {
		return false, err
	}
	return buf[0] != '\n', nil
}
