package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SnapshotWriter serializes a pipeline run to the snapshot artifact.
type SnapshotWriter struct {
	path string
}

// NewSnapshotWriter creates a writer targeting path.
func NewSnapshotWriter(path string) *SnapshotWriter {
	return &SnapshotWriter{path: path}
}

// Path returns the snapshot location.
func (w *SnapshotWriter) Path() string { return w.path }

// Write replaces the snapshot with the given items and a fresh UTC
// timestamp. The file is written to a temp name and renamed into place
// so a failed run never leaves a truncated artifact behind.
func (w *SnapshotWriter) Write(items []AggregatedItem) error {
	if items == nil {
		items = []AggregatedItem{}
	}
	snapshot := Snapshot{
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
		Items:       items,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	tmp := w.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmp, w.path); err != nil {
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}
