// Package history keeps a capped, append-only record of command
// executions. History is advisory: a corrupted history file degrades
// to an empty log instead of failing, unlike the registry.
package history

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/regent-cli/regent/internal/config"
	"github.com/regent-cli/regent/internal/models"
)

type historyFile struct {
	Entries []models.HistoryEntry `json:"entries"`
}

// Log is a history file with a retention cap.
type Log struct {
	path       string
	maxEntries int
}

// New creates a log over the history file at path, retaining at most
// maxEntries entries (oldest evicted first).
func New(path string, maxEntries int) *Log {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &Log{path: path, maxEntries: maxEntries}
}

// DefaultPath returns the standard history file location.
func DefaultPath() string {
	return filepath.Join(config.DataDir(), "history.json")
}

// Load returns history entries ordered newest first. limit <= 0 means
// all entries.
func (l *Log) Load(limit int) ([]models.HistoryEntry, error) {
	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	var doc historyFile
	if err := json.Unmarshal(data, &doc); err != nil {
		slog.Debug("history file unreadable, treating as empty", "path", l.path, "error", err)
		return nil, nil
	}

	entries := doc.Entries
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ExecutedAt.After(entries[j].ExecutedAt)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// ForCommand returns entries for one command, newest first.
func (l *Log) ForCommand(name string, limit int) ([]models.HistoryEntry, error) {
	all, err := l.Load(0)
	if err != nil {
		return nil, err
	}
	var out []models.HistoryEntry
	for _, e := range all {
		if e.CommandName == name {
			out = append(out, e)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// Append records an execution, evicting the oldest entries past the
// retention cap, and persists the log atomically.
func (l *Log) Append(entry models.HistoryEntry) error {
	entries, err := l.Load(0)
	if err != nil {
		return err
	}

	entries = append([]models.HistoryEntry{entry}, entries...)
	if len(entries) > l.maxEntries {
		entries = entries[:l.maxEntries]
	}

	return l.save(entries)
}

// Clear removes the history file entirely.
func (l *Log) Clear() error {
	err := os.Remove(l.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (l *Log) save(entries []models.HistoryEntry) error {
	data, err := json.MarshalIndent(historyFile{Entries: entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	if err := os.Rename(tmp, l.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing history: %w", err)
	}
	return nil
}
