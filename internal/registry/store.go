// Package registry persists command records as layered JSON stores: a
// global per-user file optionally shadowed by a project-local file.
// Every mutation is a full load-modify-atomic-save cycle, so the file
// on disk is always either the pre-call or the post-call state.
package registry

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/regent-cli/regent/internal/models"
)

// SchemaVersion is the one registry file schema this build supports.
// Any other version fails the load as corruption; there is no
// migration logic.
const SchemaVersion = 1

// registryFile is the on-disk document shape.
type registryFile struct {
	Version  *int                             `json:"version"`
	Commands map[string]models.CommandRecord `json:"commands"`
}

// Store reads and writes one registry layer.
type Store struct {
	path string
}

// NewStore creates a store over the registry file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Global returns a store over the global registry layer.
func Global() *Store {
	return NewStore(GlobalPath())
}

// Path returns the store's registry file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the layer from disk. A missing file yields an empty map.
// An unsupported schema version or malformed content yields a
// CorruptedError; Load never returns a partial mapping on error.
func (s *Store) Load() (map[string]models.CommandRecord, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]models.CommandRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading registry: %w", err)
	}

	var doc registryFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &models.CorruptedError{Path: s.path, Reason: err.Error()}
	}

	// A missing version field is read as the current schema for
	// hand-created files; an explicit mismatch is corruption.
	if doc.Version != nil && *doc.Version != SchemaVersion {
		return nil, &models.CorruptedError{
			Path:   s.path,
			Reason: fmt.Sprintf("unsupported schema version %d (supported: %d)", *doc.Version, SchemaVersion),
		}
	}

	commands := make(map[string]models.CommandRecord, len(doc.Commands))
	for name, rec := range doc.Commands {
		rec.Name = name
		commands[name] = rec
	}
	return commands, nil
}

// Save serializes the mapping with the current schema version and
// writes it atomically: a temporary sibling file is written first and
// then renamed over the target, so a crash mid-write never corrupts
// the previous good state.
func (s *Store) Save(commands map[string]models.CommandRecord) error {
	version := SchemaVersion
	doc := registryFile{Version: &version, Commands: commands}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling registry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating registry directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing registry: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing registry: %w", err)
	}

	slog.Debug("registry saved", "path", s.path, "commands", len(commands))
	return nil
}

// Add inserts a record and persists the layer. It fails with
// NameCollisionError when the name is already present.
func (s *Store) Add(rec models.CommandRecord) error {
	commands, err := s.Load()
	if err != nil {
		return err
	}
	if _, exists := commands[rec.Name]; exists {
		return &models.NameCollisionError{Name: rec.Name}
	}
	commands[rec.Name] = rec
	return s.Save(commands)
}

// Remove deletes a record and persists the layer. It fails with
// UnknownCommandError when the name is absent.
func (s *Store) Remove(name string) error {
	commands, err := s.Load()
	if err != nil {
		return err
	}
	if _, exists := commands[name]; !exists {
		return &models.UnknownCommandError{Name: name}
	}
	delete(commands, name)
	return s.Save(commands)
}

// Rename moves a record to a new primary name, refreshing its
// updated_at timestamp in the same persisted write. The old name must
// exist and the new name must be free; on failure the layer is left
// untouched.
func (s *Store) Rename(oldName, newName string) error {
	commands, err := s.Load()
	if err != nil {
		return err
	}
	rec, exists := commands[oldName]
	if !exists {
		return &models.UnknownCommandError{Name: oldName}
	}
	if _, exists := commands[newName]; exists {
		return &models.NameCollisionError{Name: newName}
	}

	rec.Name = newName
	rec.UpdatedAt = time.Now().UTC()
	delete(commands, oldName)
	commands[newName] = rec

	return s.Save(commands)
}

// Get looks up a record by primary name.
func (s *Store) Get(name string) (models.CommandRecord, bool, error) {
	commands, err := s.Load()
	if err != nil {
		return models.CommandRecord{}, false, err
	}
	rec, ok := commands[name]
	return rec, ok, nil
}

// List returns the layer's records sorted by name ascending,
// optionally filtered by a case-insensitive substring match on the
// name. The deterministic order is load-bearing for listings and for
// suggestion ordering upstream.
func (s *Store) List(pattern string) ([]models.CommandRecord, error) {
	commands, err := s.Load()
	if err != nil {
		return nil, err
	}
	return Sorted(commands, pattern), nil
}

// LayeredLoad returns the read-only merge of the project-local layer
// (found by upward search from workDir) over the global layer.
// Project-local records shadow global ones with the same name. The
// merge is recomputed per call and never persisted.
func LayeredLoad(workDir string) (map[string]models.CommandRecord, error) {
	merged, err := Global().Load()
	if err != nil {
		return nil, err
	}

	projectPath := ProjectPath(workDir)
	if projectPath == "" {
		return merged, nil
	}

	project, err := NewStore(projectPath).Load()
	if err != nil {
		return nil, err
	}

	slog.Debug("layering project registry", "path", projectPath, "commands", len(project))
	for name, rec := range project {
		merged[name] = rec
	}
	return merged, nil
}

// Sorted filters a mapping by an optional case-insensitive substring
// pattern and returns the records sorted by name ascending.
func Sorted(commands map[string]models.CommandRecord, pattern string) []models.CommandRecord {
	needle := strings.ToLower(pattern)
	out := make([]models.CommandRecord, 0, len(commands))
	for _, rec := range commands {
		if needle != "" && !strings.Contains(strings.ToLower(rec.Name), needle) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
