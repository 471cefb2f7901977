package registry

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Export copies the registry file byte-for-byte to dst.
func (s *Store) Export(dst string) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("reading registry: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

// Import brings commands in from the registry file at src. With merge
// false the active registry is replaced wholesale. With merge true the
// imported commands are added to the existing set; any name collision
// fails the whole import with no automatic resolution, leaving the
// active registry untouched.
func (s *Store) Import(src string, merge bool) error {
	incoming, err := NewStore(src).Load()
	if err != nil {
		return err
	}

	if !merge {
		return s.Save(incoming)
	}

	existing, err := s.Load()
	if err != nil {
		return err
	}

	var conflicts []string
	for name := range incoming {
		if _, ok := existing[name]; ok {
			conflicts = append(conflicts, name)
		}
	}
	if len(conflicts) > 0 {
		sort.Strings(conflicts)
		return fmt.Errorf("cannot merge, commands already exist: %s (rename or remove them first, or import without merge to replace)",
			strings.Join(conflicts, ", "))
	}

	for name, rec := range incoming {
		existing[name] = rec
	}
	return s.Save(existing)
}
