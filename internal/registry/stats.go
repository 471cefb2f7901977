package registry

import (
	"sort"

	"github.com/regent-cli/regent/internal/models"
)

// Stats summarizes the contents of a registry mapping.
type Stats struct {
	Total       int
	ByKind      map[models.Kind]int
	ByNamespace map[string]int
	Tags        []string
}

// Summarize computes registry statistics: totals by kind, by display
// namespace, and the sorted set of distinct tags. Un-namespaced
// commands are grouped under "(root)".
func Summarize(commands map[string]models.CommandRecord) Stats {
	stats := Stats{
		Total:       len(commands),
		ByKind:      make(map[models.Kind]int),
		ByNamespace: make(map[string]int),
	}

	tagSet := make(map[string]struct{})
	for _, rec := range commands {
		stats.ByKind[rec.Kind]++

		ns := rec.Namespace()
		if ns == "" {
			ns = "(root)"
		}
		stats.ByNamespace[ns]++

		for _, tag := range rec.Tags {
			tagSet[tag] = struct{}{}
		}
	}

	stats.Tags = make([]string, 0, len(tagSet))
	for tag := range tagSet {
		stats.Tags = append(stats.Tags, tag)
	}
	sort.Strings(stats.Tags)

	return stats
}
