// Package resolve maps free-form command names and targets to
// registered records and inferred kinds. It owns the naming rules, the
// type-inference heuristics, the dotted-name execution fallback, and
// fuzzy suggestions on lookup miss.
package resolve

import (
	"sort"
	"strings"

	"github.com/regent-cli/regent/internal/models"
)

// MaxSuggestions caps the number of near-matches returned by Suggest.
const MaxSuggestions = 5

// SimilarityFloor is the minimum similarity ratio for a name to be
// offered as a suggestion.
const SimilarityFloor = 0.6

// IsDottedName reports whether name contains a dot. A dotted name that
// misses the registry is treated as an implicit module execution
// rather than an unknown command.
func IsDottedName(name string) bool {
	return strings.Contains(name, ".")
}

// ValidateName checks a command name against the naming rules: it must
// be non-empty, contain only alphanumerics, underscores, dashes, dots
// and colons, and use single colons only as interior namespace
// separators.
func ValidateName(name string) error {
	if name == "" {
		return &models.InvalidNameError{Name: name, Reason: "name is empty"}
	}
	for _, r := range name {
		if !isNameRune(r) {
			return &models.InvalidNameError{
				Name:   name,
				Reason: "only alphanumerics, underscores, dashes, dots, and colons are allowed",
			}
		}
	}
	if strings.Contains(name, "::") {
		return &models.InvalidNameError{Name: name, Reason: "double colons are not allowed"}
	}
	if strings.HasPrefix(name, ":") || strings.HasSuffix(name, ":") {
		return &models.InvalidNameError{Name: name, Reason: "names cannot start or end with a colon"}
	}
	return nil
}

func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '-' || r == '.' || r == ':':
		return true
	}
	return false
}

// InferKind guesses a command kind from the target's syntax alone. A
// single-colon, whitespace-free target reads as a callable reference,
// a dotted path-free target as a module, and anything else as a shell
// command. The target is never resolved or imported to confirm.
func InferKind(target string) models.Kind {
	hasSpace := strings.ContainsAny(target, " \t")

	if strings.Count(target, ":") == 1 && !hasSpace {
		return models.KindCallable
	}
	if strings.Contains(target, ".") && !hasSpace && !strings.ContainsAny(target, `/\`) {
		return models.KindModule
	}
	return models.KindShell
}

// InferDefaultName derives a registration name from a target when the
// caller did not provide one.
func InferDefaultName(target string, kind models.Kind) string {
	switch kind {
	case models.KindModule:
		// a.b.c -> c
		segments := strings.Split(target, ".")
		return segments[len(segments)-1]

	case models.KindCallable:
		// pkg.mod:main -> main
		if i := strings.LastIndex(target, ":"); i >= 0 {
			return target[i+1:]
		}
		segments := strings.Split(target, ".")
		return segments[len(segments)-1]

	default: // shell
		fields := strings.Fields(target)
		if len(fields) == 0 {
			return target
		}
		// /usr/bin/ffmpeg -i ... -> ffmpeg
		return baseName(fields[0])
	}
}

// baseName strips everything up to the last slash or backslash.
func baseName(token string) string {
	if i := strings.LastIndexAny(token, `/\`); i >= 0 {
		return token[i+1:]
	}
	return token
}

// Resolve looks name up in the layered command mapping. It returns
// (record, false) on an exact or alias match, (nil, true) for an
// unregistered dotted name that should fall back to implicit module
// execution, and (nil, false) for a genuine miss. The dotted check
// applies to the primary lookup only, never to aliases.
func Resolve(commands map[string]models.CommandRecord, name string) (*models.CommandRecord, bool) {
	if rec, ok := commands[name]; ok {
		return &rec, false
	}

	// Alias scan in sorted-name order for deterministic results.
	for _, cmdName := range sortedNames(commands) {
		rec := commands[cmdName]
		for _, alias := range rec.Aliases {
			if alias == name {
				return &rec, false
			}
		}
	}

	if IsDottedName(name) {
		return nil, true
	}
	return nil, false
}

// Suggest returns up to MaxSuggestions registered names similar to the
// missed name, ordered by descending similarity then name. Names below
// SimilarityFloor are never offered.
func Suggest(commands map[string]models.CommandRecord, name string) []string {
	type scored struct {
		name  string
		ratio float64
	}

	var candidates []scored
	for _, cmdName := range sortedNames(commands) {
		if r := Ratio(name, cmdName); r >= SimilarityFloor {
			candidates = append(candidates, scored{name: cmdName, ratio: r})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].ratio != candidates[j].ratio {
			return candidates[i].ratio > candidates[j].ratio
		}
		return candidates[i].name < candidates[j].name
	})

	if len(candidates) > MaxSuggestions {
		candidates = candidates[:MaxSuggestions]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.name
	}
	return out
}

func sortedNames(commands map[string]models.CommandRecord) []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
