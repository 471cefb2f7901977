package registry

import (
	"os"
	"path/filepath"
)

const (
	// EnvRegistryFile overrides the global registry file location.
	EnvRegistryFile = "REGENT_REGISTRY_FILE"

	// ProjectMarkerDir is the directory searched for upward from the
	// working directory to locate a project-local registry.
	ProjectMarkerDir = ".regent"

	registryFileName = "registry.json"
)

// GlobalPath returns the path of the global registry file: the
// REGENT_REGISTRY_FILE environment override when set, otherwise
// ~/.config/regent/registry.json.
func GlobalPath() string {
	if p := os.Getenv(EnvRegistryFile); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "regent", registryFileName)
}

// ProjectPath walks from dir up to the filesystem root looking for a
// .regent/registry.json marker. It returns the first one found, or
// empty when no project registry exists.
func ProjectPath(dir string) string {
	cur, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(cur, ProjectMarkerDir, registryFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return ""
		}
		cur = parent
	}
}
