// Package config loads tool settings: a global YAML file overlaid by
// an optional project-local TOML file found next to the project
// registry marker. Missing files mean defaults, never errors.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	globalFileName  = "config.yaml"
	projectFileName = "config.toml"
	projectDir      = ".regent"
)

// Settings holds tunable tool behavior. Registry contents are not
// configuration and live in the registry package.
type Settings struct {
	History HistorySettings   `yaml:"history" toml:"history"`
	Logs    LogSettings       `yaml:"logs" toml:"logs"`
	Runner  RunnerSettings    `yaml:"runner" toml:"runner"`
	Env     map[string]string `yaml:"env" toml:"env"`
}

type HistorySettings struct {
	// MaxEntries caps retained history entries; oldest are evicted
	// first.
	MaxEntries int `yaml:"max_entries" toml:"max_entries"`
}

type LogSettings struct {
	Dir           string `yaml:"dir" toml:"dir"`
	RetentionDays int    `yaml:"retention_days" toml:"retention_days"`
}

type RunnerSettings struct {
	// ModuleCommand is the argv prefix used to run module-kind targets
	// as a subprocess entry point.
	ModuleCommand []string `yaml:"module_command" toml:"module_command"`
}

// Default returns the settings used when no config files exist.
func Default() Settings {
	return Settings{
		History: HistorySettings{MaxEntries: 1000},
		Logs: LogSettings{
			Dir:           filepath.Join(DataDir(), "logs"),
			RetentionDays: 30,
		},
		Runner: RunnerSettings{ModuleCommand: []string{"python3", "-m"}},
	}
}

// ConfigDir returns the directory holding the global config and
// registry files.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "regent")
}

// DataDir returns the directory holding history and run logs.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".local", "share", "regent")
}

// Load reads settings: defaults, then the global YAML file, then a
// project-local TOML overlay found by walking up from workDir.
func Load(workDir string) (Settings, error) {
	cfg := Default()

	globalPath := filepath.Join(ConfigDir(), globalFileName)
	data, err := os.ReadFile(globalPath)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", globalPath, err)
		}
		slog.Debug("loaded global config", "path", globalPath)
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if projectPath := projectConfigPath(workDir); projectPath != "" {
		data, err := os.ReadFile(projectPath)
		if err != nil {
			return cfg, fmt.Errorf("reading project config: %w", err)
		}
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", projectPath, err)
		}
		slog.Debug("loaded project config", "path", projectPath)
	}

	// Re-apply defaults clobbered by partial files.
	if cfg.History.MaxEntries <= 0 {
		cfg.History.MaxEntries = 1000
	}
	if cfg.Logs.Dir == "" {
		cfg.Logs.Dir = filepath.Join(DataDir(), "logs")
	}
	if cfg.Logs.RetentionDays <= 0 {
		cfg.Logs.RetentionDays = 30
	}
	if len(cfg.Runner.ModuleCommand) == 0 {
		cfg.Runner.ModuleCommand = []string{"python3", "-m"}
	}

	return cfg, nil
}

// projectConfigPath walks from dir up to the filesystem root looking
// for a .regent/config.toml.
func projectConfigPath(dir string) string {
	cur, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(cur, projectDir, projectFileName)
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
