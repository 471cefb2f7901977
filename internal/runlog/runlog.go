// Package runlog writes per-run output log files for executed
// commands and manages their retention.
package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/regent-cli/regent/internal/models"
)

// Writer writes run logs into a directory.
type Writer struct {
	dir string
}

// New creates a writer over the given log directory.
func New(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the log directory.
func (w *Writer) Dir() string { return w.dir }

// Write stores one run's outcome and returns the log file path. The
// file name embeds a sanitized command name and a timestamp; the run
// ID inside the file links it to the matching history entry.
func (w *Writer) Write(id, commandName string, args []string, result models.RunResult) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating log directory: %w", err)
	}

	stamp := time.Now().Format("20060102_150405")
	path := filepath.Join(w.dir, fmt.Sprintf("%s_%s.log", safeName(commandName), stamp))

	var b strings.Builder
	fmt.Fprintf(&b, "Command: %s\n", commandName)
	if id != "" {
		fmt.Fprintf(&b, "Run ID: %s\n", id)
	}
	if len(args) > 0 {
		fmt.Fprintf(&b, "Arguments: %s\n", strings.Join(args, " "))
	}
	fmt.Fprintf(&b, "Executed at: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&b, "Exit code: %d\n", result.ReturnCode)
	fmt.Fprintf(&b, "Duration: %.2fs\n", result.Duration.Seconds())

	if result.Captured {
		if result.Stdout != "" {
			b.WriteString("\n=== STDOUT ===\n")
			b.WriteString(result.Stdout)
			if !strings.HasSuffix(result.Stdout, "\n") {
				b.WriteByte('\n')
			}
		}
		if result.Stderr != "" {
			b.WriteString("\n=== STDERR ===\n")
			b.WriteString(result.Stderr)
			if !strings.HasSuffix(result.Stderr, "\n") {
				b.WriteByte('\n')
			}
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing run log: %w", err)
	}
	return path, nil
}

// Recent lists log files, most recently modified first, optionally
// filtered to one command.
func (w *Writer) Recent(commandName string, limit int) ([]string, error) {
	entries, err := os.ReadDir(w.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading log directory: %w", err)
	}

	prefix := ""
	if commandName != "" {
		prefix = safeName(commandName) + "_"
	}

	type logFile struct {
		path    string
		modTime time.Time
	}
	var files []logFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".log") {
			continue
		}
		if prefix != "" && !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, logFile{path: filepath.Join(w.dir, e.Name()), modTime: info.ModTime()})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].modTime.After(files[j].modTime) })
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}

	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.path
	}
	return out, nil
}

// Prune deletes log files older than the retention window and returns
// how many were removed.
func (w *Writer) Prune(retention time.Duration) (int, error) {
	entries, err := os.ReadDir(w.dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading log directory: %w", err)
	}

	cutoff := time.Now().Add(-retention)
	deleted := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".log") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(w.dir, e.Name())); err == nil {
				deleted++
			}
		}
	}
	return deleted, nil
}

// safeName makes a command name filesystem-safe for log file names.
func safeName(name string) string {
	return strings.NewReplacer(":", "_", "/", "_", "\\", "_").Replace(name)
}
