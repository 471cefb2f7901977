package models

import "time"

// HistoryEntry records one command execution in the append-only
// history. The ID links the entry to its run log file.
type HistoryEntry struct {
	ID          string    `json:"id,omitempty"`
	CommandName string    `json:"command_name"`
	Args        []string  `json:"args"`
	ReturnCode  int       `json:"returncode"`
	ExecutedAt  time.Time `json:"executed_at"`
	DurationSec float64   `json:"duration"`
	Cwd         string    `json:"cwd,omitempty"`
}
