package models

import (
	"fmt"
	"strings"
	"time"
)

// Kind identifies how a command's target is executed.
type Kind string

const (
	// KindShell runs the target as a shell command or executable.
	KindShell Kind = "shell"
	// KindModule runs the target as a subprocess entry point via the
	// configured module runner.
	KindModule Kind = "module"
	// KindCallable invokes a pre-registered in-process function
	// identified by a namespace:function target.
	KindCallable Kind = "callable"
)

// ParseKind converts a string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindShell, KindModule, KindCallable:
		return Kind(s), nil
	}
	return "", fmt.Errorf("invalid command kind %q (expected shell, module, or callable)", s)
}

// CommandRecord is a registered name-to-target mapping with metadata.
// The name is the map key in the persisted registry, not part of the
// serialized record body.
type CommandRecord struct {
	Name        string            `json:"-"`
	Kind        Kind              `json:"kind"`
	Target      string            `json:"target"`
	Description string            `json:"description,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Aliases     []string          `json:"aliases,omitempty"`
	DependsOn   []string          `json:"depends_on,omitempty"`
	Env         map[string]string `json:"env,omitempty"`
	TimeoutSec  int               `json:"timeout,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Timeout returns the record's execution timeout, or zero if unset.
func (c *CommandRecord) Timeout() time.Duration {
	if c.TimeoutSec <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSec) * time.Second
}

// Namespace returns the display namespace of the command name: the text
// before the first colon, or empty for un-namespaced names. Namespaces
// group commands in listings and carry no structural meaning.
func (c *CommandRecord) Namespace() string {
	if i := strings.IndexByte(c.Name, ':'); i >= 0 {
		return c.Name[:i]
	}
	return ""
}
