package models

import (
	"errors"
	"fmt"
	"strings"
)

// UnknownCommandError reports a lookup miss with no dotted-name
// fallback. Suggestions, when present, are near-matches computed by
// the resolver.
type UnknownCommandError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownCommandError) Error() string {
	if len(e.Suggestions) > 0 {
		return fmt.Sprintf("unknown command %q (did you mean: %s?)", e.Name, strings.Join(e.Suggestions, ", "))
	}
	return fmt.Sprintf("unknown command %q", e.Name)
}

// NameCollisionError reports a duplicate primary name on add or as a
// rename target.
type NameCollisionError struct {
	Name string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("command %q already exists; unregister it or rename it first", e.Name)
}

// InvalidNameError reports a command name that violates the naming
// rules, or an unconfirmed dotted-name registration.
type InvalidNameError struct {
	Name   string
	Reason string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid command name %q: %s", e.Name, e.Reason)
}

// CorruptedError reports an unreadable or unsupported-version registry
// file. Corruption is never auto-repaired.
type CorruptedError struct {
	Path   string
	Reason string
}

func (e *CorruptedError) Error() string {
	return fmt.Sprintf("registry %s is corrupted: %s; back up the file and recreate it", e.Path, e.Reason)
}

// ExecutionError reports a failure to execute a resolved command:
// spawn failure, callable error, or timeout.
type ExecutionError struct {
	Display string // human-readable rendering of what ran
	Timeout bool
	Err     error
}

func (e *ExecutionError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("command timed out: %s", e.Display)
	}
	if e.Err != nil {
		return fmt.Sprintf("command failed: %s: %v", e.Display, e.Err)
	}
	return fmt.Sprintf("command failed: %s", e.Display)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// IsTimeout reports whether err is an ExecutionError caused by timeout
// expiry. Callers use this to distinguish timeouts from generic
// execution failures.
func IsTimeout(err error) bool {
	var ee *ExecutionError
	return errors.As(err, &ee) && ee.Timeout
}
