package models

import "time"

// ExecutionPlan describes a single invocation of a resolved command.
// Plans are built fresh per invocation and never persisted or shared.
type ExecutionPlan struct {
	Kind    Kind
	Target  string
	Args    []string
	Cwd     string            // empty = inherit the caller's working directory
	Env     map[string]string // merged over the ambient environment
	Timeout time.Duration     // zero = no timeout
	DryRun  bool
	Verbose bool
}

// RunResult is the outcome of executing a plan.
type RunResult struct {
	ReturnCode int
	Stdout     string
	Stderr     string
	Captured   bool // whether Stdout/Stderr hold captured output
	Duration   time.Duration
}
