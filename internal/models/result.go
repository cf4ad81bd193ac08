package models

// RunResult is the outcome of a single invocation.
type RunResult struct {
	Success        bool
	ProcessedCount int
	Error          string
}
