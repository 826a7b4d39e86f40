// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Server fields.
	FieldServer   = "server"
	FieldURL      = "url"
	FieldPort     = "port"
	FieldPID      = "pid"
	FieldLatency  = "latency"
	FieldLanguage = "language"
	FieldPayload  = "payload"

	// Run fields.
	FieldJobs     = "jobs"
	FieldWatch    = "watch"
	FieldDuration = "duration"

	// Statistics fields.
	FieldFilesDiscovered   = "files_discovered"
	FieldFilesChecked      = "files_checked"
	FieldFilesWithProblems = "files_with_problems"
	FieldProblemsTotal     = "problems_total"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Problem fields.
	FieldRule     = "rule"
	FieldCategory = "category"
	FieldCount    = "count"
	FieldWord     = "word"
	FieldOffset   = "offset"
)
