package runner

import "github.com/yaklabco/gramlint/pkg/problem"

// FileOutcome is the result of checking one file.
type FileOutcome struct {
	// Path is the file path that was checked.
	Path string

	// Content is the checked file content. Problem offsets refer to it;
	// reporters use it to derive line and column positions.
	Content []byte

	// Problems are the reported problems, in server order.
	Problems []problem.Problem

	// Language is the language the server checked against.
	Language string

	// Err is set if the file could not be checked.
	Err error
}

// HasProblems reports whether the file produced any problems.
func (o FileOutcome) HasProblems() bool {
	return len(o.Problems) > 0
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesChecked is the number of files checked successfully.
	FilesChecked int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesWithProblems is the number of files with at least one problem.
	FilesWithProblems int

	// ProblemsTotal is the total number of problems across all files.
	ProblemsTotal int

	// ProblemsByCategory maps category names to counts.
	ProblemsByCategory map[string]int
}

// Result is the overall batch result.
type Result struct {
	// Files contains the outcome for each checked file, in discovery order.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasProblems reports whether any file produced problems.
func (r *Result) HasProblems() bool {
	if r == nil {
		return false
	}
	return r.Stats.ProblemsTotal > 0
}

// HasErrors reports whether any file failed to check.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0 || len(r.Errors) > 0
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		ProblemsByCategory: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Err != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesChecked++
	r.Stats.ProblemsTotal += len(outcome.Problems)

	if len(outcome.Problems) > 0 {
		r.Stats.FilesWithProblems++
	}

	for _, p := range outcome.Problems {
		category := p.Category
		if category == "" {
			category = "Unknown"
		}
		r.Stats.ProblemsByCategory[category]++
	}
}
