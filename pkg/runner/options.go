// Package runner provides multi-file batch checking: discovery, a worker
// pool over the checker, aggregate statistics, and a file watcher for
// continuous runs.
package runner

import "github.com/yaklabco/gramlint/pkg/check"

// Options controls batch checking behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered checkable. Defaults via DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	// These merge ignore rules from config and CLI (e.g. --ignore).
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Checker performs the per-file server round trips.
	Checker *check.Checker

	// Check carries the per-run check settings. The buffer format is
	// detected per file and overrides whatever Format carries.
	Check check.Options
}

// DefaultExtensions returns the default set of checkable file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown", ".txt", ".text"}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
