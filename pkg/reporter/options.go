package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowURLs includes rule reference links below each problem.
	ShowURLs bool

	// ShowReplacements includes suggested corrections below each problem.
	ShowReplacements bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// GroupByFile groups problems by file (default: true for text format).
	GroupByFile bool

	// Compact uses compact output where applicable: the text format drops
	// source-line context, the JSON format is minified.
	Compact bool

	// WorkingDir is the directory to make displayed paths relative to.
	// If empty, paths are kept as-is.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:           os.Stdout,
		ErrorWriter:      os.Stderr,
		Format:           FormatText,
		Color:            "auto",
		ShowURLs:         false,
		ShowReplacements: true,
		ShowSummary:      true,
		GroupByFile:      true,
		Compact:          false,
	}
}
