package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gramlint/internal/ui/pretty"
	"github.com/yaklabco/gramlint/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int

	if r.opts.GroupByFile {
		total = r.reportGrouped(result)
	} else {
		total = r.reportFlat(result)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// reportGrouped writes problems grouped by file.
func (r *TextReporter) reportGrouped(result *runner.Result) int {
	var total int

	for i := range result.Files {
		file := &result.Files[i]

		if file.Err != nil {
			r.writeFileError(file)
			continue
		}

		if len(file.Problems) == 0 {
			continue
		}

		// File header
		path := displayPath(file.Path, r.opts.WorkingDir)
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Problems)))

		total += r.writeProblems(file)

		// Blank line between files
		fmt.Fprintln(r.bw)
	}

	return total
}

// reportFlat writes problems without grouping.
func (r *TextReporter) reportFlat(result *runner.Result) int {
	var total int

	for i := range result.Files {
		file := &result.Files[i]

		if file.Err != nil {
			r.writeFileError(file)
			continue
		}

		total += r.writeProblems(file)
	}

	return total
}

func (r *TextReporter) writeProblems(file *runner.FileOutcome) int {
	path := displayPath(file.Path, r.opts.WorkingDir)

	for i := range file.Problems {
		p := file.Problems[i]
		if !r.opts.ShowReplacements {
			p.Replacements = nil
		}

		line, column := linePosition(file.Content, p.Offset)

		var sourceLine string
		if !r.opts.Compact {
			sourceLine = lineAt(file.Content, p.Offset)
		}

		fmt.Fprint(r.bw, r.styles.FormatProblem(path, line, column, &p, sourceLine))

		if r.opts.ShowURLs {
			fmt.Fprint(r.bw, r.styles.FormatMoreInfo(p.URLs))
		}
	}

	return len(file.Problems)
}

func (r *TextReporter) writeFileError(file *runner.FileOutcome) {
	fmt.Fprintf(r.bw, "%s: %s\n",
		r.styles.FilePath.Render(displayPath(file.Path, r.opts.WorkingDir)),
		r.styles.Error.Render(fmt.Sprintf("error: %v", file.Err)),
	)
}
