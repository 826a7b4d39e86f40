package reporter

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/gramlint/internal/ui/pretty"
	"github.com/yaklabco/gramlint/pkg/runner"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	tableWidth        = 60 // Width of table separators (same for both tables).
	categoryColWidth  = 40 // Width of the category name column.
	fileColWidth      = 44 // Width of the file path column.
	numColWidth       = 7  // Width of numeric columns.
	maxCategoryLength = 38 // Maximum characters for a category before truncation.
	maxFilePathLength = 42 // Maximum characters for a file path before truncation.
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// truncate shortens a string to at most max characters, marking the cut.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}

// categoryRow aggregates one rule category across all files.
type categoryRow struct {
	name  string
	count int
	files int
}

// fileRow aggregates one file's problem count.
type fileRow struct {
	path  string
	count int
}

// SummaryReporter formats results as aggregated summary tables.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		fmt.Fprint(r.out, r.styles.FormatSummaryOneLine(runner.Stats{}))
		return 0, nil
	}

	if result.Stats.ProblemsTotal > 0 {
		r.renderCategoryTable(categoryRows(result))
		fmt.Fprintln(r.out)
		r.renderFileTable(fileRows(result, r.opts.WorkingDir))
		fmt.Fprintln(r.out)
	}

	fmt.Fprint(r.out, r.styles.FormatSummaryOneLine(result.Stats))

	return result.Stats.ProblemsTotal, nil
}

func (r *SummaryReporter) renderCategoryTable(rows []categoryRow) {
	fmt.Fprintln(r.out, r.styles.Bold.Render("Categories"))
	fmt.Fprintln(r.out, r.styles.Dim.Render(strings.Repeat("─", tableWidth)))

	// Header - pad first, then style
	fmt.Fprintf(r.out, "%s %s %s\n",
		r.styles.Bold.Render(padRight("Category", categoryColWidth)),
		r.styles.Bold.Render(padLeft("Count", numColWidth)),
		r.styles.Bold.Render(padLeft("Files", numColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.Dim.Render(strings.Repeat("─", tableWidth)))

	for _, row := range rows {
		name := padRight(truncate(row.name, maxCategoryLength), categoryColWidth)
		fmt.Fprintf(r.out, "%s %s %s\n",
			r.styles.Warning.Render(name),
			padLeft(strconv.Itoa(row.count), numColWidth),
			padLeft(strconv.Itoa(row.files), numColWidth),
		)
	}
}

func (r *SummaryReporter) renderFileTable(rows []fileRow) {
	fmt.Fprintln(r.out, r.styles.Bold.Render("Files"))
	fmt.Fprintln(r.out, r.styles.Dim.Render(strings.Repeat("─", tableWidth)))

	fmt.Fprintf(r.out, "%s %s\n",
		r.styles.Bold.Render(padRight("File", fileColWidth)),
		r.styles.Bold.Render(padLeft("Problems", numColWidth+1)),
	)
	fmt.Fprintln(r.out, r.styles.Dim.Render(strings.Repeat("─", tableWidth)))

	for _, row := range rows {
		path := padRight(truncate(row.path, maxFilePathLength), fileColWidth)
		fmt.Fprintf(r.out, "%s %s\n",
			r.styles.FilePath.Render(path),
			padLeft(strconv.Itoa(row.count), numColWidth+1),
		)
	}
}

// categoryRows aggregates problems per category, ordered by descending
// count with ties broken alphabetically.
func categoryRows(result *runner.Result) []categoryRow {
	counts := make(map[string]int)
	fileSets := make(map[string]map[string]struct{})

	for i := range result.Files {
		file := &result.Files[i]
		for _, p := range file.Problems {
			category := p.Category
			if category == "" {
				category = "Unknown"
			}
			counts[category]++
			if fileSets[category] == nil {
				fileSets[category] = make(map[string]struct{})
			}
			fileSets[category][file.Path] = struct{}{}
		}
	}

	rows := make([]categoryRow, 0, len(counts))
	for name, count := range counts {
		rows = append(rows, categoryRow{
			name:  name,
			count: count,
			files: len(fileSets[name]),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].name < rows[j].name
	})

	return rows
}

// fileRows lists files with problems, ordered by descending problem count
// with ties broken by path.
func fileRows(result *runner.Result, workingDir string) []fileRow {
	rows := make([]fileRow, 0, len(result.Files))
	for i := range result.Files {
		file := &result.Files[i]
		if len(file.Problems) == 0 {
			continue
		}
		rows = append(rows, fileRow{
			path:  displayPath(file.Path, workingDir),
			count: len(file.Problems),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].path < rows[j].path
	})

	return rows
}
