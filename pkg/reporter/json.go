package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gramlint/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path     string        `json:"path"`
	Language string        `json:"language,omitempty"`
	Problems []JSONProblem `json:"problems"`
	Error    string        `json:"error,omitempty"`
}

// JSONProblem represents a single problem.
type JSONProblem struct {
	RuleID       string   `json:"ruleId"`
	Category     string   `json:"category"`
	Message      string   `json:"message"`
	Offset       int      `json:"offset"`
	Length       int      `json:"length"`
	Line         int      `json:"line"`
	Column       int      `json:"column"`
	Text         string   `json:"text,omitempty"`
	Replacements []string `json:"replacements,omitempty"`
	URLs         []string `json:"urls,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked      int            `json:"filesChecked"`
	FilesWithProblems int            `json:"filesWithProblems"`
	FilesErrored      int            `json:"filesErrored"`
	TotalProblems     int            `json:"totalProblems"`
	ByCategory        map[string]int `json:"byCategory"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalProblems, nil
}

func buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			ByCategory: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	if len(result.Files) > 0 {
		output.Files = make([]JSONFileResult, 0, len(result.Files))
	}

	for i := range result.Files {
		file := &result.Files[i]

		fileResult := JSONFileResult{
			Path:     file.Path,
			Language: file.Language,
			Problems: make([]JSONProblem, 0, len(file.Problems)),
		}

		if file.Err != nil {
			fileResult.Error = file.Err.Error()
		}

		for _, p := range file.Problems {
			line, column := linePosition(file.Content, p.Offset)
			fileResult.Problems = append(fileResult.Problems, JSONProblem{
				RuleID:       p.RuleID,
				Category:     p.Category,
				Message:      p.Message,
				Offset:       p.Offset,
				Length:       p.Length,
				Line:         line,
				Column:       column,
				Text:         p.Original,
				Replacements: p.Replacements,
				URLs:         p.URLs,
			})
		}

		output.Files = append(output.Files, fileResult)
	}

	output.Summary = JSONSummary{
		FilesChecked:      result.Stats.FilesChecked,
		FilesWithProblems: result.Stats.FilesWithProblems,
		FilesErrored:      result.Stats.FilesErrored,
		TotalProblems:     result.Stats.ProblemsTotal,
		ByCategory:        result.Stats.ProblemsByCategory,
	}
	if output.Summary.ByCategory == nil {
		output.Summary.ByCategory = make(map[string]int)
	}

	return output
}
