package pretty

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/gramlint/pkg/check"
	"github.com/yaklabco/gramlint/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "4 problems in 2 files (7 files checked)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	checked := s.Dim.Render(fmt.Sprintf(" (%d files checked)", stats.FilesChecked))

	if stats.ProblemsTotal == 0 {
		msg := s.Success.Render(check.CleanMessage) + checked
		if stats.FilesErrored > 0 {
			msg += ", " + s.Error.Render(formatFailedFiles(stats.FilesErrored))
		}
		return msg + "\n"
	}

	problemWord := "problems"
	if stats.ProblemsTotal == 1 {
		problemWord = "problem"
	}
	fileWord := wordFiles
	if stats.FilesWithProblems == 1 {
		fileWord = wordFile
	}

	line := fmt.Sprintf("%d %s in %d %s",
		stats.ProblemsTotal, problemWord, stats.FilesWithProblems, fileWord) + checked

	if stats.FilesErrored > 0 {
		line += ", " + s.Error.Render(formatFailedFiles(stats.FilesErrored))
	}

	return line + "\n"
}

func formatFailedFiles(n int) string {
	word := wordFiles
	if n == 1 {
		word = wordFile
	}
	return fmt.Sprintf("%d %s failed", n, word)
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	// Files
	builder.WriteString("  Files checked:        " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesChecked)) + "\n")

	if stats.FilesWithProblems > 0 {
		builder.WriteString("  Files with problems:  " +
			s.Failure.Render(strconv.Itoa(stats.FilesWithProblems)) + "\n")
	}

	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:         " +
			s.Error.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	// Problems by category
	builder.WriteString("  Total problems:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.ProblemsTotal)) + "\n")

	for _, category := range sortedCategories(stats.ProblemsByCategory) {
		count := stats.ProblemsByCategory[category]
		builder.WriteString(fmt.Sprintf("    %-20s%s\n",
			category+":", s.Warning.Render(strconv.Itoa(count))))
	}

	builder.WriteString("\n")

	// Overall status
	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Check failed"))
	case stats.ProblemsTotal > 0:
		builder.WriteString(s.Failure.Render("Problems found"))
	default:
		builder.WriteString(s.Success.Render(check.CleanMessage))
	}
	builder.WriteString("\n")

	return builder.String()
}

// sortedCategories orders category names by descending count, ties broken
// alphabetically, so the most frequent problem kind leads the breakdown.
func sortedCategories(byCategory map[string]int) []string {
	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		if byCategory[categories[i]] != byCategory[categories[j]] {
			return byCategory[categories[i]] > byCategory[categories[j]]
		}
		return categories[i] < categories[j]
	})
	return categories
}
