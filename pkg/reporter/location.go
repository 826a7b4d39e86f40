package reporter

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// linePosition resolves a byte offset in content to a 1-based line and
// column. The column counts runes from the start of the line.
func linePosition(content []byte, offset int) (line, column int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(content) {
		offset = len(content)
	}

	line = 1
	lineStart := 0
	for i := range offset {
		if content[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}

	return line, utf8.RuneCount(content[lineStart:offset]) + 1
}

// lineAt returns the text of the line containing the byte offset, without
// the trailing newline.
func lineAt(content []byte, offset int) string {
	if offset < 0 {
		offset = 0
	}
	if offset > len(content) {
		offset = len(content)
	}

	start := bytes.LastIndexByte(content[:offset], '\n') + 1
	end := bytes.IndexByte(content[offset:], '\n')
	if end < 0 {
		end = len(content)
	} else {
		end += offset
	}

	return string(content[start:end])
}

// displayPath makes an absolute path relative to the working directory for
// display. Paths outside the working directory are kept as-is.
func displayPath(path, workingDir string) string {
	if workingDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workingDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
