// Package validation checks generated resume text for style problems.
package validation

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"
)

// DefaultMaxLineChars is the longest a single resume line should run.
// A bullet past this reads as a paragraph once rendered.
const DefaultMaxLineChars = 200

var (
	// headingPattern matches markdown heading markers at the start of a line.
	headingPattern = regexp.MustCompile(`^#{1,6}\s+`)
	// bulletPattern matches markdown list markers at the start of a line.
	bulletPattern = regexp.MustCompile(`^\s*[-*+]\s+`)
	// linkPattern matches markdown links; only the link text counts as content.
	linkPattern = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	// emphasisPattern matches emphasis and inline-code markers.
	emphasisPattern = regexp.MustCompile("[*_`]+")
)

// CheckLineLengths flags lines whose rendered content exceeds maxChars.
// Markdown markup is stripped before counting.
func CheckLineLengths(content string, maxChars int) []Violation {
	var violations []Violation
	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if strings.TrimSpace(line) == "" {
			continue
		}

		contentLength := countContentChars(line)
		if contentLength > maxChars {
			violations = append(violations, Violation{
				Type:       "line_too_long",
				Severity:   "warning",
				Details:    fmt.Sprintf("Line %d has %d characters, maximum is %d", lineNum, contentLength, maxChars),
				LineNumber: lineNum,
			})
		}
	}

	return violations
}

// countContentChars counts the characters a line renders to, ignoring
// markdown markers and link URLs.
func countContentChars(line string) int {
	processed := headingPattern.ReplaceAllString(line, "")
	processed = bulletPattern.ReplaceAllString(processed, "")
	processed = linkPattern.ReplaceAllString(processed, "$1")
	processed = emphasisPattern.ReplaceAllString(processed, "")
	return len([]rune(strings.TrimSpace(processed)))
}
