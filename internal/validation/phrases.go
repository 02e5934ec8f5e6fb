// Package validation checks generated resume text for style problems.
package validation

import (
	"bufio"
	"fmt"
	"strings"
)

// ClichePhrases are stock resume phrases that weaken tailored output.
var ClichePhrases = []string{
	"team player",
	"results-driven",
	"results driven",
	"go-getter",
	"think outside the box",
	"synergy",
	"self-starter",
	"detail-oriented",
	"hard worker",
	"proven track record",
	"responsible for",
	"go above and beyond",
	"thought leader",
	"fast-paced environment",
	"rockstar",
	"ninja",
	"guru",
}

// CheckPhrases scans resume text for the given phrases, case-insensitively.
// At most one violation is reported per line, naming the first phrase found.
func CheckPhrases(content string, phrases []string) []Violation {
	if len(phrases) == 0 {
		return nil
	}

	var violations []Violation
	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		lineLower := strings.ToLower(scanner.Text())

		for _, phrase := range phrases {
			phraseLower := strings.ToLower(strings.TrimSpace(phrase))
			if phraseLower == "" {
				continue
			}
			if strings.Contains(lineLower, phraseLower) {
				violations = append(violations, Violation{
					Type:       "cliche_phrase",
					Severity:   "warning",
					Details:    fmt.Sprintf("Line %d contains a phrase to avoid: %s", lineNum, phrase),
					LineNumber: lineNum,
				})
				break
			}
		}
	}

	return violations
}
