// Package tailoring rewrites a base resume against a parsed job profile
// and scores how well resume content matches the role.
package tailoring

import "strings"

// Section is one `#`-headed block of a markdown resume. The preamble before
// the first heading becomes an untitled section with Level 0.
type Section struct {
	Title   string   // heading text without markers, empty for the preamble
	Level   int      // heading marker count, 0 for the preamble
	Heading string   // raw heading line
	Lines   []string // body lines, verbatim
}

// Body returns the section's body text.
func (s *Section) Body() string {
	return strings.Join(s.Lines, "\n")
}

// SplitSections splits a markdown resume on #-prefixed heading lines.
// JoinSections reverses it exactly.
func SplitSections(markdown string) []Section {
	if markdown == "" {
		return nil
	}

	var sections []Section
	var current Section

	flush := func() {
		if current.Heading == "" && len(current.Lines) == 0 {
			return
		}
		sections = append(sections, current)
	}

	for _, line := range strings.Split(markdown, "\n") {
		if strings.HasPrefix(line, "#") {
			flush()
			level := 0
			for level < len(line) && line[level] == '#' {
				level++
			}
			current = Section{
				Title:   strings.Trim(line[level:], "# "),
				Level:   level,
				Heading: line,
			}
			continue
		}
		current.Lines = append(current.Lines, line)
	}
	flush()

	return sections
}

// JoinSections reassembles sections into the original markdown.
func JoinSections(sections []Section) string {
	var lines []string
	for _, section := range sections {
		if section.Heading != "" {
			lines = append(lines, section.Heading)
		}
		lines = append(lines, section.Lines...)
	}
	return strings.Join(lines, "\n")
}
