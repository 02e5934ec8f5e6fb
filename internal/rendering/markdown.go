// Package rendering turns tailored resume markdown into Word documents.
package rendering

import "strings"

// BlockKind identifies how a content line renders inside a section.
type BlockKind string

const (
	BlockHeading   BlockKind = "heading"
	BlockParagraph BlockKind = "paragraph"
	BlockBullet    BlockKind = "bullet"
)

// Block is one renderable unit within a section.
type Block struct {
	Kind BlockKind `json:"kind"`
	Text string    `json:"text"`
}

// Section is a titled group of blocks, one per `##` heading.
type Section struct {
	Title  string  `json:"title"`
	Blocks []Block `json:"blocks"`
}

// ResumeDoc is the parsed structure of a markdown resume.
type ResumeDoc struct {
	Name     string    `json:"name"`
	Contact  string    `json:"contact,omitempty"`
	Sections []Section `json:"sections"`
}

// ParseResumeMarkdown parses resume markdown into a document structure.
// The first `#` line becomes the name, lines before the first section
// become the contact block joined with " | ", `##` lines open sections,
// `###` and bold-only lines become subheadings, and -/*/• lines become
// bullets. Consecutive plain lines merge into one paragraph.
func ParseResumeMarkdown(markdown string) *ResumeDoc {
	doc := &ResumeDoc{}

	var current *Section
	var contact []string
	var paragraph []string

	flushParagraph := func() {
		if len(paragraph) > 0 && current != nil {
			current.Blocks = append(current.Blocks, Block{
				Kind: BlockParagraph,
				Text: strings.Join(paragraph, " "),
			})
		}
		paragraph = nil
	}
	closeSection := func() {
		flushParagraph()
		if current != nil {
			doc.Sections = append(doc.Sections, *current)
		}
	}

	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case line == "" || line == "---" || line == "***":
			flushParagraph()

		case strings.HasPrefix(line, "### "):
			flushParagraph()
			if current == nil {
				current = &Section{}
			}
			current.Blocks = append(current.Blocks, Block{
				Kind: BlockHeading,
				Text: cleanInline(strings.TrimPrefix(line, "### ")),
			})

		case strings.HasPrefix(line, "## "):
			closeSection()
			current = &Section{Title: cleanInline(strings.TrimPrefix(line, "## "))}

		case strings.HasPrefix(line, "# "):
			title := cleanInline(strings.TrimPrefix(line, "# "))
			if doc.Name == "" && current == nil {
				doc.Name = title
				continue
			}
			closeSection()
			current = &Section{Title: title}

		case isBulletLine(line):
			flushParagraph()
			text := cleanInline(strings.TrimSpace(line[bulletMarkerLen(line):]))
			if text == "" {
				continue
			}
			if current == nil {
				contact = append(contact, text)
				continue
			}
			current.Blocks = append(current.Blocks, Block{Kind: BlockBullet, Text: text})

		case isBoldLine(line) && current != nil:
			flushParagraph()
			current.Blocks = append(current.Blocks, Block{
				Kind: BlockHeading,
				Text: cleanInline(line),
			})

		default:
			if current == nil {
				contact = append(contact, cleanInline(line))
				continue
			}
			paragraph = append(paragraph, cleanInline(line))
		}
	}
	closeSection()

	doc.Contact = strings.Join(contact, " | ")
	return doc
}

func isBulletLine(line string) bool {
	return strings.HasPrefix(line, "- ") ||
		strings.HasPrefix(line, "* ") ||
		strings.HasPrefix(line, "• ")
}

// bulletMarkerLen returns the byte length of the bullet marker plus the
// space after it. The • rune is three bytes.
func bulletMarkerLen(line string) int {
	if strings.HasPrefix(line, "• ") {
		return len("• ")
	}
	return 2
}

func isBoldLine(line string) bool {
	return strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**") && len(line) > 4
}

// cleanInline strips markdown emphasis and code markers the document
// output has no use for.
func cleanInline(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "`", "")
	return strings.TrimSpace(text)
}
