package knowledge

import (
	"strings"
	"unicode/utf8"
)

// Chunking defaults, sized for embedding and prompt context
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// Separator preference: paragraphs, then lines, then words, then runes
var defaultSeparators = []string{"\n\n", "\n", " ", ""}

// Splitter breaks text into overlapping chunks. Sizes count runes.
type Splitter struct {
	ChunkSize    int
	ChunkOverlap int
	separators   []string
}

// NewSplitter returns a splitter with the given chunk size and overlap.
// Invalid values fall back to sane ones.
func NewSplitter(chunkSize, chunkOverlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize / 5
	}
	return &Splitter{ChunkSize: chunkSize, ChunkOverlap: chunkOverlap, separators: defaultSeparators}
}

// SplitText chunks text with the default sizes.
func SplitText(text string) []string {
	return NewSplitter(DefaultChunkSize, DefaultChunkOverlap).Split(text)
}

// Split chunks text, preferring to break at the coarsest separator that
// keeps chunks under ChunkSize.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return s.split(text, s.separators)
}

func (s *Splitter) split(text string, separators []string) []string {
	// First separator that occurs in the text wins; the rest are kept
	// for recursing into oversized pieces.
	separator := separators[len(separators)-1]
	var remaining []string
	for i, sep := range separators {
		if sep == "" || strings.Contains(text, sep) {
			separator = sep
			remaining = separators[i+1:]
			break
		}
	}

	var splits []string
	if separator == "" {
		for _, r := range text {
			splits = append(splits, string(r))
		}
	} else {
		for _, part := range strings.Split(text, separator) {
			if part != "" {
				splits = append(splits, part)
			}
		}
	}

	var chunks []string
	var pending []string
	for _, part := range splits {
		if runeLen(part) < s.ChunkSize {
			pending = append(pending, part)
			continue
		}
		if len(pending) > 0 {
			chunks = append(chunks, s.merge(pending, separator)...)
			pending = nil
		}
		if len(remaining) == 0 {
			chunks = append(chunks, part)
		} else {
			chunks = append(chunks, s.split(part, remaining)...)
		}
	}
	if len(pending) > 0 {
		chunks = append(chunks, s.merge(pending, separator)...)
	}
	return chunks
}

// merge greedily joins splits into chunks up to ChunkSize, carrying
// trailing splits of up to ChunkOverlap runes into the next chunk.
func (s *Splitter) merge(splits []string, separator string) []string {
	sepLen := runeLen(separator)

	var chunks []string
	var current []string
	total := 0
	for _, part := range splits {
		partLen := runeLen(part)
		if len(current) > 0 && total+partLen+sepLen > s.ChunkSize {
			if chunk := joinChunk(current, separator); chunk != "" {
				chunks = append(chunks, chunk)
			}
			for total > s.ChunkOverlap || (total+partLen+sepLen > s.ChunkSize && total > 0) {
				total -= runeLen(current[0])
				if len(current) > 1 {
					total -= sepLen
				}
				current = current[1:]
			}
		}
		if len(current) > 0 {
			total += sepLen
		}
		current = append(current, part)
		total += partLen
	}
	if chunk := joinChunk(current, separator); chunk != "" {
		chunks = append(chunks, chunk)
	}
	return chunks
}

func joinChunk(parts []string, separator string) string {
	return strings.TrimSpace(strings.Join(parts, separator))
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
