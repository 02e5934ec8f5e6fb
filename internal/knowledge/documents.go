// Package knowledge indexes personal career documents (resume, LinkedIn
// profile, target roles, notes) and answers questions over them.
package knowledge

import (
	"encoding/csv"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Document is one source file loaded for indexing.
type Document struct {
	Source  string `json:"source"`
	Content string `json:"content"`
}

// LoadDocuments reads every .md, .txt and .csv file under dir, recursing
// into subdirectories. Markdown and text files load whole; CSV files are
// rendered row by row as "header: value" lines so spreadsheets of target
// companies stay readable after chunking.
func LoadDocuments(dir string) ([]Document, error) {
	var docs []Document

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		var content string
		switch strings.ToLower(filepath.Ext(path)) {
		case ".md", ".txt":
			b, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			content = string(b)
		case ".csv":
			rendered, err := renderCSV(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			content = rendered
		default:
			return nil
		}

		content = strings.TrimSpace(content)
		if content == "" {
			return nil
		}

		source, err := filepath.Rel(dir, path)
		if err != nil {
			source = path
		}
		docs = append(docs, Document{Source: filepath.ToSlash(source), Content: content})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Source < docs[j].Source })
	return docs, nil
}

// renderCSV turns each data row into a block of "header: value" lines,
// one blank line between rows.
func renderCSV(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return "", err
	}
	if len(records) < 2 {
		return "", nil
	}

	header := records[0]
	var blocks []string
	for _, row := range records[1:] {
		var lines []string
		for i, value := range row {
			value = strings.TrimSpace(value)
			if value == "" || i >= len(header) {
				continue
			}
			lines = append(lines, strings.TrimSpace(header[i])+": "+value)
		}
		if len(lines) > 0 {
			blocks = append(blocks, strings.Join(lines, "\n"))
		}
	}
	return strings.Join(blocks, "\n\n"), nil
}
