package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// KnowledgeChunk is a stored document fragment with an optional embedding
type KnowledgeChunk struct {
	ID         int64     `json:"id"`
	Source     string    `json:"source"`
	ChunkIndex int       `json:"chunk_index"`
	Content    string    `json:"content"`
	Embedding  []float32 `json:"embedding,omitempty"`
	CreatedAt  string    `json:"created_at"`
}

// ChunkInput holds one chunk for ReplaceChunks
type ChunkInput struct {
	Content   string
	Embedding []float32
}

// ReplaceChunks atomically swaps all chunks for a source document
func (s *Store) ReplaceChunks(ctx context.Context, source string, chunks []ChunkInput) error {
	if source == "" {
		return fmt.Errorf("source is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM knowledge_chunks WHERE source = ?", source); err != nil {
		return fmt.Errorf("failed to clear chunks: %w", err)
	}

	ts := now()
	for i, chunk := range chunks {
		embedding, err := marshalEmbedding(chunk.Embedding)
		if err != nil {
			return fmt.Errorf("failed to marshal embedding: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO knowledge_chunks (source, chunk_index, content, embedding, created_at)
			 VALUES (?, ?, ?, ?, ?)`,
			source, i, chunk.Content, embedding, ts); err != nil {
			return fmt.Errorf("failed to insert chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit chunks: %w", err)
	}
	return nil
}

// ListChunks returns every stored chunk ordered by source and position
func (s *Store) ListChunks(ctx context.Context) ([]KnowledgeChunk, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, chunk_index, content, embedding, created_at
		 FROM knowledge_chunks ORDER BY source, chunk_index`)
	if err != nil {
		return nil, fmt.Errorf("failed to list chunks: %w", err)
	}
	defer rows.Close()

	return collectChunks(rows)
}

// SearchChunksLike returns chunks containing any of the given terms.
// Scoring happens in the retriever; this only narrows the candidate set.
func (s *Store) SearchChunksLike(ctx context.Context, terms []string, limit int) ([]KnowledgeChunk, error) {
	if len(terms) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var clauses []string
	var args []interface{}
	for _, term := range terms {
		clauses = append(clauses, "content LIKE ?")
		args = append(args, "%"+term+"%")
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, chunk_index, content, embedding, created_at
		 FROM knowledge_chunks
		 WHERE `+strings.Join(clauses, " OR ")+`
		 ORDER BY source, chunk_index LIMIT ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search chunks: %w", err)
	}
	defer rows.Close()

	return collectChunks(rows)
}

// CountChunks returns the total number of stored chunks
func (s *Store) CountChunks(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM knowledge_chunks").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return count, nil
}

// SourceCount pairs a source document with its chunk count
type SourceCount struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// ChunkSources returns per-source chunk counts, alphabetical
func (s *Store) ChunkSources(ctx context.Context) ([]SourceCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, COUNT(*) FROM knowledge_chunks GROUP BY source ORDER BY source`)
	if err != nil {
		return nil, fmt.Errorf("failed to count chunk sources: %w", err)
	}
	defer rows.Close()

	var counts []SourceCount
	for rows.Next() {
		var sc SourceCount
		if err := rows.Scan(&sc.Source, &sc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan source count: %w", err)
		}
		counts = append(counts, sc)
	}
	return counts, rows.Err()
}

func collectChunks(rows *sql.Rows) ([]KnowledgeChunk, error) {
	var chunks []KnowledgeChunk
	for rows.Next() {
		var c KnowledgeChunk
		var embedding sql.NullString
		if err := rows.Scan(&c.ID, &c.Source, &c.ChunkIndex, &c.Content, &embedding, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		if embedding.Valid && embedding.String != "" {
			if err := json.Unmarshal([]byte(embedding.String), &c.Embedding); err != nil {
				return nil, fmt.Errorf("failed to decode embedding: %w", err)
			}
		}
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

func marshalEmbedding(embedding []float32) (interface{}, error) {
	if len(embedding) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(embedding)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
