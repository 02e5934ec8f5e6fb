package knowledge

import (
	"context"
	"fmt"
	"log"

	"github.com/jordan/job-search-agent/internal/db"
)

// embedBatchSize caps how many chunks go to the embedding API per call
const embedBatchSize = 100

// IndexStats summarizes an indexing run.
type IndexStats struct {
	Documents int `json:"documents"`
	Chunks    int `json:"chunks"`
	Embedded  int `json:"embedded"`
}

// Indexer loads, chunks, embeds and stores knowledge documents. A nil
// embedder indexes text-only; keyword retrieval still works.
type Indexer struct {
	store    *db.Store
	embedder Embedder
	splitter *Splitter
	Verbose  bool
}

// NewIndexer creates an indexer with the default chunking sizes
func NewIndexer(store *db.Store, embedder Embedder) *Indexer {
	return &Indexer{
		store:    store,
		embedder: embedder,
		splitter: NewSplitter(DefaultChunkSize, DefaultChunkOverlap),
	}
}

// IndexDirectory rebuilds stored chunks from every document under dir.
// Re-indexing a document replaces its previous chunks atomically.
func (ix *Indexer) IndexDirectory(ctx context.Context, dir string) (*IndexStats, error) {
	docs, err := LoadDocuments(dir)
	if err != nil {
		return nil, err
	}

	stats := &IndexStats{}
	for _, doc := range docs {
		chunks := ix.splitter.Split(doc.Content)
		if len(chunks) == 0 {
			continue
		}

		inputs := make([]db.ChunkInput, len(chunks))
		for i, chunk := range chunks {
			inputs[i] = db.ChunkInput{Content: chunk}
		}

		if ix.embedder != nil {
			embedded, err := ix.embedChunks(ctx, chunks)
			if err != nil {
				return nil, fmt.Errorf("failed to embed %s: %w", doc.Source, err)
			}
			for i := range inputs {
				inputs[i].Embedding = embedded[i]
			}
			stats.Embedded += len(embedded)
		}

		if err := ix.store.ReplaceChunks(ctx, doc.Source, inputs); err != nil {
			return nil, err
		}

		stats.Documents++
		stats.Chunks += len(chunks)
		if ix.Verbose {
			log.Printf("[KNOWLEDGE] indexed %s (%d chunks)", doc.Source, len(chunks))
		}
	}

	return stats, nil
}

func (ix *Indexer) embedChunks(ctx context.Context, chunks []string) ([][]float32, error) {
	var all [][]float32
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch, err := ix.embedder.EmbedBatch(ctx, chunks[start:end])
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
	}

	if len(all) != len(chunks) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(chunks), len(all))
	}
	return all, nil
}
