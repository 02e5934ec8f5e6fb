package knowledge

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jordan/job-search-agent/internal/db"
)

// DefaultTopK is how many chunks back an answer
const DefaultTopK = 5

// ScoredChunk pairs a stored chunk with its retrieval score.
type ScoredChunk struct {
	db.KnowledgeChunk
	Score float64 `json:"score"`
}

// Retriever finds the chunks most relevant to a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]ScoredChunk, error)
}

// VectorRetriever ranks chunks by cosine similarity against a query
// embedding. Chunks stored without an embedding are skipped.
type VectorRetriever struct {
	store    *db.Store
	embedder Embedder
}

// NewVectorRetriever creates a retriever over the chunk store
func NewVectorRetriever(store *db.Store, embedder Embedder) *VectorRetriever {
	return &VectorRetriever{store: store, embedder: embedder}
}

// Retrieve returns the top k chunks by similarity to the query
func (r *VectorRetriever) Retrieve(ctx context.Context, query string, k int) ([]ScoredChunk, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	queryVec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	chunks, err := r.store.ListChunks(ctx)
	if err != nil {
		return nil, err
	}

	var scored []ScoredChunk
	for _, chunk := range chunks {
		if len(chunk.Embedding) != len(queryVec) {
			continue
		}
		scored = append(scored, ScoredChunk{
			KnowledgeChunk: chunk,
			Score:          CosineSimilarity(queryVec, chunk.Embedding),
		})
	}

	sortByScore(scored)
	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

// KeywordRetriever ranks chunks by how many query words they contain.
// It backs the knowledge base when no embeddings are stored.
type KeywordRetriever struct {
	store *db.Store
}

// NewKeywordRetriever creates a keyword retriever over the chunk store
func NewKeywordRetriever(store *db.Store) *KeywordRetriever {
	return &KeywordRetriever{store: store}
}

// Retrieve returns the top k chunks by query word overlap
func (r *KeywordRetriever) Retrieve(ctx context.Context, query string, k int) ([]ScoredChunk, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	terms := queryTerms(query)
	if len(terms) == 0 {
		return nil, nil
	}

	candidates, err := r.store.SearchChunksLike(ctx, terms, db.MaxListLimit)
	if err != nil {
		return nil, err
	}

	var scored []ScoredChunk
	for _, chunk := range candidates {
		content := strings.ToLower(chunk.Content)
		matches := 0
		for _, term := range terms {
			if strings.Contains(content, term) {
				matches++
			}
		}
		if matches == 0 {
			continue
		}
		scored = append(scored, ScoredChunk{KnowledgeChunk: chunk, Score: float64(matches)})
	}

	sortByScore(scored)
	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

// queryTerms lowercases and splits the query, dropping punctuation and
// single-character words.
func queryTerms(query string) []string {
	var terms []string
	for _, word := range strings.Fields(strings.ToLower(query)) {
		word = strings.Trim(word, ".,;:!?\"'()")
		if len(word) < 2 {
			continue
		}
		terms = append(terms, word)
	}
	return terms
}

func sortByScore(scored []ScoredChunk) {
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
}

// CosineSimilarity returns the cosine similarity of two vectors, or 0
// when lengths differ or either vector has zero magnitude.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
