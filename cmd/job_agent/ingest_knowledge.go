package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jordan/job-search-agent/internal/knowledge"
	"github.com/jordan/job-search-agent/internal/llm"
	"github.com/spf13/cobra"
)

var ingestKnowledgeCmd = &cobra.Command{
	Use:   "ingest-knowledge",
	Short: "Index your notes into the knowledge base",
	Long: `Load markdown, text and CSV documents from a directory, split them into
chunks and store them for retrieval by ask. With a Gemini API key the
chunks are also embedded for semantic search; without one, keyword
search still works.`,
	RunE: runIngestKnowledge,
}

var (
	ingestDir     string
	ingestNoEmbed bool
	ingestAPIKey  string
)

func init() {
	ingestKnowledgeCmd.Flags().StringVarP(&ingestDir, "dir", "d", "", "Directory of documents (default from config)")
	ingestKnowledgeCmd.Flags().BoolVar(&ingestNoEmbed, "no-embed", false, "Skip embeddings and index for keyword search only")
	ingestKnowledgeCmd.Flags().StringVar(&ingestAPIKey, "api-key", "", "Gemini API key for embeddings (defaults to GEMINI_API_KEY)")

	rootCmd.AddCommand(ingestKnowledgeCmd)
}

func runIngestKnowledge(_ *cobra.Command, _ []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}

	dir := ingestDir
	if dir == "" {
		dir = cfg.DataDir
	}

	store, err := openStore(&cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()

	// Embeddings are Gemini-only; other providers index for keyword search.
	var embedder knowledge.Embedder
	if !ingestNoEmbed && (cfg.Provider == "" || cfg.Provider == string(llm.ProviderGemini)) {
		if key := resolveAPIKey(&cfg, ingestAPIKey); key != "" {
			gemini, err := knowledge.NewGeminiEmbedder(ctx, key)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: embeddings unavailable, indexing for keyword search: %v\n", err)
			} else {
				defer gemini.Close()
				embedder = gemini
			}
		}
	}

	stats, err := knowledge.NewIndexer(store, embedder).IndexDirectory(ctx, dir)
	if err != nil {
		return fmt.Errorf("failed to index %s: %w", dir, err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "✅ Indexed %d document(s) into %d chunk(s)", stats.Documents, stats.Chunks)
	if stats.Embedded > 0 {
		_, _ = fmt.Fprintf(os.Stdout, ", %d embedded", stats.Embedded)
	}
	_, _ = fmt.Fprintln(os.Stdout)

	sources, err := store.ChunkSources(ctx)
	if err != nil {
		return err
	}
	for _, src := range sources {
		_, _ = fmt.Fprintf(os.Stdout, "  %s (%d chunks)\n", src.Source, src.Count)
	}

	return nil
}
