package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jordan/job-search-agent/internal/knowledge"
	"github.com/jordan/job-search-agent/internal/llm"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question over your indexed notes",
	Long: `Answer a question using the most relevant chunks of your indexed
documents as context. Retrieval is semantic when embeddings are
available and falls back to keyword matching otherwise. Sources are
listed under the answer.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

var (
	askKeyword bool
	askAPIKey  string
)

func init() {
	askCmd.Flags().BoolVar(&askKeyword, "keyword", false, "Force keyword retrieval even when embeddings exist")
	askCmd.Flags().StringVar(&askAPIKey, "api-key", "", "LLM API key (defaults to the provider's env var)")

	rootCmd.AddCommand(askCmd)
}

func runAsk(_ *cobra.Command, args []string) error {
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return fmt.Errorf("a question is required")
	}

	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}

	store, err := openStore(&cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()

	client, err := newLLMClient(ctx, &cfg, askAPIKey)
	if err != nil {
		return err
	}
	defer client.Close()

	var retriever knowledge.Retriever = knowledge.NewKeywordRetriever(store)
	if !askKeyword && (cfg.Provider == "" || cfg.Provider == string(llm.ProviderGemini)) {
		if key := resolveAPIKey(&cfg, askAPIKey); key != "" {
			if embedder, err := knowledge.NewGeminiEmbedder(ctx, key); err == nil {
				defer embedder.Close()
				retriever = knowledge.NewVectorRetriever(store, embedder)
			}
		}
	}

	answer, err := knowledge.Ask(ctx, client, retriever, question)
	if err != nil {
		return fmt.Errorf("failed to answer question: %w", err)
	}

	_, _ = fmt.Fprintln(os.Stdout, answer.Text)

	if len(answer.Sources) > 0 {
		_, _ = fmt.Fprintln(os.Stdout, "\nSources:")
		seen := make(map[string]bool)
		for _, src := range answer.Sources {
			if seen[src.Source] {
				continue
			}
			seen[src.Source] = true
			_, _ = fmt.Fprintf(os.Stdout, "  - %s\n", src.Source)
		}
	}

	return nil
}
