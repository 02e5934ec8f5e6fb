package knowledge

import (
	"context"
	"fmt"
	"strings"

	"github.com/jordan/job-search-agent/internal/llm"
	"github.com/jordan/job-search-agent/internal/prompts"
)

// Answer is a grounded response with the chunks that informed it.
type Answer struct {
	Text    string        `json:"text"`
	Sources []ScoredChunk `json:"sources"`
}

// Ask answers a question from the indexed documents. The top matching
// chunks become the prompt context.
func Ask(ctx context.Context, client llm.Client, retriever Retriever, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("question is required")
	}

	chunks, err := retriever.Retrieve(ctx, question, DefaultTopK)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve context: %w", err)
	}

	contextText := "(no matching documents found)"
	if len(chunks) > 0 {
		parts := make([]string, len(chunks))
		for i, chunk := range chunks {
			parts[i] = chunk.Content
		}
		contextText = strings.Join(parts, "\n\n")
	}

	prompt := prompts.Format(prompts.MustGet("knowledge.json", "career-advisor"), map[string]string{
		"Context":  contextText,
		"Question": question,
	})

	text, err := client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	return &Answer{Text: strings.TrimSpace(text), Sources: chunks}, nil
}
