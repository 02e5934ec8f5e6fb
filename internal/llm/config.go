// Package llm provides centralized LLM configuration and client abstractions.
// This package supports switching between model tiers and providers.
package llm

import "fmt"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: classification, extraction, short messages
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: parsing, structured output, summaries
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning: resume tailoring, cover letters
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenRouter routes to hosted models through OpenRouter's
	// OpenAI-compatible API
	ProviderOpenRouter Provider = "openrouter"
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// DefaultOpenRouterConfig returns the default OpenRouter configuration.
// The advanced tier reuses the standard model until a stronger one is needed.
func DefaultOpenRouterConfig() *Config {
	return &Config{
		Provider: ProviderOpenRouter,
		Models: map[ModelTier]string{
			TierLite:     "anthropic/claude-3.5-haiku",
			TierStandard: "anthropic/claude-3.5-sonnet",
			TierAdvanced: "anthropic/claude-3.5-sonnet",
		},
	}
}

// ConfigForProvider returns the default configuration for a named provider.
// Unknown names are rejected so config file typos surface early.
func ConfigForProvider(name string) (*Config, error) {
	switch Provider(name) {
	case ProviderGemini, "":
		return DefaultGeminiConfig(), nil
	case ProviderOpenRouter:
		return DefaultOpenRouterConfig(), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", name)
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider: c.Provider,
		Models:   make(map[ModelTier]string),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
