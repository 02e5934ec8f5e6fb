package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
}

func TestDefaultOpenRouterConfig(t *testing.T) {
	config := DefaultOpenRouterConfig()

	assert.Equal(t, ProviderOpenRouter, config.Provider)
	assert.Equal(t, "anthropic/claude-3.5-haiku", config.GetModel(TierLite))
	assert.Equal(t, "anthropic/claude-3.5-sonnet", config.GetModel(TierStandard))
	// Advanced tier reuses the standard model
	assert.Equal(t, config.GetModel(TierStandard), config.GetModel(TierAdvanced))
}

func TestConfigForProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		want     Provider
		wantErr  bool
	}{
		{name: "gemini", provider: "gemini", want: ProviderGemini},
		{name: "openrouter", provider: "openrouter", want: ProviderOpenRouter},
		{name: "empty defaults to gemini", provider: "", want: ProviderGemini},
		{name: "unknown provider", provider: "mystery", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := ConfigForProvider(tt.provider)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, config)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, config.Provider)
		})
	}
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite: "fallback-model",
		},
	}

	// Unknown tier should fallback to TierStandard, then TierLite
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{},
	}

	// Empty config should return empty string
	assert.Equal(t, "", config.GetModel(TierAdvanced))
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	newConfig := config.WithModel(TierAdvanced, "custom-model")

	// Original should be unchanged
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))

	// New config should have custom model
	assert.Equal(t, "custom-model", newConfig.GetModel(TierAdvanced))

	// Other tiers should be copied
	assert.Equal(t, "gemini-2.5-flash-lite", newConfig.GetModel(TierLite))
}

func TestModelTierConstants(t *testing.T) {
	assert.Equal(t, ModelTier("lite"), TierLite)
	assert.Equal(t, ModelTier("standard"), TierStandard)
	assert.Equal(t, ModelTier("advanced"), TierAdvanced)
}

func TestProviderConstants(t *testing.T) {
	assert.Equal(t, Provider("gemini"), ProviderGemini)
	assert.Equal(t, Provider("openrouter"), ProviderOpenRouter)
}
