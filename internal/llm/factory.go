package llm

import (
	"fmt"

	"go.uber.org/zap"

	"echo-bloom/internal/config"
)

const (
	ProviderHTTP      = "http"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// NewClientFromConfig elige el proveedor de generacion segun LLM_PROVIDER.
// El Embedder puede ser nil cuando el proveedor no ofrece embeddings.
func NewClientFromConfig(cfg *config.Config, logger *zap.Logger) (LLMClient, Embedder, error) {
	switch cfg.LLMProvider {
	case "", ProviderHTTP:
		c := NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMEmbeddingModel, logger)
		return c, c, nil
	case ProviderOpenAI:
		c := NewOpenAIClient(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel, cfg.LLMEmbeddingModel)
		return c, c, nil
	case ProviderAnthropic:
		return NewAnthropicClient(cfg.LLMAPIKey, cfg.LLMModel), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
	}
}
