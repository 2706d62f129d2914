package factory

import (
	"fmt"
	"log"
	"strings"

	"campus-assist-be/pkg/llm"
	"campus-assist-be/pkg/llm/chain"
	"campus-assist-be/pkg/llm/gemini"
	"campus-assist-be/pkg/llm/ollama"
	"campus-assist-be/pkg/llm/openaicompat"
)

// BackendConfig carries the credentials and endpoints the adapters need.
// Values come from the application config, never from ambient globals, so
// tests can inject fakes.
type BackendConfig struct {
	GeminiApiKey       string
	HuggingFaceApiKey  string
	HuggingFaceBaseURL string
	HuggingFaceModel   string
	OllamaBaseURL      string
	OllamaModel        string
}

func newProvider(providerType string, cfg BackendConfig) (llm.StreamProvider, error) {
	switch providerType {
	case "gemini":
		return gemini.NewGeminiProvider(cfg.GeminiApiKey), nil
	case "huggingface":
		return openaicompat.NewProvider("huggingface", cfg.HuggingFaceApiKey, cfg.HuggingFaceBaseURL, cfg.HuggingFaceModel), nil
	case "ollama":
		return ollama.NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaModel), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}

// NewChain builds the generation backend chain from a comma-separated
// priority list, e.g. "gemini,huggingface,ollama".
func NewChain(priorityList string, cfg BackendConfig, logger *log.Logger) (*chain.Chain, error) {
	var providers []llm.StreamProvider
	for _, name := range strings.Split(priorityList, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		p, err := newProvider(name, cfg)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	if len(providers) == 0 {
		return nil, fmt.Errorf("no generation backends configured")
	}
	return chain.New(logger, providers...), nil
}
