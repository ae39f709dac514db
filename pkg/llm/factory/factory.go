package factory

import (
	"rag-assistant-be/internal/config"
	"rag-assistant-be/pkg/llm"
	"rag-assistant-be/pkg/llm/gemini"
	"rag-assistant-be/pkg/llm/metaai"
	"rag-assistant-be/pkg/llm/ollama"
)

// NewSwitcher builds every configured backend and wraps them in a Switcher
// selecting cfg.Ai.LLMProvider as the default.
func NewSwitcher(cfg *config.Config) (*llm.Switcher, error) {
	backends := map[llm.BackendName]llm.Provider{
		llm.BackendGemini: gemini.NewProvider(cfg.Keys.GeminiAPIKey, cfg.Ai.GeminiModel),
		llm.BackendOllama: ollama.NewProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaLLMModel),
		llm.BackendMetaAI: metaai.NewProvider(cfg.Ai.MetaAIURL),
	}

	return llm.NewSwitcher(backends, llm.BackendName(cfg.Ai.LLMProvider))
}
