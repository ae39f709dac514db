package metaai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rag-assistant-be/pkg/llm"
)

// Provider proxies completions through the Meta AI sidecar
// (POST /metaai {"prompt": ...} -> {"response": ...}).
type Provider struct {
	BaseURL string
	Client  *http.Client
}

var _ llm.Provider = &Provider{}

func NewProvider(baseURL string) *Provider {
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}
	return &Provider{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type metaAIRequest struct {
	Prompt string `json:"prompt"`
}

type metaAIResponse struct {
	Response string `json:"response"`
}

func (m *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	// The sidecar takes a flat prompt, so fold the history into one.
	var sb strings.Builder
	for _, msg := range history {
		if len(history) > 1 {
			sb.WriteString(msg.Role)
			sb.WriteString(": ")
		}
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
	}
	return m.Generate(ctx, strings.TrimRight(sb.String(), "\n"), opts...)
}

func (m *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	payloadBytes, err := json.Marshal(metaAIRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := m.BaseURL + "/metaai"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("metaai request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("metaai error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var metaResp metaAIResponse
	if err := json.Unmarshal(bodyBytes, &metaResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if metaResp.Response == "" {
		return "", fmt.Errorf("metaai returned an empty response")
	}

	return metaResp.Response, nil
}
