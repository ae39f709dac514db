package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPProvider calls the embedding sidecar contract: POST /embed with
// {"text": ...} returning a bare JSON array of floats.
type HTTPProvider struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPProvider(baseURL string) *HTTPProvider {
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}
	return &HTTPProvider{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type embedRequest struct {
	Text string `json:"text"`
}

func (p *HTTPProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	jsonBody, err := json.Marshal(embedRequest{Text: text})
	if err != nil {
		return nil, &Error{Provider: "http", Err: err}
	}

	endpoint := p.BaseURL + "/embed"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, &Error{Provider: "http", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, &Error{Provider: "http", Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Provider: "http", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Provider: "http", Err: fmt.Errorf("status %d: %s", resp.StatusCode, string(bodyBytes))}
	}

	var values []float32
	if err := json.Unmarshal(bodyBytes, &values); err != nil {
		return nil, &Error{Provider: "http", Err: err}
	}

	return normalizeVector(values), nil
}
