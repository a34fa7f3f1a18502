// Package embed provides embedding clients for the memory backends.
package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sandevgo/mnemo/internal/core"
)

// Ollama calls the native Ollama embeddings endpoint.
type Ollama struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

func NewOllama(baseURL, apiKey, model string) *Ollama {
	return &Ollama{
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
	}
}

func (o *Ollama) Embed(ctx context.Context, text string) ([]float32, error) {
	payload := map[string]string{
		"model":  o.model,
		"prompt": text,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/embeddings", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if o.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+o.apiKey)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, core.NewTransientError("embed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, core.NewTransientError("embed", err)
	}

	if resp.StatusCode != http.StatusOK {
		statusErr := fmt.Errorf("http %d: %s", resp.StatusCode, string(body))
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, core.NewTransientError("embed", statusErr)
		}
		return nil, core.NewFatalError("embed", statusErr)
	}

	var result struct {
		Embedding []float32 `json:"embedding"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, core.NewTransientError("embed", err)
	}
	if len(result.Embedding) == 0 {
		return nil, core.NewTransientError("embed", fmt.Errorf("backend returned empty embedding"))
	}
	return result.Embedding, nil
}
