package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OpenAICompatProvider streams chat completions from any OpenAI-compatible
// API. It covers OpenAI itself plus Groq, OpenRouter, and a local Ollama
// server, which differ only in base URL and credentials.
type OpenAICompatProvider struct {
	name         string
	baseURL      string
	defaultModel string
	apiKey       string
	client       *http.Client
}

func NewOpenAICompatProvider(name, baseURL, defaultModel, apiKey string) *OpenAICompatProvider {
	return &OpenAICompatProvider{
		name:         name,
		baseURL:      baseURL,
		defaultModel: defaultModel,
		apiKey:       apiKey,
		client:       &http.Client{Timeout: 5 * time.Minute},
	}
}

func (p *OpenAICompatProvider) Stream(ctx context.Context, req Request, onChunk func(string) error) error {
	model := req.Model
	if model == "" {
		model = p.defaultModel
	}
	payload, _ := json.Marshal(map[string]any{
		"model":      model,
		"max_tokens": req.MaxTokens,
		"stream":     true,
		"messages": []map[string]string{
			{"role": "system", "content": req.System},
			{"role": "user", "content": req.Prompt},
		},
	})
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s build request: %w", p.name, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s stream request failed: %w", p.name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s stream error %d: %s", p.name, resp.StatusCode, string(body))
	}

	return scanSSE(resp.Body, func(data []byte) error {
		var parsed struct {
			Choices []struct {
				Delta struct {
					Content string `json:"content"`
				} `json:"delta"`
			} `json:"choices"`
		}
		if err := json.Unmarshal(data, &parsed); err != nil {
			// Keep-alive comments and unknown frames are not fatal.
			return nil
		}
		if len(parsed.Choices) > 0 && parsed.Choices[0].Delta.Content != "" {
			return onChunk(parsed.Choices[0].Delta.Content)
		}
		return nil
	})
}
