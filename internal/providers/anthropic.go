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

// AnthropicProvider streams completions from the Anthropic messages API.
type AnthropicProvider struct {
	defaultModel string
	apiKey       string
	client       *http.Client
}

func NewAnthropicProvider(defaultModel, apiKey string) *AnthropicProvider {
	return &AnthropicProvider{
		defaultModel: defaultModel,
		apiKey:       apiKey,
		client:       &http.Client{Timeout: 5 * time.Minute},
	}
}

func (p *AnthropicProvider) Stream(ctx context.Context, req Request, onChunk func(string) error) error {
	model := req.Model
	if model == "" {
		model = p.defaultModel
	}
	payload, _ := json.Marshal(map[string]any{
		"model":      model,
		"max_tokens": req.MaxTokens,
		"system":     req.System,
		"stream":     true,
		"messages": []map[string]string{
			{"role": "user", "content": req.Prompt},
		},
	})
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.anthropic.com/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("claude build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("x-api-key", p.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("claude stream request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("claude stream error %d: %s", resp.StatusCode, string(body))
	}

	return scanSSE(resp.Body, func(data []byte) error {
		var parsed struct {
			Type  string `json:"type"`
			Delta struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"delta"`
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal(data, &parsed); err != nil {
			return nil
		}
		switch parsed.Type {
		case "content_block_delta":
			if parsed.Delta.Text != "" {
				return onChunk(parsed.Delta.Text)
			}
		case "error":
			return fmt.Errorf("claude stream error: %s", parsed.Error.Message)
		}
		return nil
	})
}
