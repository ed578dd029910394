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

// GeminiProvider streams completions from the Google Generative Language API.
type GeminiProvider struct {
	defaultModel string
	apiKey       string
	client       *http.Client
}

func NewGeminiProvider(defaultModel, apiKey string) *GeminiProvider {
	return &GeminiProvider{
		defaultModel: defaultModel,
		apiKey:       apiKey,
		client:       &http.Client{Timeout: 5 * time.Minute},
	}
}

func (p *GeminiProvider) Stream(ctx context.Context, req Request, onChunk func(string) error) error {
	model := req.Model
	if model == "" {
		model = p.defaultModel
	}
	payload, _ := json.Marshal(map[string]any{
		"contents": []map[string]any{
			{"role": "user", "parts": []map[string]string{{"text": req.Prompt}}},
		},
		"systemInstruction": map[string]any{
			"parts": []map[string]string{{"text": req.System}},
		},
		"generationConfig": map[string]any{
			"maxOutputTokens": req.MaxTokens,
		},
	})
	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:streamGenerateContent?alt=sse", model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("gemini build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("gemini stream request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("gemini stream error %d: %s", resp.StatusCode, string(body))
	}

	return scanSSE(resp.Body, func(data []byte) error {
		var parsed struct {
			Candidates []struct {
				Content struct {
					Parts []struct {
						Text string `json:"text"`
					} `json:"parts"`
				} `json:"content"`
			} `json:"candidates"`
		}
		if err := json.Unmarshal(data, &parsed); err != nil {
			return nil
		}
		for _, c := range parsed.Candidates {
			for _, part := range c.Content.Parts {
				if part.Text != "" {
					if err := onChunk(part.Text); err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
}
