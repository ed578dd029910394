package providers

import (
	"context"
	"strings"
)

// MockProvider streams a deterministic rewrite so the service can run and be
// tested without any credential. The output echoes the section content so
// factual fragments survive the "translation".
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Stream(ctx context.Context, req Request, onChunk func(string) error) error {
	prompt := req.Prompt
	if i := strings.LastIndex(prompt, "\n\n"); i >= 0 {
		prompt = prompt[i+2:]
	}
	chunks := []string{"Okay so basically: "}
	for _, word := range strings.Fields(prompt) {
		chunks = append(chunks, word+" ")
	}
	chunks = append(chunks, "— and honestly, that's the whole vibe.")

	for _, chunk := range chunks {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := onChunk(chunk); err != nil {
			return err
		}
	}
	return nil
}
