package providers

import "context"

// Request is the uniform input every provider adapter maps onto its own wire
// format.
type Request struct {
	System    string
	Prompt    string
	Model     string // empty means the provider default
	MaxTokens int
}

// StreamProvider is the capability every LLM backend implements: run one
// streaming completion, invoking onChunk for each incremental text fragment.
// Returning an error from onChunk aborts the stream.
type StreamProvider interface {
	Stream(ctx context.Context, req Request, onChunk func(text string) error) error
}

// Info describes a registry entry. KeyEnvs lists the environment variables
// probed for a credential, in order; empty means no key is needed.
type Info struct {
	Name         string
	Description  string
	DefaultModel string
	Free         bool
	KeyEnvs      []string
}

// KeyEnv returns the primary credential variable name, or "" for keyless
// providers.
func (i Info) KeyEnv() string {
	if len(i.KeyEnvs) == 0 {
		return ""
	}
	return i.KeyEnvs[0]
}
