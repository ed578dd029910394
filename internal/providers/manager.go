package providers

import (
	"fmt"
	"os"
	"strings"

	"tonepaper/internal/config"
)

// registry lists the supported providers in probe order.
var registry = []Info{
	{
		Name:         "claude",
		Description:  "Anthropic Claude",
		DefaultModel: "claude-sonnet-4-20250514",
		Free:         false,
		KeyEnvs:      []string{"ANTHROPIC_API_KEY"},
	},
	{
		Name:         "openai",
		Description:  "OpenAI (GPT-4o, etc.)",
		DefaultModel: "gpt-4o",
		Free:         false,
		KeyEnvs:      []string{"OPENAI_API_KEY"},
	},
	{
		Name:         "gemini",
		Description:  "Google Gemini — generous free tier",
		DefaultModel: "gemini-2.0-flash",
		Free:         true,
		KeyEnvs:      []string{"GOOGLE_API_KEY", "GEMINI_API_KEY"},
	},
	{
		Name:         "groq",
		Description:  "Groq — fast inference, free tier (Llama 3.3, Mixtral)",
		DefaultModel: "llama-3.3-70b-versatile",
		Free:         true,
		KeyEnvs:      []string{"GROQ_API_KEY"},
	},
	{
		Name:         "openrouter",
		Description:  "OpenRouter — model aggregator with free options",
		DefaultModel: "meta-llama/llama-3.3-70b-instruct:free",
		Free:         true,
		KeyEnvs:      []string{"OPENROUTER_API_KEY"},
	},
	{
		Name:         "ollama",
		Description:  "Ollama — local models, completely free, no API key",
		DefaultModel: "llama3.1",
		Free:         true,
	},
}

var mockInfo = Info{Name: "mock", DefaultModel: "mock-llm-v1", Free: true}

// Manager resolves provider names to streaming adapters and probes
// environment credentials.
type Manager struct {
	cfg config.Config
}

func NewManager(cfg config.Config) *Manager {
	return &Manager{cfg: cfg}
}

// Infos returns the public registry entries in order.
func (m *Manager) Infos() []Info {
	out := make([]Info, len(registry))
	copy(out, registry)
	return out
}

// Names returns the known provider names for error messages.
func (m *Manager) Names() []string {
	out := make([]string, 0, len(registry))
	for _, info := range registry {
		out = append(out, info.Name)
	}
	return out
}

// Resolve maps a requested provider name to its registry entry. An empty name
// picks the first provider with a configured credential, falling back to the
// configured default. The mock provider resolves but is kept out of the
// public listing.
func (m *Manager) Resolve(name string) (Info, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return m.defaultInfo(), nil
	}
	if name == mockInfo.Name {
		return mockInfo, nil
	}
	for _, info := range registry {
		if info.Name == name {
			return info, nil
		}
	}
	return Info{}, fmt.Errorf("unknown provider %q, available: %s", name, strings.Join(m.Names(), ", "))
}

func (m *Manager) defaultInfo() Info {
	for _, info := range registry {
		if len(info.KeyEnvs) > 0 && resolveKey(info.KeyEnvs) != "" {
			return info
		}
	}
	if name := strings.TrimSpace(m.cfg.DefaultProvider); name != "" {
		for _, info := range registry {
			if info.Name == strings.ToLower(name) {
				return info
			}
		}
	}
	return registry[0]
}

// Configured reports whether the provider can be called right now.
func (m *Manager) Configured(info Info) bool {
	if len(info.KeyEnvs) == 0 {
		return true
	}
	return resolveKey(info.KeyEnvs) != ""
}

// Provider builds the streaming adapter for a registry entry.
func (m *Manager) Provider(info Info) StreamProvider {
	key := resolveKey(info.KeyEnvs)
	switch info.Name {
	case "claude":
		return NewAnthropicProvider(info.DefaultModel, key)
	case "gemini":
		return NewGeminiProvider(info.DefaultModel, key)
	case "openai":
		return NewOpenAICompatProvider(info.Name, "https://api.openai.com/v1", info.DefaultModel, key)
	case "groq":
		return NewOpenAICompatProvider(info.Name, "https://api.groq.com/openai/v1", info.DefaultModel, key)
	case "openrouter":
		return NewOpenAICompatProvider(info.Name, "https://openrouter.ai/api/v1", info.DefaultModel, key)
	case "ollama":
		return NewOpenAICompatProvider(info.Name, strings.TrimRight(m.cfg.OllamaBaseURL, "/")+"/v1", info.DefaultModel, "")
	default:
		return NewMockProvider()
	}
}

func resolveKey(envs []string) string {
	for _, env := range envs {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	return ""
}
