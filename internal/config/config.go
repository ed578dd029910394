package config

import (
	"os"
	"strconv"
)

type Config struct {
	APIAddr          string
	DefaultProvider  string
	MaxTokens        int
	FetchTimeoutSecs int
	PostgresURL      string
	OllamaBaseURL    string
}

func Load() Config {
	return Config{
		APIAddr:          getenv("TONEPAPER_API_ADDR", ":8080"),
		DefaultProvider:  getenv("TONEPAPER_DEFAULT_PROVIDER", "gemini"),
		MaxTokens:        getenvInt("TONEPAPER_MAX_TOKENS", 4096),
		FetchTimeoutSecs: getenvInt("TONEPAPER_FETCH_TIMEOUT_SECONDS", 60),
		PostgresURL:      getenv("TONEPAPER_POSTGRES_URL", ""),
		OllamaBaseURL:    getenv("TONEPAPER_OLLAMA_BASE_URL", "http://localhost:11434"),
	}
}

func getenv(k, fallback string) string {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
