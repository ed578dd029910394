package providers

import (
	"fmt"
	"strings"
)

type ErrorType string

const (
	ErrorAuth      ErrorType = "auth"
	ErrorRate      ErrorType = "rate"
	ErrorNotFound  ErrorType = "not_found"
	ErrorTransient ErrorType = "transient"
	ErrorUnknown   ErrorType = "unknown"
)

// ClassifyError buckets a raw provider error by substring matching. This is
// best effort, not a structured taxonomy.
func ClassifyError(err error) ErrorType {
	if err == nil {
		return ""
	}
	e := strings.ToLower(err.Error())
	switch {
	case strings.Contains(e, "unauthorized"), strings.Contains(e, "invalid api key"),
		strings.Contains(e, "api key not valid"), strings.Contains(e, "401"):
		return ErrorAuth
	case strings.Contains(e, "quota"), strings.Contains(e, "rate limit"), strings.Contains(e, "429"):
		return ErrorRate
	case strings.Contains(e, "not found"), strings.Contains(e, "404"):
		return ErrorNotFound
	case strings.Contains(e, "timeout"), strings.Contains(e, "temporarily"),
		strings.Contains(e, "unavailable"), strings.Contains(e, "connection refused"):
		return ErrorTransient
	default:
		return ErrorUnknown
	}
}

// FriendlyError turns a raw provider error into a message naming the likely
// cause and the credential variable involved.
func FriendlyError(info Info, err error) string {
	hint := ""
	if env := info.KeyEnv(); env != "" {
		hint = " (" + strings.Join(info.KeyEnvs, " or ") + ")"
	}
	switch ClassifyError(err) {
	case ErrorAuth:
		return fmt.Sprintf("Your %s API key%s is invalid. Please double-check the key and try again.", info.Name, hint)
	case ErrorRate:
		return fmt.Sprintf("Rate limit or quota exceeded for %s. Please wait a moment and try again.", info.Name)
	case ErrorNotFound:
		return fmt.Sprintf("The requested model was not found on %s. Please check the model name or leave it blank for the default.", info.Name)
	case ErrorTransient:
		if info.Name == "ollama" {
			return "Cannot reach the local Ollama server. Make sure it is running and try again."
		}
		return fmt.Sprintf("%s is temporarily unavailable. Please try again shortly.", info.Name)
	default:
		return fmt.Sprintf("Error from %s: %v", info.Name, err)
	}
}
