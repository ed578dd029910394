package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"tonepaper/internal/models"
	"tonepaper/internal/prompt"
	"tonepaper/internal/providers"
	"tonepaper/internal/storage"
	"tonepaper/internal/util"
)

type translateRequest struct {
	Heading  string `json:"heading"`
	Content  string `json:"content"`
	Tone     int    `json:"tone"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// handleTranslate rewrites one section and streams the output as SSE. All
// validation happens before the stream opens; once streaming has begun,
// failures surface as a single error event followed by close.
func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("content is required"))
		return
	}

	info, err := s.providers.Resolve(req.Provider)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	if !s.providers.Configured(info) {
		writeErr(w, http.StatusBadRequest, fmt.Errorf(
			"provider %q requires the %s environment variable, but it is not set",
			info.Name, strings.Join(info.KeyEnvs, " or ")))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeErr(w, http.StatusInternalServerError, fmt.Errorf("streaming unsupported"))
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	tone := models.ToneLevel(req.Tone).Clamp()
	preq := providers.Request{
		System:    prompt.SystemPrompt(tone),
		Prompt:    prompt.SectionPrompt(req.Heading, req.Content),
		Model:     req.Model,
		MaxTokens: s.cfg.MaxTokens,
	}

	start := time.Now()
	outChars := 0
	streamErr := s.providers.Provider(info).Stream(r.Context(), preq, func(text string) error {
		outChars += len(text)
		return writeSSE(w, flusher, "chunk", map[string]any{"text": text})
	})

	rec := storage.TranslationCallRecord{
		CallID:      uuid.NewString(),
		Provider:    info.Name,
		Model:       req.Model,
		Tone:        int(tone),
		Heading:     util.Snippet(req.Heading, 200),
		InputChars:  len(req.Content),
		OutputChars: outChars,
		Status:      "ok",
		DurationMS:  time.Since(start).Milliseconds(),
	}
	if rec.Model == "" {
		rec.Model = info.DefaultModel
	}

	if streamErr != nil {
		rec.Status = "error"
		rec.ErrorType = string(providers.ClassifyError(streamErr))
		_ = writeSSE(w, flusher, "error", map[string]any{
			"message": providers.FriendlyError(info, streamErr),
		})
	} else {
		_ = writeSSE(w, flusher, "done", map[string]any{})
	}
	s.logTranslation(rec)
}

func writeSSE(w http.ResponseWriter, flusher http.Flusher, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
