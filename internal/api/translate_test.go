package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type sseEvent struct {
	Event string
	Data  map[string]any
}

func parseSSE(t *testing.T, body string) []sseEvent {
	t.Helper()
	var events []sseEvent
	for _, frame := range strings.Split(body, "\n\n") {
		frame = strings.TrimSpace(frame)
		if frame == "" {
			continue
		}
		var ev sseEvent
		for _, line := range strings.Split(frame, "\n") {
			switch {
			case strings.HasPrefix(line, "event: "):
				ev.Event = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev.Data))
			}
		}
		events = append(events, ev)
	}
	return events
}

func TestTranslateMissingContent(t *testing.T) {
	h := testServer(t)
	rec := postJSON(t, h, "/api/translate", map[string]any{"heading": "Intro", "tone": 3})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, errMessage(t, rec), "content is required")
}

func TestTranslateUnknownProviderListsNames(t *testing.T) {
	h := testServer(t)
	rec := postJSON(t, h, "/api/translate", map[string]any{
		"heading": "Intro", "content": "Some text.", "tone": 2, "provider": "nope",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	msg := errMessage(t, rec)
	for _, name := range []string{"claude", "openai", "gemini", "groq", "openrouter", "ollama"} {
		require.Contains(t, msg, name)
	}
}

func TestTranslateMissingCredential(t *testing.T) {
	h := testServer(t)
	rec := postJSON(t, h, "/api/translate", map[string]any{
		"heading": "Intro", "content": "Some text.", "tone": 3, "provider": "claude",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, errMessage(t, rec), "ANTHROPIC_API_KEY")
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestTranslateStreamEndToEnd(t *testing.T) {
	h := testServer(t)
	rec := postJSON(t, h, "/api/translate", map[string]any{
		"heading":  "Intro",
		"content":  "The model achieves 95% accuracy.",
		"tone":     1,
		"provider": "mock",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	events := parseSSE(t, rec.Body.String())
	require.NotEmpty(t, events)
	require.Equal(t, "done", events[len(events)-1].Event)

	var text strings.Builder
	for _, ev := range events[:len(events)-1] {
		require.Equal(t, "chunk", ev.Event)
		chunk, ok := ev.Data["text"].(string)
		require.True(t, ok, "chunk event must carry text")
		text.WriteString(chunk)
	}
	require.NotEmpty(t, text.String())
	require.Contains(t, text.String(), "95%")
}
