package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"tonepaper/internal/config"
	"tonepaper/internal/models"
)

func testServer(t *testing.T) http.Handler {
	t.Helper()
	for _, env := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GOOGLE_API_KEY", "GEMINI_API_KEY", "GROQ_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(env, "")
	}
	cfg := config.Config{
		APIAddr:          ":0",
		DefaultProvider:  "gemini",
		MaxTokens:        256,
		FetchTimeoutSecs: 5,
		OllamaBaseURL:    "http://localhost:11434",
	}
	return NewServer(cfg).Routes()
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(payload)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Message
}

func TestHealthz(t *testing.T) {
	h := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestParseUploadHTML(t *testing.T) {
	h := testServer(t)
	doc := `<html><head><title>Upload Test</title></head><body><p>Only prose here.</p></body></html>`
	rec := postJSON(t, h, "/api/parse", map[string]string{
		"file":     base64.StdEncoding.EncodeToString([]byte(doc)),
		"filename": "paper.html",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Title    string           `json:"title"`
		Authors  []string         `json:"authors"`
		Sections []models.Section `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Upload Test", resp.Title)
	require.NotNil(t, resp.Authors)
	require.Len(t, resp.Sections, 1)
	require.Equal(t, "Full Paper", resp.Sections[0].Heading)
	require.Equal(t, "Only prose here.", resp.Sections[0].Content)
}

func TestParseMissingInput(t *testing.T) {
	h := testServer(t)
	rec := postJSON(t, h, "/api/parse", map[string]string{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, errMessage(t, rec), "url or file")
}

func TestParseUnsupportedExtension(t *testing.T) {
	h := testServer(t)
	rec := postJSON(t, h, "/api/parse", map[string]string{
		"file":     base64.StdEncoding.EncodeToString([]byte("hello")),
		"filename": "paper.docx",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, errMessage(t, rec), "unsupported file format")
}

func TestParseBadBase64(t *testing.T) {
	h := testServer(t)
	rec := postJSON(t, h, "/api/parse", map[string]string{
		"file":     "not-base64!!!",
		"filename": "paper.html",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProvidersListing(t *testing.T) {
	h := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/providers", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []struct {
		Name         string `json:"name"`
		Description  string `json:"description"`
		DefaultModel string `json:"default_model"`
		Free         bool   `json:"free"`
		Available    bool   `json:"available"`
		KeyEnv       string `json:"keyEnv"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 6)

	byName := map[string]bool{}
	for _, p := range list {
		byName[p.Name] = p.Available
	}
	require.NotContains(t, byName, "mock")
	require.False(t, byName["claude"], "claude must be unavailable without a key")
	require.True(t, byName["ollama"], "ollama needs no key")

	// No credential values anywhere in the response.
	require.NotContains(t, rec.Body.String(), "sk-")
}
