package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"tonepaper/internal/config"
	"tonepaper/internal/models"
	"tonepaper/internal/parse"
	"tonepaper/internal/providers"
	"tonepaper/internal/storage"
)

type Server struct {
	cfg       config.Config
	fetcher   *parse.Fetcher
	providers *providers.Manager
	audit     *storage.TranslationRepo
}

func NewServer(cfg config.Config) *Server {
	s := &Server{
		cfg:       cfg,
		fetcher:   parse.NewFetcher(time.Duration(cfg.FetchTimeoutSecs) * time.Second),
		providers: providers.NewManager(cfg),
	}
	if cfg.PostgresURL != "" {
		db, err := storage.NewDB(context.Background(), cfg.PostgresURL)
		if err != nil {
			panic(err)
		}
		s.audit = storage.NewTranslationRepo(db)
	}
	return s
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/api/parse", s.handleParse)
	mux.HandleFunc("/api/translate", s.handleTranslate)
	mux.HandleFunc("/api/providers", s.handleProviders)
	return withCORS(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

type parseRequest struct {
	URL      string `json:"url"`
	File     string `json:"file"` // base64-encoded document bytes
	Filename string `json:"filename"`
}

type parseResponse struct {
	Title    string           `json:"title"`
	Authors  []string         `json:"authors"`
	Sections []models.Section `json:"sections"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}

	var paper *models.Paper
	var err error
	switch {
	case strings.TrimSpace(req.URL) != "":
		paper, err = s.fetcher.Fetch(r.Context(), strings.TrimSpace(req.URL))
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
	case req.File != "":
		paper, err = parseUpload(req.File, req.Filename)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
	default:
		writeErr(w, http.StatusBadRequest, fmt.Errorf("url or file is required"))
		return
	}

	resp := parseResponse{
		Title:    paper.Title,
		Authors:  paper.Authors,
		Sections: paper.AllSections(),
	}
	if resp.Authors == nil {
		resp.Authors = []string{}
	}
	if resp.Sections == nil {
		resp.Sections = []models.Section{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseUpload(fileB64, filename string) (*models.Paper, error) {
	data, err := base64.StdEncoding.DecodeString(fileB64)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 file data: %w", err)
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return parse.PDF(data)
	case ".html", ".htm":
		return parse.HTMLString(string(data))
	default:
		return nil, fmt.Errorf("unsupported file format %q, expected .pdf or .html", filepath.Ext(filename))
	}
}

type providerView struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	DefaultModel string `json:"default_model"`
	Free         bool   `json:"free"`
	Available    bool   `json:"available"`
	KeyEnv       string `json:"keyEnv"`
}

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	infos := s.providers.Infos()
	out := make([]providerView, 0, len(infos))
	for _, info := range infos {
		out = append(out, providerView{
			Name:         info.Name,
			Description:  info.Description,
			DefaultModel: info.DefaultModel,
			Free:         info.Free,
			Available:    s.providers.Configured(info),
			KeyEnv:       info.KeyEnv(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) logTranslation(rec storage.TranslationCallRecord) {
	if s.audit == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.audit.Insert(ctx, rec); err != nil {
		log.Printf("translation audit insert failed: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    apiCode(code),
			"message": err.Error(),
		},
	})
}

func apiCode(status int) string {
	switch {
	case status >= 500:
		return "TP-API-5000"
	case status == http.StatusNotFound:
		return "TP-API-4004"
	case status == http.StatusMethodNotAllowed:
		return "TP-API-4005"
	default:
		return "TP-API-4001"
	}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
