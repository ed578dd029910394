package parse

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"tonepaper/internal/models"
)

// Matches both arxiv.org/abs/<id> and arxiv.org/pdf/<id> forms.
var arxivIDRe = regexp.MustCompile(`(?i)arxiv\.org/(?:abs|pdf)/([\w.\-]+)`)

// Swapped out by tests.
var arxivBase = "https://arxiv.org"

// ArxivID extracts an arXiv identifier from an abstract or PDF URL, or
// returns "" when the URL is not an arXiv paper link.
func ArxivID(url string) string {
	m := arxivIDRe.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return strings.TrimSuffix(m[1], ".pdf")
}

// Fetcher downloads remote papers and dispatches them to the right parser.
type Fetcher struct {
	client *http.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch retrieves and parses the paper at url. arXiv links are resolved to
// the HTML rendering first since it segments much cleaner, falling back to
// the PDF when no HTML rendering exists.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*models.Paper, error) {
	if id := ArxivID(url); id != "" {
		if paper, err := f.fetchArxivHTML(ctx, id); err == nil {
			paper.SourceURL = url
			return paper, nil
		}
		paper, err := f.fetchPDF(ctx, arxivBase+"/pdf/"+id)
		if err != nil {
			return nil, err
		}
		paper.SourceURL = url
		return paper, nil
	}

	body, contentType, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var paper *models.Paper
	if strings.Contains(contentType, "pdf") {
		paper, err = PDF(body)
	} else {
		paper, err = HTMLString(string(body))
	}
	if err != nil {
		return nil, err
	}
	paper.SourceURL = url
	return paper, nil
}

func (f *Fetcher) fetchArxivHTML(ctx context.Context, id string) (*models.Paper, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, arxivBase+"/html/"+id, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch arxiv html: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch arxiv html: status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		return nil, fmt.Errorf("fetch arxiv html: unexpected content type %q", ct)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read arxiv html: %w", err)
	}
	return HTMLString(string(body))
}

func (f *Fetcher) fetchPDF(ctx context.Context, url string) (*models.Paper, error) {
	body, _, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}
	return PDF(body)
}

func (f *Fetcher) get(ctx context.Context, url string) (body []byte, contentType string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request for %s: %w", url, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response from %s: %w", url, err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}
