package parse

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"tonepaper/internal/models"
	"tonepaper/internal/util"
)

// Section headings that commonly appear in research papers, optionally
// number-prefixed. The last pattern catches generic numbered headings.
var headingPatterns = []string{
	`^(?:\d+\.?\s+)?(abstract)$`,
	`^(?:\d+\.?\s+)?(introduction)$`,
	`^(?:\d+\.?\s+)?(related\s+work)$`,
	`^(?:\d+\.?\s+)?(background)$`,
	`^(?:\d+\.?\s+)?(method(?:ology|s)?)$`,
	`^(?:\d+\.?\s+)?(approach)$`,
	`^(?:\d+\.?\s+)?(experiment(?:s|al\s+(?:setup|results))?)$`,
	`^(?:\d+\.?\s+)?(results?)$`,
	`^(?:\d+\.?\s+)?(evaluation)$`,
	`^(?:\d+\.?\s+)?(discussion)$`,
	`^(?:\d+\.?\s+)?(conclusion(?:s)?)$`,
	`^(?:\d+\.?\s+)?(future\s+work)$`,
	`^(?:\d+\.?\s+)?(acknowledge?ments?)$`,
	`^(?:\d+\.?\s+)?(references?)$`,
	`^(?:\d+\.?\s+)?(appendi(?:x|ces))$`,
	`^(\d+\.?\s+\S.{2,60})$`,
}

var headingRes = compileHeadings()

func compileHeadings() []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(headingPatterns))
	for _, p := range headingPatterns {
		out = append(out, regexp.MustCompile(`(?i)`+p))
	}
	return out
}

var numberPrefixRe = regexp.MustCompile(`^\d+(?:\.\d+)*\.?\s*`)

func isHeadingLine(line string) bool {
	stripped := strings.TrimSpace(line)
	if stripped == "" || len(stripped) > 80 {
		return false
	}
	for _, re := range headingRes {
		if re.MatchString(stripped) {
			return true
		}
	}
	return false
}

func cleanHeading(line string) string {
	stripped := strings.TrimSpace(line)
	cleaned := numberPrefixRe.ReplaceAllString(stripped, "")
	if cleaned == "" {
		return stripped
	}
	return titleCase(cleaned)
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// PDF extracts a structured Paper from PDF bytes. Segmentation is heuristic:
// lines matching known heading shapes start a new section, everything between
// is content.
func PDF(data []byte) (*models.Paper, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	reader, err := r.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}
	buf := new(strings.Builder)
	if _, err := io.Copy(buf, reader); err != nil {
		return nil, fmt.Errorf("read extracted text: %w", err)
	}
	text := util.SanitizeText(buf.String())
	if text == "" {
		return nil, util.ErrNoExtractableText
	}
	return structurePDFText(text), nil
}

func structurePDFText(text string) *models.Paper {
	lines := strings.Split(text, "\n")

	paper := &models.Paper{Authors: []string{}, SourceFormat: "pdf"}
	for _, line := range lines {
		if t := strings.TrimSpace(line); t != "" {
			paper.Title = t
			break
		}
	}

	var heading string
	var bodyLines []string
	inBody := false

	flush := func() {
		if !inBody {
			return
		}
		body := strings.TrimSpace(strings.Join(bodyLines, "\n"))
		switch {
		case strings.EqualFold(heading, "abstract"):
			paper.Abstract = body
		case body == "" || skipHeading(heading):
		default:
			paper.Sections = append(paper.Sections, models.Section{Heading: heading, Content: body})
		}
	}

	for _, line := range lines {
		if isHeadingLine(line) {
			flush()
			heading = cleanHeading(line)
			bodyLines = nil
			inBody = true
			continue
		}
		if inBody {
			bodyLines = append(bodyLines, line)
		}
	}
	flush()

	if len(paper.Sections) == 0 && paper.Abstract == "" {
		paper.Sections = append(paper.Sections, models.Section{Heading: "Full Paper", Content: strings.TrimSpace(text)})
	}
	return paper
}
