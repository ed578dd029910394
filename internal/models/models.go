package models

import "strings"

// ToneLevel selects how far the rewrite leans into millennial voice, 1-5.
type ToneLevel int

const (
	ToneLight    ToneLevel = 1
	ToneModerate ToneLevel = 2
	ToneBalanced ToneLevel = 3
	ToneHeavy    ToneLevel = 4
	ToneUnhinged ToneLevel = 5
)

// Clamp returns the level itself when it is on the 1-5 scale, otherwise the
// balanced default.
func (t ToneLevel) Clamp() ToneLevel {
	if t < ToneLight || t > ToneUnhinged {
		return ToneBalanced
	}
	return t
}

type Section struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

type Paper struct {
	Title        string    `json:"title"`
	Authors      []string  `json:"authors"`
	Abstract     string    `json:"abstract,omitempty"`
	Sections     []Section `json:"sections"`
	SourceURL    string    `json:"source_url,omitempty"`
	SourceFormat string    `json:"source_format,omitempty"`
}

// AllSections returns the translatable sections in document order, with the
// abstract prepended as its own section when present.
func (p *Paper) AllSections() []Section {
	out := make([]Section, 0, len(p.Sections)+1)
	if strings.TrimSpace(p.Abstract) != "" {
		out = append(out, Section{Heading: "Abstract", Content: p.Abstract})
	}
	out = append(out, p.Sections...)
	return out
}
