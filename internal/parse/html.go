package parse

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"tonepaper/internal/models"
)

var headingTags = map[string]bool{"h1": true, "h2": true, "h3": true, "h4": true}

// Headings whose sections are dropped from the output entirely.
var skipHeadings = map[string]bool{
	"references":       true,
	"bibliography":     true,
	"acknowledgements": true,
	"acknowledgments":  true,
}

func skipHeading(h string) bool {
	return skipHeadings[strings.ToLower(strings.TrimSpace(h))]
}

// titleClasses are tried in order; arXiv HTML renderings use ltx_* classes.
var titleClasses = []string{"ltx_title", "document-title", "title"}

var abstractClasses = []string{"ltx_abstract", "abstract"}

// HTML extracts a structured Paper from an HTML research paper.
func HTML(r io.Reader) (*models.Paper, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	paper := &models.Paper{
		Title:        htmlTitle(doc),
		Authors:      htmlAuthors(doc),
		SourceFormat: "html",
	}
	paper.Abstract = htmlAbstract(doc)
	paper.Sections = htmlSections(doc)
	return paper, nil
}

// HTMLString parses an HTML document held in memory.
func HTMLString(s string) (*models.Paper, error) {
	return HTML(strings.NewReader(s))
}

func htmlTitle(doc *goquery.Document) string {
	for _, cls := range titleClasses {
		if sel := doc.Find("." + cls).First(); sel.Length() > 0 {
			if t := strings.TrimSpace(sel.Text()); t != "" {
				return t
			}
		}
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return "Untitled"
}

func htmlAuthors(doc *goquery.Document) []string {
	authors := make([]string, 0, 4)
	doc.Find(".ltx_personname").Each(func(_ int, s *goquery.Selection) {
		if name := strings.TrimSpace(s.Text()); name != "" {
			authors = append(authors, name)
		}
	})
	if len(authors) > 0 {
		return authors
	}
	doc.Find(`meta[name="author"]`).Each(func(_ int, s *goquery.Selection) {
		if content := strings.TrimSpace(s.AttrOr("content", "")); content != "" {
			authors = append(authors, content)
		}
	})
	return authors
}

func htmlAbstract(doc *goquery.Document) string {
	for _, cls := range abstractClasses {
		sel := doc.Find("." + cls).First()
		if sel.Length() == 0 {
			continue
		}
		// The abstract block often carries its own "Abstract" heading.
		sel.Find(".ltx_title").Remove()
		return blockText(sel)
	}
	return ""
}

func htmlSections(doc *goquery.Document) []models.Section {
	if ltx := doc.Find("section.ltx_section"); ltx.Length() > 0 {
		return ltxSections(ltx)
	}
	return genericSections(doc)
}

func ltxSections(nodes *goquery.Selection) []models.Section {
	sections := make([]models.Section, 0, nodes.Length())
	nodes.Each(func(_ int, sec *goquery.Selection) {
		heading := "Untitled Section"
		if h := sec.Find(".ltx_title").First(); h.Length() > 0 {
			if t := strings.TrimSpace(h.Text()); t != "" {
				heading = t
			}
			h.Remove()
		}
		if skipHeading(heading) {
			return
		}
		if content := blockText(sec); content != "" {
			sections = append(sections, models.Section{Heading: heading, Content: content})
		}
	})
	return sections
}

// genericSections walks the direct children of <body>, starting a new section
// at each h1-h4 and accumulating the text of everything until the next one.
func genericSections(doc *goquery.Document) []models.Section {
	body := doc.Find("body").First()
	if body.Length() == 0 {
		body = doc.Selection
	}

	var sections []models.Section
	var heading string
	var parts []string
	inSection := false

	flush := func() {
		if !inSection {
			return
		}
		content := strings.TrimSpace(strings.Join(parts, "\n"))
		if content != "" && !skipHeading(heading) {
			sections = append(sections, models.Section{Heading: heading, Content: content})
		}
	}

	body.Children().Each(func(_ int, el *goquery.Selection) {
		name := goquery.NodeName(el)
		if headingTags[name] {
			flush()
			heading = strings.TrimSpace(el.Text())
			parts = nil
			inSection = true
			return
		}
		if inSection {
			if t := blockText(el); t != "" {
				parts = append(parts, t)
			}
		}
	})
	flush()

	if len(sections) == 0 {
		if all := blockText(body); all != "" {
			sections = append(sections, models.Section{Heading: "Full Paper", Content: all})
		}
	}
	return sections
}

// blockText joins the text nodes under a selection with newlines, skipping
// script and style subtrees.
func blockText(sel *goquery.Selection) string {
	var parts []string
	for _, n := range sel.Nodes {
		collectText(n, &parts)
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, t)
		}
		return
	}
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}
