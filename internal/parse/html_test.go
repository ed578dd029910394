package parse

import "testing"

func TestHTMLNoHeadingsBecomesFullPaper(t *testing.T) {
	doc := `<html><head><title>Plain Page</title></head><body><p>Hello world.</p><p>Second paragraph.</p></body></html>`
	paper, err := HTMLString(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(paper.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(paper.Sections))
	}
	if paper.Sections[0].Heading != "Full Paper" {
		t.Fatalf("unexpected heading: %q", paper.Sections[0].Heading)
	}
	if paper.Sections[0].Content != "Hello world.\nSecond paragraph." {
		t.Fatalf("unexpected content: %q", paper.Sections[0].Content)
	}
	if paper.Title != "Plain Page" {
		t.Fatalf("expected <title> fallback, got %q", paper.Title)
	}
}

func TestHTMLGenericHeadingWalk(t *testing.T) {
	doc := `<html><body>
<h2>Introduction</h2><p>First part.</p><p>More intro.</p>
<h2>Results</h2><p>Findings here.</p>
<h2>References</h2><p>[1] Someone et al.</p>
</body></html>`
	paper, err := HTMLString(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(paper.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d: %#v", len(paper.Sections), paper.Sections)
	}
	if paper.Sections[0].Heading != "Introduction" || paper.Sections[1].Heading != "Results" {
		t.Fatalf("unexpected headings: %#v", paper.Sections)
	}
	if paper.Sections[0].Content != "First part.\nMore intro." {
		t.Fatalf("unexpected intro content: %q", paper.Sections[0].Content)
	}
}

func TestHTMLArxivRendering(t *testing.T) {
	doc := `<html><body>
<h1 class="ltx_title">Attention Is All You Need</h1>
<span class="ltx_personname">Ashish Vaswani</span>
<span class="ltx_personname">Noam Shazeer</span>
<div class="ltx_abstract"><h6 class="ltx_title">Abstract</h6><p>We propose a new architecture.</p></div>
<section class="ltx_section"><h2 class="ltx_title">1 Introduction</h2><p>Sequence models dominate.</p></section>
<section class="ltx_section"><h2 class="ltx_title">Acknowledgements</h2><p>Thanks everyone.</p></section>
</body></html>`
	paper, err := HTMLString(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if paper.Title != "Attention Is All You Need" {
		t.Fatalf("unexpected title: %q", paper.Title)
	}
	if len(paper.Authors) != 2 || paper.Authors[0] != "Ashish Vaswani" {
		t.Fatalf("unexpected authors: %#v", paper.Authors)
	}
	if paper.Abstract != "We propose a new architecture." {
		t.Fatalf("unexpected abstract: %q", paper.Abstract)
	}
	if len(paper.Sections) != 1 {
		t.Fatalf("expected acknowledgements dropped, got %#v", paper.Sections)
	}
	if paper.Sections[0].Heading != "1 Introduction" {
		t.Fatalf("unexpected heading: %q", paper.Sections[0].Heading)
	}
	if paper.Sections[0].Content != "Sequence models dominate." {
		t.Fatalf("heading should be removed from content: %q", paper.Sections[0].Content)
	}
}

func TestHTMLMetaAuthorFallback(t *testing.T) {
	doc := `<html><head><meta name="author" content="Jane Doe"></head><body><h1>T</h1><p>x</p></body></html>`
	paper, err := HTMLString(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(paper.Authors) != 1 || paper.Authors[0] != "Jane Doe" {
		t.Fatalf("unexpected authors: %#v", paper.Authors)
	}
}

func TestAllSectionsPrependsAbstract(t *testing.T) {
	doc := `<html><body>
<div class="abstract">A summary.</div>
<h2>Methods</h2><p>We did things.</p>
</body></html>`
	paper, err := HTMLString(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	all := paper.AllSections()
	if len(all) != 2 {
		t.Fatalf("expected abstract + 1 section, got %#v", all)
	}
	if all[0].Heading != "Abstract" || all[0].Content != "A summary." {
		t.Fatalf("abstract not prepended: %#v", all[0])
	}
}

func TestSkipHeadingCaseInsensitive(t *testing.T) {
	for _, h := range []string{"References", "BIBLIOGRAPHY", "Acknowledgements", "acknowledgments"} {
		if !skipHeading(h) {
			t.Fatalf("expected %q to be skipped", h)
		}
	}
	if skipHeading("Results") {
		t.Fatalf("results should not be skipped")
	}
}
