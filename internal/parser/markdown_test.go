package parser

import (
	"testing"
)

func extract(t *testing.T, content string, opts ExtractOptions) []Link {
	t.Helper()
	source := []byte(content)
	return ExtractLinks(Parse(source), source, opts)
}

func destinations(links []Link) []string {
	out := make([]string, len(links))
	for i, l := range links {
		out[i] = l.Destination
	}
	return out
}

func TestExtractLinksNone(t *testing.T) {
	links := extract(t, "Hello world, no links here.", ExtractOptions{})
	if len(links) != 0 {
		t.Errorf("expected no links, got %v", destinations(links))
	}
}

func TestExtractLinksDocumentOrder(t *testing.T) {
	content := `First [one](a.md) then [two](b.md).

- item with [three](c.md)
  - nested [four](d.md)

> quoted [five](e.md) and *emphasized [six](f.md)*
`
	links := extract(t, content, ExtractOptions{})
	want := []string{"a.md", "b.md", "c.md", "d.md", "e.md", "f.md"}
	got := destinations(links)
	if len(got) != len(want) {
		t.Fatalf("expected %d links, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("link %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExtractLinksInsideTable(t *testing.T) {
	content := `before [p](before.md)

| Col A | Col B |
|-------|-------|
| [one](t1.md) | [two](t2.md) |

after [q](after.md)
`
	got := destinations(extract(t, content, ExtractOptions{}))
	want := []string{"before.md", "t1.md", "t2.md", "after.md"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("link %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExtractLinksCodeIsOpaque(t *testing.T) {
	content := "A `[not a link](inline.md)` code span.\n\n" +
		"```\n[also not](block.md)\n```\n\n" +
		"    [indented code](indented.md)\n"
	links := extract(t, content, ExtractOptions{})
	if len(links) != 0 {
		t.Errorf("expected no links from code, got %v", destinations(links))
	}
}

func TestExtractLinksDisplayTextNotRescanned(t *testing.T) {
	content := `[see \[not\](fake.md) here](real.md)`
	got := destinations(extract(t, content, ExtractOptions{}))
	if len(got) != 1 || got[0] != "real.md" {
		t.Errorf("expected only [real.md], got %v", got)
	}
}

func TestExtractLinksAutolinks(t *testing.T) {
	content := "Raw <https://example.com/a> and bare https://example.com/b here."
	links := extract(t, content, ExtractOptions{})
	if len(links) != 2 {
		t.Fatalf("expected 2 autolinks, got %v", destinations(links))
	}
	for _, l := range links {
		if l.Kind != LinkKindAuto {
			t.Errorf("expected kind %q, got %q for %q", LinkKindAuto, l.Kind, l.Destination)
		}
	}
}

func TestExtractLinksImages(t *testing.T) {
	content := `![diagram](assets/diagram.png) and [doc](doc.md)`

	got := destinations(extract(t, content, ExtractOptions{}))
	want := []string{"doc.md"}
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("images off: expected %v, got %v", want, got)
	}

	got = destinations(extract(t, content, ExtractOptions{IncludeImages: true}))
	want = []string{"assets/diagram.png", "doc.md"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("images on: expected %v, got %v", want, got)
	}
}

func TestExtractLinksImageAltTextStillWalked(t *testing.T) {
	// Alt text can legally contain links; when images themselves aren't
	// collected, those inner links still count.
	content := `![alt with [inner](inner.md)](img.png)`
	got := destinations(extract(t, content, ExtractOptions{}))
	if len(got) != 1 || got[0] != "inner.md" {
		t.Errorf("expected [inner.md], got %v", got)
	}
}

func TestExtractLinksRawDestinationPreserved(t *testing.T) {
	content := `[f](my%20file.md#section)`
	links := extract(t, content, ExtractOptions{})
	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(links))
	}
	// No decoding or fragment handling at this stage.
	if links[0].Destination != "my%20file.md#section" {
		t.Errorf("destination altered: %q", links[0].Destination)
	}
}

func TestExtractLinksLineNumbers(t *testing.T) {
	content := "line one\n\n[a](a.md)\n\ntext\n\n[b](b.md)\n"
	links := extract(t, content, ExtractOptions{})
	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(links))
	}
	if links[0].Line != 3 {
		t.Errorf("first link line: got %d, want 3", links[0].Line)
	}
	if links[1].Line != 7 {
		t.Errorf("second link line: got %d, want 7", links[1].Line)
	}
}

func TestExtractLinksStartLineOffset(t *testing.T) {
	content := "[a](a.md)\n"
	links := extract(t, content, ExtractOptions{StartLine: 5})
	if len(links) != 1 || links[0].Line != 5 {
		t.Errorf("expected line 5, got %+v", links)
	}
}

func TestParseIsTotal(t *testing.T) {
	// Malformed constructs degrade to text, never an error or a panic.
	inputs := []string{
		"",
		"[unclosed",
		"](backwards)[",
		"[]()",
		"\x00\xff\xfe",
		"<<<>>> ***",
	}
	for _, input := range inputs {
		source := []byte(input)
		doc := Parse(source)
		if doc == nil {
			t.Errorf("Parse(%q) returned nil", input)
		}
		_ = ExtractLinks(doc, source, ExtractOptions{})
	}
}
