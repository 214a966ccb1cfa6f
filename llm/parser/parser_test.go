package parser

import (
	"context"
	"strings"
	"testing"
)

func TestFileTypeFromExt(t *testing.T) {
	cases := []struct {
		ext  string
		want FileType
	}{
		{"pdf", FileTypePDF},
		{"PDF", FileTypePDF},
		{"md", FileTypeMD},
		{"markdown", FileTypeMD},
		{"html", FileTypeHTML},
		{"htm", FileTypeHTML},
		{"txt", FileTypeTXT},
		{"docx", FileTypeUnknown},
		{"", FileTypeUnknown},
	}
	for _, tc := range cases {
		if got := FileTypeFromExt(tc.ext); got != tc.want {
			t.Errorf("FileTypeFromExt(%q) = %v, want %v", tc.ext, got, tc.want)
		}
	}
}

func TestRegistryLookup(t *testing.T) {
	reg := DefaultRegistry()

	for _, path := range []string{"doc.pdf", "notes.md", "page.html", "readme.txt"} {
		if _, ok := reg.GetParserForPath(path); !ok {
			t.Errorf("no parser registered for %s", path)
		}
	}
	if _, ok := reg.GetParserForPath("image.png"); ok {
		t.Error("unexpected parser for png")
	}
}

func TestRegistryParseUnsupported(t *testing.T) {
	reg := DefaultRegistry()
	if _, err := reg.Parse(context.Background(), strings.NewReader("x"), "data.bin"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestTxtParser(t *testing.T) {
	doc, err := DefaultRegistry().Parse(context.Background(), strings.NewReader("line one\nline two"), "note.txt")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Content != "line one\nline two" {
		t.Errorf("unexpected content %q", doc.Content)
	}
	if len(doc.Pages) != 1 {
		t.Errorf("expected 1 page, got %d", len(doc.Pages))
	}
}

func TestMarkdownParser(t *testing.T) {
	input := `---
title: Project Notes
---

# Heading

Some **bold** text with a [link](https://example.com).
`
	doc, err := DefaultRegistry().Parse(context.Background(), strings.NewReader(input), "notes.md")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Title != "Project Notes" {
		t.Errorf("expected frontmatter title, got %q", doc.Title)
	}
	if strings.Contains(doc.Content, "**") {
		t.Error("bold markers not stripped")
	}
	if strings.Contains(doc.Content, "](") {
		t.Error("link syntax not stripped")
	}
	if !strings.Contains(doc.Content, "Heading") {
		t.Error("heading text lost")
	}
}

func TestHTMLParser(t *testing.T) {
	input := `<html><head><title>Docs Home</title><style>body{color:red}</style></head>
<body><script>alert(1)</script><h1>Welcome</h1><p>First paragraph.</p></body></html>`

	doc, err := DefaultRegistry().Parse(context.Background(), strings.NewReader(input), "index.html")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Title != "Docs Home" {
		t.Errorf("expected title from <title>, got %q", doc.Title)
	}
	if strings.Contains(doc.Content, "alert") || strings.Contains(doc.Content, "color:red") {
		t.Error("script or style content leaked into text")
	}
	if !strings.Contains(doc.Content, "Welcome") || !strings.Contains(doc.Content, "First paragraph.") {
		t.Errorf("body text missing: %q", doc.Content)
	}
}

func TestExtractTitle(t *testing.T) {
	cases := []struct {
		name    string
		content string
		path    string
		want    string
	}{
		{"heading", "# Getting Started\n\nbody", "doc.md", "Getting Started"},
		{"first line", "Release Notes\nmore text", "doc.txt", "Release Notes"},
		{"empty falls back to filename", "", "/tmp/fallback.txt", "fallback.txt"},
		{"overlong first line falls back", strings.Repeat("x", 150) + "\nrest", "/tmp/long.txt", "long.txt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractTitle(tc.content, tc.path); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestPDFParserInvalidData(t *testing.T) {
	if _, err := DefaultRegistry().Parse(context.Background(), strings.NewReader("not a pdf"), "broken.pdf"); err == nil {
		t.Fatal("expected error for malformed pdf data")
	}
}
