package vector

import (
	"strings"
	"testing"
)

func TestChunkPagesSlidingWindow(t *testing.T) {
	chunks := ChunkPages([]string{"ABCDE"}, ChunkConfig{ChunkSize: 3, ChunkOverlap: 1, MinChunkSize: 1})

	want := []string{"ABC", "CDE"}
	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d", len(want), len(chunks))
	}
	for i, w := range want {
		if chunks[i].Content != w {
			t.Errorf("chunk %d: expected %q, got %q", i, w, chunks[i].Content)
		}
		if chunks[i].ChunkIndex != i {
			t.Errorf("chunk %d: expected index %d, got %d", i, i, chunks[i].ChunkIndex)
		}
	}
}

func TestChunkPagesEmptyInput(t *testing.T) {
	cases := []struct {
		name  string
		pages []string
	}{
		{"nil", nil},
		{"empty page", []string{""}},
		{"whitespace only", []string{"  \n\t  "}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if chunks := ChunkPages(tc.pages, DefaultChunkConfig()); len(chunks) != 0 {
				t.Errorf("expected no chunks, got %d", len(chunks))
			}
		})
	}
}

func TestChunkPagesDeterministic(t *testing.T) {
	pages := []string{strings.Repeat("The quick brown fox jumps over the lazy dog. ", 100)}
	cfg := ChunkConfig{ChunkSize: 200, ChunkOverlap: 40, MinChunkSize: 1}

	first := ChunkPages(pages, cfg)
	second := ChunkPages(pages, cfg)

	if len(first) != len(second) {
		t.Fatalf("chunk count changed between runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestChunkPagesSizeBound(t *testing.T) {
	pages := []string{strings.Repeat("word ", 500)}
	cfg := ChunkConfig{ChunkSize: 100, ChunkOverlap: 20, MinChunkSize: 1}

	for i, c := range ChunkPages(pages, cfg) {
		if n := len([]rune(c.Content)); n > cfg.ChunkSize {
			t.Errorf("chunk %d has %d runes, limit %d", i, n, cfg.ChunkSize)
		}
	}
}

func TestChunkPagesOverlap(t *testing.T) {
	// Unbroken text with no natural boundaries forces hard cuts, so every
	// consecutive pair must share exactly ChunkOverlap runes.
	pages := []string{strings.Repeat("abcdefghij", 50)}
	cfg := ChunkConfig{ChunkSize: 100, ChunkOverlap: 20, MinChunkSize: 1}

	chunks := ChunkPages(pages, cfg)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1].Content)
		curr := []rune(chunks[i].Content)
		tail := string(prev[len(prev)-cfg.ChunkOverlap:])
		head := string(curr[:cfg.ChunkOverlap])
		if tail != head {
			t.Errorf("chunks %d and %d do not share the overlap window", i-1, i)
		}
	}
}

func TestChunkPagesPrefersParagraphBoundary(t *testing.T) {
	para1 := strings.Repeat("a", 80)
	para2 := strings.Repeat("b", 80)
	pages := []string{para1 + "\n\n" + para2}
	cfg := ChunkConfig{ChunkSize: 100, ChunkOverlap: 30, MinChunkSize: 1}

	chunks := ChunkPages(pages, cfg)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	if got := strings.TrimSpace(chunks[0].Content); got != para1 {
		t.Errorf("first chunk did not end at the paragraph break: %q", got)
	}
}

func TestChunkPagesPageTracking(t *testing.T) {
	pages := []string{
		strings.Repeat("first page text. ", 5),
		strings.Repeat("second page text. ", 5),
		strings.Repeat("third page text. ", 5),
	}
	cfg := ChunkConfig{ChunkSize: 60, ChunkOverlap: 10, MinChunkSize: 1}

	chunks := ChunkPages(pages, cfg)
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	if chunks[0].Page != 1 {
		t.Errorf("first chunk on page %d, expected 1", chunks[0].Page)
	}
	last := chunks[len(chunks)-1]
	if last.Page != 3 {
		t.Errorf("last chunk on page %d, expected 3", last.Page)
	}
	for i := 1; i < len(chunks); i++ {
		if chunks[i].Page < chunks[i-1].Page {
			t.Errorf("page numbers out of order at chunk %d", i)
		}
	}
}

func TestChunkPagesShortDocument(t *testing.T) {
	chunks := ChunkPages([]string{"just a short note"}, DefaultChunkConfig())
	if len(chunks) != 1 {
		t.Fatalf("expected a single chunk, got %d", len(chunks))
	}
	if chunks[0].Content != "just a short note" {
		t.Errorf("unexpected chunk content %q", chunks[0].Content)
	}
}

func TestChunkPagesOverlapClamped(t *testing.T) {
	// Overlap >= size must not stall the window.
	chunks := ChunkPages([]string{"ABCDEFGH"}, ChunkConfig{ChunkSize: 3, ChunkOverlap: 5, MinChunkSize: 1})
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	last := chunks[len(chunks)-1]
	if !strings.HasSuffix(last.Content, "H") {
		t.Errorf("window never reached the end of the text, last chunk %q", last.Content)
	}
}
