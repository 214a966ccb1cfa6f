package chat

import (
	"errors"
	"strings"
	"testing"

	"docchat/llm/engine"
	"docchat/llm/parser"
	"docchat/llm/vector"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel() Model {
	eng := engine.New(
		parser.DefaultRegistry(),
		vector.NewEmbeddingService(nil, 4),
		vector.NewMemoryProvider(),
		nil,
		engine.Config{TopK: 1},
	)
	m := InitialModel(eng)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func TestIngestFailureShownInTranscript(t *testing.T) {
	m := newTestModel()

	updated, _ := m.Update(IngestDoneMsg{Err: errors.New("disk unplugged")})
	view := updated.View()
	if !strings.Contains(view, "disk unplugged") {
		t.Errorf("ingest failure not visible in transcript:\n%s", view)
	}
}

func TestIngestResultShownInTranscript(t *testing.T) {
	m := newTestModel()

	updated, _ := m.Update(IngestDoneMsg{Result: &engine.IngestResult{
		Source: "report.pdf",
		Pages:  4,
		Chunks: 12,
	}})
	view := updated.View()
	if !strings.Contains(view, "report.pdf") {
		t.Errorf("ingest result not visible in transcript:\n%s", view)
	}
}

func TestDescribeError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"no document", engine.ErrNoDocumentIndexed, "/load"},
		{"ingest running", engine.ErrIngestInProgress, "Still indexing"},
		{"empty document", engine.ErrNoContent, "no extractable text"},
		{"other", errors.New("dial tcp: refused"), "dial tcp: refused"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := describeError(tc.err); !strings.Contains(got, tc.want) {
				t.Errorf("expected %q in %q", tc.want, got)
			}
		})
	}
}
