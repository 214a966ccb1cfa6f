package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFParser extracts per-page plain text from PDF files.
// Encrypted or structurally broken files surface as parse errors; the caller
// decides how to report them.
type PDFParser struct{}

// NewPDFParser creates a new PDF parser
func NewPDFParser() *PDFParser {
	return &PDFParser{}
}

// Parse reads an entire PDF byte stream and extracts its page texts.
func (p *PDFParser) Parse(ctx context.Context, r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF stream: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to load PDF: %w", err)
	}

	return p.extract(ctx, reader, "")
}

// ParseFile reads and parses a PDF file
func (p *PDFParser) ParseFile(ctx context.Context, filePath string) (*Document, error) {
	f, reader, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load PDF %s: %w", filepath.Base(filePath), err)
	}
	defer f.Close()

	return p.extract(ctx, reader, filePath)
}

// extract walks every page and collects its plain text. Pages that cannot be
// decoded are kept as empty entries so page numbering stays stable.
func (p *PDFParser) extract(ctx context.Context, reader *pdf.Reader, filePath string) (*Document, error) {
	numPages := reader.NumPage()

	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, strings.TrimSpace(text))
	}

	content := strings.Join(pages, "\n\n")

	return &Document{
		Content: content,
		Pages:   pages,
		Title:   ExtractTitle(content, filePath),
		Metadata: map[string]interface{}{
			"page_count": numPages,
		},
	}, nil
}

// FileType returns the file type this parser handles
func (p *PDFParser) FileType() FileType {
	return FileTypePDF
}
