package parser

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLParser extracts readable text from HTML documents.
type HTMLParser struct{}

// NewHTMLParser creates a new HTML parser
func NewHTMLParser() *HTMLParser {
	return &HTMLParser{}
}

// Parse reads and parses HTML from the reader
func (p *HTMLParser) Parse(ctx context.Context, r io.Reader) (*Document, error) {
	return p.parse(r, "")
}

// ParseFile reads and parses an HTML file
func (p *HTMLParser) ParseFile(ctx context.Context, filePath string) (*Document, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer f.Close()

	return p.parse(f, filePath)
}

// parse extracts the title and body text from the HTML document.
func (p *HTMLParser) parse(r io.Reader, filePath string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if title == "" {
		if filePath != "" {
			title = extractFileName(filePath)
		} else {
			title = "Untitled"
		}
	}

	// Scripts, styles and other non-content elements contribute no text
	doc.Find("script, style, noscript, head").Remove()

	// Block elements become line breaks so the text keeps its structure
	doc.Find("p, div, li, tr, h1, h2, h3, h4, h5, h6, br, blockquote, pre").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	text := doc.Find("body").Text()
	if strings.TrimSpace(text) == "" {
		text = doc.Text()
	}
	text = cleanWhitespace(text)

	return &Document{
		Content:  text,
		Pages:    []string{text},
		Title:    title,
		Metadata: make(map[string]interface{}),
	}, nil
}

// cleanWhitespace collapses runs of spaces and blank lines
func cleanWhitespace(content string) string {
	re := regexp.MustCompile(`[ \t]+`)
	content = re.ReplaceAllString(content, " ")

	re = regexp.MustCompile(`\n\s*\n\s*\n+`)
	content = re.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}

// FileType returns the file type this parser handles
func (p *HTMLParser) FileType() FileType {
	return FileTypeHTML
}
