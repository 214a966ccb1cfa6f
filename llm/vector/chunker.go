package vector

import (
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ChunkConfig configures how documents are split into chunks
type ChunkConfig struct {
	ChunkSize    int // Maximum chunk size in characters
	ChunkOverlap int // Overlap between consecutive chunks
	MinChunkSize int // Minimum chunk size to keep
}

// DefaultChunkConfig returns the default chunk configuration
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		ChunkSize:    getEnvInt("CHUNK_SIZE", 1000),
		ChunkOverlap: getEnvInt("CHUNK_OVERLAP", 200),
		MinChunkSize: getEnvInt("MIN_CHUNK_SIZE", 1),
	}
}

// getEnvInt reads an integer from environment variable
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		var result int
		if _, err := fmt.Sscanf(val, "%d", &result); err == nil {
			return result
		}
	}
	return defaultVal
}

// Chunk represents a text window with its position metadata
type Chunk struct {
	Content    string
	ChunkIndex int
	Page       int // 1-based page the window starts on
	Offset     int // rune offset of the window in the joined page text
}

// ChunkPages splits per-page document text into overlapping windows.
// Pages are joined in order; each window holds at most ChunkSize runes and the
// next window starts ChunkOverlap runes before the previous one ended. Window
// ends prefer paragraph, then sentence, then word boundaries inside the final
// overlap span; a hard cut is the fallback. Whitespace-only windows are
// dropped. Empty input yields no chunks and no error.
func ChunkPages(pages []string, config ChunkConfig) []Chunk {
	if config.ChunkSize <= 0 {
		config.ChunkSize = 1000
	}
	if config.ChunkOverlap < 0 {
		config.ChunkOverlap = 0
	}
	if config.ChunkOverlap >= config.ChunkSize {
		config.ChunkOverlap = config.ChunkSize - 1
	}
	if config.MinChunkSize <= 0 {
		config.MinChunkSize = 1
	}

	runes, pageStarts := joinPages(pages)
	if len(runes) == 0 {
		return nil
	}

	var chunks []Chunk
	start := 0
	idx := 0
	for start < len(runes) {
		end := start + config.ChunkSize
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = adjustBoundary(runes, start, end, config.ChunkOverlap)
		}

		content := string(runes[start:end])
		if len(strings.TrimSpace(content)) >= config.MinChunkSize {
			chunks = append(chunks, Chunk{
				Content:    content,
				ChunkIndex: idx,
				Page:       pageFor(pageStarts, start),
				Offset:     start,
			})
			idx++
		}

		if end == len(runes) {
			break
		}
		next := end - config.ChunkOverlap
		if next <= start {
			next = start + 1
		}
		start = next
	}

	return chunks
}

// joinPages concatenates pages with a blank line between them and records the
// rune offset each page starts at.
func joinPages(pages []string) ([]rune, []int) {
	var sb strings.Builder
	starts := make([]int, len(pages))
	offset := 0
	for i, page := range pages {
		if i > 0 {
			sb.WriteString("\n\n")
			offset += 2
		}
		starts[i] = offset
		sb.WriteString(page)
		offset += utf8.RuneCountInString(page)
	}
	return []rune(sb.String()), starts
}

// adjustBoundary backs the window end up to the best natural break inside the
// final overlap span. It never moves the end before start+1.
func adjustBoundary(runes []rune, start, end, overlap int) int {
	searchFrom := end - overlap
	if searchFrom <= start {
		searchFrom = start + 1
	}

	// Paragraph break
	for i := end - 1; i >= searchFrom; i-- {
		if runes[i] == '\n' && i > 0 && runes[i-1] == '\n' {
			return i + 1
		}
	}

	// Sentence end followed by whitespace
	for i := end - 1; i >= searchFrom; i-- {
		if isSentenceEnd(runes[i]) && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			return i + 1
		}
	}

	// Word boundary
	for i := end - 1; i >= searchFrom; i-- {
		if unicode.IsSpace(runes[i]) {
			return i + 1
		}
	}

	return end
}

// isSentenceEnd checks if a rune is a sentence ending punctuation
func isSentenceEnd(r rune) bool {
	return r == '。' || r == '！' || r == '？' || r == '.' || r == '!' || r == '?'
}

// pageFor returns the 1-based page containing the given rune offset.
func pageFor(pageStarts []int, offset int) int {
	page := 1
	for i, s := range pageStarts {
		if s <= offset {
			page = i + 1
		} else {
			break
		}
	}
	return page
}
