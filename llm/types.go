package llm

// Document is one indexed chunk record as stored in the vector index.
type Document struct {
	ID         string         `json:"id"`
	Content    string         `json:"content"`
	Source     string         `json:"source"`
	FileType   string         `json:"file_type"`
	Title      string         `json:"title"`
	ChunkIndex int            `json:"chunk_index"`
	Page       int            `json:"page"`
	Metadata   map[string]any `json:"metadata"`
	CreatedAt  string         `json:"created_at"`
}

// SearchResult pairs an indexed chunk with its similarity score.
type SearchResult struct {
	Document Document
	Score    float32
}
