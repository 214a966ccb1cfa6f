package engine

import (
	"context"
	"fmt"
	"strings"

	"docchat/llm"

	"github.com/cloudwego/eino/schema"
)

const systemPrompt = `You are a helpful assistant for question-answering tasks.
Use the following pieces of retrieved context to answer the question.
If the answer is not in the context, just say that you don't know.
Don't try to make up an answer.`

// Answer is the response to one question, together with the chunks the
// answer was grounded on.
type Answer struct {
	Text    string
	Sources []llm.SearchResult
}

// Retrieve embeds the question with the same embedder that built the
// index and returns the top-K most similar chunks. Retrieval does not
// mutate the index; asking the same question twice returns the same
// chunks.
func (e *Engine) Retrieve(ctx context.Context, question string) ([]llm.SearchResult, error) {
	active := e.session.Active()
	if active == nil {
		return nil, ErrNoDocumentIndexed
	}

	queryVec, err := e.embedder.Embed(ctx, question)
	if err != nil {
		return nil, &RetrievalError{Err: err}
	}

	results, err := active.Index.Search(ctx, queryVec, e.config.TopK)
	if err != nil {
		return nil, &RetrievalError{Err: err}
	}
	return results, nil
}

// Query answers a question about the active document: retrieve the most
// relevant chunks, compose a grounded prompt and make a single chat model
// call. Without an indexed document it fails with ErrNoDocumentIndexed
// before any model call.
func (e *Engine) Query(ctx context.Context, question string) (*Answer, error) {
	results, err := e.Retrieve(ctx, question)
	if err != nil {
		return nil, err
	}

	messages := []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(buildPrompt(question, results)),
	}

	resp, err := e.chat.Generate(ctx, messages)
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	return &Answer{Text: resp.Content, Sources: results}, nil
}

// buildPrompt stuffs the retrieved chunks into a context block ahead of
// the question.
func buildPrompt(question string, results []llm.SearchResult) string {
	var sb strings.Builder
	sb.WriteString("<context>\n")
	for i, r := range results {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		if r.Document.Page > 0 {
			fmt.Fprintf(&sb, "[%s p.%d] ", r.Document.Source, r.Document.Page)
		}
		sb.WriteString(r.Document.Content)
	}
	sb.WriteString("\n</context>\n\nQuestion: ")
	sb.WriteString(question)
	return sb.String()
}
