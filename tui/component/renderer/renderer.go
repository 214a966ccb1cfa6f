package renderer

import (
	"fmt"
	"strings"

	"docchat/llm"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Role identifies who a transcript message belongs to.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is one entry in the chat transcript. Assistant messages carry
// the retrieved chunks the answer was grounded on.
type Message struct {
	Role    Role
	Content string
	Sources []llm.SearchResult
}

// sourcePreviewLen caps how much chunk text is shown per source.
const sourcePreviewLen = 300

// MessageRenderer renders transcript messages for the viewport.
type MessageRenderer struct {
	markdownRenderer *glamour.TermRenderer
	styles           *MessageStyles
	renderedCache    []string
	viewportWidth    int
}

// NewMessageRenderer creates a renderer with the default styles.
func NewMessageRenderer(styles *MessageStyles) *MessageRenderer {
	if styles == nil {
		styles = DefaultMessageStyles()
	}

	// Markdown renderer (dracula theme); word wrap is handled by the
	// surrounding lipgloss style.
	markdownRenderer, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dracula"),
		glamour.WithWordWrap(0),
	)
	return &MessageRenderer{
		markdownRenderer: markdownRenderer,
		styles:           styles,
		renderedCache:    make([]string, 0),
	}
}

// SetViewportWidth sets the wrap width.
func (r *MessageRenderer) SetViewportWidth(width int) {
	r.viewportWidth = width
}

// RenderMessages renders the whole transcript. All but the last message
// are cached; the last one is re-rendered every time since it may still
// change.
func (r *MessageRenderer) RenderMessages(messages []Message) string {
	if len(messages) == 0 {
		return "Load a document with /load <path>, then ask questions about it."
	}

	if len(messages) < len(r.renderedCache) {
		r.renderedCache = r.renderedCache[:0]
	}

	for i := len(r.renderedCache); i < len(messages)-1; i++ {
		r.renderedCache = append(r.renderedCache, r.RenderMessage(messages[i]))
	}

	var sb strings.Builder
	for _, cached := range r.renderedCache {
		if cached != "" {
			sb.WriteString(cached)
			sb.WriteString("\n\n")
		}
	}

	if renderedLast := r.RenderMessage(messages[len(messages)-1]); renderedLast != "" {
		sb.WriteString(renderedLast)
	}

	content := sb.String()
	if r.viewportWidth > 0 {
		return lipgloss.NewStyle().Width(r.viewportWidth).Render(content)
	}
	return content
}

// RenderMessage renders a single transcript message.
func (r *MessageRenderer) RenderMessage(msg Message) string {
	switch msg.Role {
	case RoleUser:
		return r.renderUserMessage(msg)
	case RoleAssistant:
		return r.renderAssistantMessage(msg)
	case RoleSystem:
		return r.renderSystemMessage(msg)
	}
	return ""
}

func (r *MessageRenderer) renderUserMessage(msg Message) string {
	if msg.Content == "" {
		return ""
	}
	return r.styles.User.Render("You:") + " " + msg.Content
}

func (r *MessageRenderer) renderAssistantMessage(msg Message) string {
	if msg.Content == "" {
		return ""
	}

	header := r.styles.Assistant.Render("Assistant:")
	body := header + "\n" + r.renderMarkdown(msg.Content)

	if len(msg.Sources) > 0 {
		body += "\n" + r.renderSources(msg.Sources)
	}
	return body
}

func (r *MessageRenderer) renderSystemMessage(msg Message) string {
	if msg.Content == "" {
		return ""
	}
	return r.styles.System.Render("• " + msg.Content)
}

// renderSources lists the retrieved chunks backing an answer.
func (r *MessageRenderer) renderSources(sources []llm.SearchResult) string {
	var sb strings.Builder
	sb.WriteString(r.styles.SourceHeader.Render("Sources:"))
	for i, s := range sources {
		location := s.Document.Source
		if s.Document.Page > 0 {
			location = fmt.Sprintf("%s p.%d", location, s.Document.Page)
		}
		preview := Truncate(strings.ReplaceAll(s.Document.Content, "\n", " "), sourcePreviewLen)
		line := fmt.Sprintf("[%d] %s (%.2f) %s", i+1, location, s.Score, preview)
		sb.WriteString("\n")
		sb.WriteString(r.styles.Indent.Render(r.styles.Source.Render(line)))
	}
	return sb.String()
}

// renderMarkdown renders markdown content, falling back to the raw text.
func (r *MessageRenderer) renderMarkdown(content string) string {
	if r.markdownRenderer == nil {
		return content
	}
	rendered, err := r.markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSpace(rendered)
}
