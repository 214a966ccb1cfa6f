package renderer

import (
	"github.com/charmbracelet/lipgloss"
)

// MessageStyles configures transcript rendering.
type MessageStyles struct {
	User         lipgloss.Style
	Assistant    lipgloss.Style
	System       lipgloss.Style
	Source       lipgloss.Style
	SourceHeader lipgloss.Style
	Indent       lipgloss.Style
}

// DefaultMessageStyles returns the default style set.
func DefaultMessageStyles() *MessageStyles {
	return &MessageStyles{
		User:         lipgloss.NewStyle().Foreground(lipgloss.Color("#7dcfff")).Bold(true),
		Assistant:    lipgloss.NewStyle().Foreground(lipgloss.Color("#bb9af7")).Bold(true),
		System:       lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89")).Italic(true),
		Source:       lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")),
		SourceHeader: lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68")).Bold(true),
		Indent:       lipgloss.NewStyle().PaddingLeft(2),
	}
}
