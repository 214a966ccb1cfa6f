package component

import (
	"fmt"

	"docchat/llm/engine"
	"docchat/pubsub"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatusModel shows a spinner and a one-line status. It follows the
// ingestion lifecycle events and the query busy state.
type StatusModel struct {
	spinner spinner.Model
	running bool
	text    string
	width   int
}

// NewStatusModel creates the status component.
func NewStatusModel() StatusModel {
	s := spinner.New()
	s.Spinner = spinner.Jump
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return StatusModel{
		spinner: s,
		running: false,
		text:    "No document loaded",
		width:   0,
	}
}

// Init implements tea.Model; the spinner starts on demand.
func (m StatusModel) Init() tea.Cmd {
	return nil
}

// Update follows ingestion lifecycle events and spinner ticks.
func (m StatusModel) Update(msg tea.Msg) (StatusModel, tea.Cmd) {
	switch msg := msg.(type) {
	case pubsub.Event[engine.Update]:
		switch msg.Payload.Stage {
		case engine.StageExtracting:
			return m.start("Extracting " + msg.Payload.Source + "...")
		case engine.StageChunking:
			return m.start("Chunking...")
		case engine.StageIndexing:
			return m.start(fmt.Sprintf("Embedding and indexing %d chunks...", msg.Payload.Chunks))
		case engine.StageReady:
			m.running = false
			m.text = fmt.Sprintf("Ready: %s (%d chunks)", msg.Payload.Source, msg.Payload.Chunks)
			return m, nil
		case engine.StageFailed:
			m.running = false
			m.text = "Ingestion failed"
			return m, nil
		}
	}

	if m.running {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the status line.
func (m StatusModel) View() string {
	style := lipgloss.NewStyle().Padding(1, 0)
	content := m.text
	if m.running {
		content = fmt.Sprintf("%s %s", m.spinner.View(), m.text)
	}
	return style.Render(content)
}

// Start begins the spinner with the given text.
func (m StatusModel) Start(text string) (StatusModel, tea.Cmd) {
	return m.start(text)
}

func (m StatusModel) start(text string) (StatusModel, tea.Cmd) {
	m.text = text
	if m.running {
		return m, nil
	}
	m.running = true
	return m, m.spinner.Tick
}

// Stop halts the spinner and sets the status text.
func (m *StatusModel) Stop(text string) {
	m.running = false
	m.text = text
}

// SetWidth sets the component width.
func (m *StatusModel) SetWidth(width int) {
	m.width = width
}

// IsRunning reports whether the spinner is active.
func (m StatusModel) IsRunning() bool {
	return m.running
}
