package component

import (
	"docchat/tui/component/renderer"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// ListModel owns the transcript viewport. Message storage and scrolling
// live here; rendering is delegated to the MessageRenderer.
type ListModel struct {
	viewport viewport.Model
	messages []renderer.Message
	width    int
	height   int
	ready    bool

	renderer *renderer.MessageRenderer
}

// NewListModel creates the transcript component.
func NewListModel() ListModel {
	vp := viewport.New(30, 30)
	vp.SetContent("Load a document with /load <path>, then ask questions about it.")

	return ListModel{
		viewport: vp,
		messages: make([]renderer.Message, 0),
		renderer: renderer.NewMessageRenderer(nil),
		width:    30,
		height:   5,
		ready:    true,
	}
}

// Init implements tea.Model.
func (m ListModel) Init() tea.Cmd {
	return nil
}

// Append adds a message to the transcript and scrolls to the bottom.
func (m *ListModel) Append(msg renderer.Message) {
	m.messages = append(m.messages, msg)
	m.updateViewportContent()
	m.viewport.GotoBottom()
}

// Update handles scrolling input.
func (m ListModel) Update(msg tea.Msg) (ListModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.viewport.ScrollUp(3)
		case tea.MouseButtonWheelDown:
			m.viewport.ScrollDown(3)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the viewport.
func (m ListModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.viewport.View()
}

// SetSize resizes the viewport.
func (m *ListModel) SetSize(width, height int) {
	m.width = width
	m.height = height

	if height < 1 {
		height = 1
	}

	m.viewport.Width = width
	m.viewport.Height = height
	m.ready = true

	m.renderer.SetViewportWidth(width)

	if len(m.messages) > 0 {
		m.updateViewportContent()
	}
	m.viewport.GotoBottom()
}

func (m *ListModel) updateViewportContent() {
	m.viewport.SetContent(m.renderer.RenderMessages(m.messages))
}
