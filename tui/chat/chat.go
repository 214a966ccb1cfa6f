package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"docchat/llm/engine"
	"docchat/pubsub"
	"docchat/tui/component"
	"docchat/tui/component/renderer"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// answerMsg carries the result of a query back into the update loop.
type answerMsg struct {
	question string
	answer   *engine.Answer
	err      error
}

// IngestDoneMsg carries the result of an ingestion, whether started by
// the /load command or sent in from a startup ingest.
type IngestDoneMsg struct {
	Result *engine.IngestResult
	Err    error
}

// Model is the top-level chat UI composing transcript, status and input.
type Model struct {
	list   component.ListModel
	edit   component.EditModel
	status component.StatusModel

	engine *engine.Engine
	sub    <-chan pubsub.Event[engine.Update]
	ctx    context.Context

	width  int
	height int
}

// InitialModel creates the chat UI bound to an engine.
func InitialModel(eng *engine.Engine) Model {
	ctx := context.Background()

	return Model{
		list:   component.NewListModel(),
		edit:   component.NewEditModel(),
		status: component.NewStatusModel(),
		engine: eng,
		sub:    eng.Broker().Subscribe(ctx),
		ctx:    ctx,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.list.Init(),
		m.edit.Init(),
		m.status.Init(),
		m.waitForEngineEvent(),
	)
}

// waitForEngineEvent blocks on the next ingestion lifecycle event.
func (m Model) waitForEngineEvent() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-m.sub
		if !ok {
			return nil
		}
		return event
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		statusHeight := lipgloss.Height(m.status.View())
		editHeight := m.edit.Height()
		listHeight := m.height - statusHeight - editHeight

		m.list.SetSize(m.width, listHeight)
		m.edit.SetWidth(m.width)
		m.status.SetWidth(m.width)

	case component.EditorSubmitMsg:
		model, cmd := m.handleInput(msg.Value)
		m = model
		cmds = append(cmds, cmd)

	case answerMsg:
		if msg.err != nil {
			m.list.Append(renderer.Message{Role: renderer.RoleSystem, Content: describeError(msg.err)})
		} else {
			m.list.Append(renderer.Message{
				Role:    renderer.RoleAssistant,
				Content: msg.answer.Text,
				Sources: msg.answer.Sources,
			})
		}
		m.status.Stop(m.idleStatus())

	case IngestDoneMsg:
		if msg.Err != nil {
			m.list.Append(renderer.Message{Role: renderer.RoleSystem, Content: describeError(msg.Err)})
			m.status.Stop(m.idleStatus())
		} else {
			m.list.Append(renderer.Message{
				Role: renderer.RoleSystem,
				Content: fmt.Sprintf("Indexed %q: %d pages, %d chunks in %s",
					msg.Result.Source, msg.Result.Pages, msg.Result.Chunks,
					renderer.FormatDuration(msg.Result.Duration)),
			})
		}

	case pubsub.Event[engine.Update]:
		cmds = append(cmds, m.waitForEngineEvent())

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd

	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)

	m.edit, cmd = m.edit.Update(msg)
	cmds = append(cmds, cmd)

	m.status, cmd = m.status.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleInput routes a submitted line: slash commands or a question.
func (m Model) handleInput(value string) (Model, tea.Cmd) {
	value = strings.TrimSpace(value)
	if value == "" {
		return m, nil
	}

	if path, ok := strings.CutPrefix(value, "/load "); ok {
		path = strings.TrimSpace(path)
		m.list.Append(renderer.Message{Role: renderer.RoleSystem, Content: "Loading " + path})
		eng := m.engine
		ctx := m.ctx
		return m, func() tea.Msg {
			result, err := eng.Ingest(ctx, path)
			return IngestDoneMsg{Result: result, Err: err}
		}
	}

	switch value {
	case "/quit", "/exit":
		return m, tea.Quit
	case "/help":
		m.list.Append(renderer.Message{
			Role:    renderer.RoleSystem,
			Content: "Commands: /load <path> to index a document, /quit to exit. Anything else is asked about the loaded document.",
		})
		return m, nil
	}

	m.list.Append(renderer.Message{Role: renderer.RoleUser, Content: value})
	var cmd tea.Cmd
	m.status, cmd = m.status.Start("Thinking...")

	eng := m.engine
	ctx := m.ctx
	query := func() tea.Msg {
		answer, err := eng.Query(ctx, value)
		return answerMsg{question: value, answer: answer, err: err}
	}
	return m, tea.Batch(cmd, query)
}

// idleStatus describes the session when nothing is running.
func (m Model) idleStatus() string {
	if doc := m.engine.Session().Active(); doc != nil {
		return fmt.Sprintf("Ready: %s (%d chunks)", doc.Source, doc.Chunks)
	}
	return "No document loaded"
}

// describeError maps pipeline errors to user-facing text.
func describeError(err error) string {
	switch {
	case errors.Is(err, engine.ErrNoDocumentIndexed):
		return "No document loaded yet. Use /load <path> first."
	case errors.Is(err, engine.ErrIngestInProgress):
		return "Still indexing the previous document, try again in a moment."
	case errors.Is(err, engine.ErrNoContent):
		return "That document has no extractable text."
	default:
		return "Error: " + err.Error()
	}
}

func (m Model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.list.View(),
		m.status.View(),
		m.edit.View(),
	)
}
