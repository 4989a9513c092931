// Package tui is the terminal chat surface over the RAG core. It owns the
// session's chat history and feeds the core's streaming answers into the
// transcript fragment by fragment.
package tui

import (
	"context"
	"iter"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docchat/internal/domain"
)

// Answerer is the TUI-facing subset of the RAG service.
type Answerer interface {
	AnswerStream(ctx context.Context, query, documentID string, history []domain.ChatMessage) iter.Seq[string]
}

type fragmentMsg string

type streamDoneMsg struct{}

// Model is the Bubble Tea model for the chat session.
type Model struct {
	svc        Answerer
	documentID string
	summary    string

	input    textinput.Model
	viewport viewport.Model
	spin     spinner.Model

	history   []domain.ChatMessage
	partial   string
	fragments chan string
	streaming bool
	ready     bool
}

// New creates a chat model bound to one ingested document. The summary is
// shown as the session header.
func New(svc Answerer, documentID, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about the document and press Enter"
	ti.Focus()
	ti.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	return Model{
		svc:        svc,
		documentID: documentID,
		summary:    summary,
		input:      ti,
		viewport:   viewport.New(0, 0),
		spin:       sp,
	}
}

// Init starts the text input cursor blink.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window, and stream events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, frameH := transcriptStyle.GetFrameSize()
		_, inputH := inputBoxStyle.GetFrameSize()
		reserved := 2 + inputH + 1 // header + summary, input box, status line
		height := msg.Height - reserved - frameH
		if height < 3 {
			height = 3
		}
		m.viewport.Width = maxInt(20, msg.Width-2)
		m.viewport.Height = height
		m.viewport.SetContent(m.renderTranscript())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" && !m.streaming {
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				return m, nil
			}
			m.input.Reset()
			cmd := m.startStream(question)
			m.history = append(m.history, domain.ChatMessage{Role: domain.RoleUser, Content: question})
			m.viewport.SetContent(m.renderTranscript())
			m.viewport.GotoBottom()
			return m, tea.Batch(cmd, m.spin.Tick)
		}

	case fragmentMsg:
		m.partial += string(msg)
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, readFragment(m.fragments)

	case streamDoneMsg:
		m.history = append(m.history, domain.ChatMessage{Role: domain.RoleAssistant, Content: m.partial})
		m.partial = ""
		m.streaming = false
		m.fragments = nil
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		if m.streaming {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// startStream launches the answer stream for question; the history snapshot
// excludes the question itself, which travels separately in the prompt.
func (m *Model) startStream(question string) tea.Cmd {
	snapshot := make([]domain.ChatMessage, len(m.history))
	copy(snapshot, m.history)

	ch := make(chan string)
	m.fragments = ch
	m.streaming = true
	m.partial = ""

	go func() {
		defer close(ch)
		for fragment := range m.svc.AnswerStream(context.Background(), question, m.documentID, snapshot) {
			ch <- fragment
		}
	}()
	return readFragment(ch)
}

func readFragment(ch chan string) tea.Cmd {
	return func() tea.Msg {
		fragment, ok := <-ch
		if !ok {
			return streamDoneMsg{}
		}
		return fragmentMsg(fragment)
	}
}

// View renders header, transcript, input box, and status line.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("docchat: " + m.documentID)
	summary := summaryStyle.Render(m.summary)
	transcript := transcriptStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render("Enter to send, Ctrl+C to quit")
	if m.streaming {
		status = statusStyle.Render(m.spin.View() + " thinking...")
	}
	return header + "\n" + summary + "\n" + transcript + "\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	var b strings.Builder
	for _, msg := range m.history {
		b.WriteString(renderMessage(msg.Role, msg.Content))
		b.WriteString("\n\n")
	}
	if m.streaming {
		b.WriteString(renderMessage(domain.RoleAssistant, m.partial))
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return "Ask a question about the ingested document."
	}
	return b.String()
}

func renderMessage(role, content string) string {
	label := assistantLabelStyle.Render("assistant")
	if role == domain.RoleUser {
		label = userLabelStyle.Render("you")
	}
	return label + "\n" + content
}

var (
	headerStyle         = lipgloss.NewStyle().Bold(true)
	summaryStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	transcriptStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	userLabelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
)

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
