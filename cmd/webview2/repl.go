package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/wippyai/webview2/webview2"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	sourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const maxHistory = 12

func newReplCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Evaluate scripts interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer s.Close()

			p := tea.NewProgram(newReplModel(cmd.Context(), s), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}

type entry struct {
	script   string
	result   string
	messages []webview2.WebMessage
	err      error
}

type replModel struct {
	ctx     context.Context
	session *session
	input   textinput.Model
	history []entry
	recall  int
	title   string
	busy    bool
}

type evalMsg entry

type titleMsg string

func newReplModel(ctx context.Context, s *session) *replModel {
	ti := textinput.New()
	ti.Placeholder = `"foo" + "bar"`
	ti.Prompt = promptStyle.Render("js> ")
	ti.Width = 72
	ti.Focus()
	return &replModel{ctx: ctx, session: s, input: ti}
}

func (m *replModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.refreshTitle)
}

func (m *replModel) refreshTitle() tea.Msg {
	var title string
	m.session.do(m.ctx, func(_ context.Context, view *webview2.WebView) error {
		var err error
		title, err = view.DocumentTitle()
		return err
	})
	return titleMsg(title)
}

func (m *replModel) evaluate(script string) tea.Cmd {
	return func() tea.Msg {
		result, messages, err := m.session.evaluate(m.ctx, script)
		return evalMsg{script: script, result: result, messages: messages, err: err}
	}
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+d", "esc":
			return m, tea.Quit

		case "enter":
			script := strings.TrimSpace(m.input.Value())
			if script == "" || m.busy {
				return m, nil
			}
			m.busy = true
			m.input.SetValue("")
			m.recall = len(m.history)
			return m, m.evaluate(script)

		case "up":
			if m.recall > 0 {
				m.recall--
				m.input.SetValue(m.history[m.recall].script)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if m.recall < len(m.history)-1 {
				m.recall++
				m.input.SetValue(m.history[m.recall].script)
				m.input.CursorEnd()
			}
			return m, nil
		}

	case evalMsg:
		m.busy = false
		m.history = append(m.history, entry(msg))
		m.recall = len(m.history)
		return m, m.refreshTitle

	case titleMsg:
		m.title = string(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *replModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("WebView2 REPL"))
	b.WriteString(" ")
	b.WriteString(sourceStyle.Render(m.title))
	b.WriteString("\n\n")

	start := max(0, len(m.history)-maxHistory)
	for _, e := range m.history[start:] {
		b.WriteString(promptStyle.Render("js> "))
		b.WriteString(e.script)
		b.WriteString("\n")
		for _, msg := range e.messages {
			b.WriteString(sourceStyle.Render(fmt.Sprintf("  message from %s: ", msg.Source)))
			b.WriteString(string(pretty.Ugly([]byte(msg.JSON))))
			b.WriteString("\n")
		}
		if e.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("  Error: %v", e.err)))
		} else {
			b.WriteString(resultStyle.Render("  " + e.result))
		}
		b.WriteString("\n")
	}
	if len(m.history) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	if m.busy {
		b.WriteString(helpStyle.Render("running..."))
	} else {
		b.WriteString(helpStyle.Render("enter run • ↑/↓ history • esc quit"))
	}
	return b.String()
}
