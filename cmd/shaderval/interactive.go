package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/shader-validator/arena"
	"github.com/wippyai/shader-validator/validator"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	passStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#90EE90"))

	failStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB86C"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type viewerModel struct {
	err        error
	arena      *arena.Arena
	vctx       *validator.Context
	filename   string
	searchPath []string
	data       []byte
	outcome    validator.Outcome
	disasm     viewport.Model
	hasDisasm  bool
	validated  bool
	ready      bool
}

type contextReadyMsg struct {
	err     error
	arena   *arena.Arena
	vctx    *validator.Context
	data    []byte
	outcome validator.Outcome
}

type disasmMsg struct {
	err  error
	text string
}

func newViewerModel(filename string, searchPath []string) *viewerModel {
	return &viewerModel{filename: filename, searchPath: searchPath}
}

func (m *viewerModel) Init() tea.Cmd {
	return m.loadAndValidate
}

func (m *viewerModel) loadAndValidate() tea.Msg {
	ctx := context.Background()

	data, err := os.ReadFile(m.filename)
	if err != nil {
		return contextReadyMsg{err: err}
	}

	a := arena.New(nil)
	vctx, err := newContext(ctx, a, m.searchPath)
	if err != nil {
		a.Free()
		return contextReadyMsg{err: err}
	}

	out, err := vctx.Validate(ctx, data)
	if err != nil {
		a.Free()
		return contextReadyMsg{err: err}
	}

	return contextReadyMsg{arena: a, vctx: vctx, data: data, outcome: out}
}

func (m *viewerModel) disassemble() tea.Msg {
	text, err := m.vctx.Disassemble(context.Background(), m.data)
	return disasmMsg{err: err, text: text}
}

func (m *viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.arena != nil {
				m.arena.Free()
			}
			return m, tea.Quit

		case "d":
			if m.validated && !m.hasDisasm && m.vctx != nil {
				return m, m.disassemble
			}
		}

	case tea.WindowSizeMsg:
		headerHeight := 6
		if !m.ready {
			m.disasm = viewport.New(msg.Width, msg.Height-headerHeight)
			m.ready = true
		} else {
			m.disasm.Width = msg.Width
			m.disasm.Height = msg.Height - headerHeight
		}

	case contextReadyMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.arena = msg.arena
		m.vctx = msg.vctx
		m.data = msg.data
		m.outcome = msg.outcome
		m.validated = true

	case disasmMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.disasm.SetContent(msg.text)
		m.hasDisasm = true
	}

	if m.hasDisasm {
		var cmd tea.Cmd
		m.disasm, cmd = m.disasm.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *viewerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Shader Validator"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	if m.err != nil {
		if stderrors.Is(m.err, validator.ErrUnavailable) {
			b.WriteString(errorStyle.Render("Disassembly unavailable: diagnostics component not found."))
		} else {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("q quit"))
		return b.String()
	}

	if !m.validated {
		b.WriteString("Loading components and validating...")
		return b.String()
	}

	if m.outcome.Passed {
		b.WriteString(passStyle.Render("PASS"))
	} else {
		b.WriteString(failStyle.Render("FAIL"))
		if m.outcome.Message != "" {
			b.WriteString("\n")
			b.WriteString(messageStyle.Render(m.outcome.Message))
		}
	}
	b.WriteString("\n\n")

	if m.hasDisasm {
		b.WriteString(m.disasm.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ scroll • q quit"))
	} else {
		b.WriteString(helpStyle.Render("d disassemble • q quit"))
	}

	return b.String()
}

func runInteractive(filename string, searchPath []string) error {
	p := tea.NewProgram(newViewerModel(filename, searchPath), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
