// ============================================================================
// ockham - A Small Scripting Language
// ============================================================================
//
// Package:     repl
// Description: Main Bubbletea model for the ockham terminal REPL
// Author:      msto63
// Created:     2026-05-12
// License:     MIT
// ============================================================================

package repl

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/msto63/ockham/internal/history"
	"github.com/msto63/ockham/pkg/core/version"
	"github.com/msto63/ockham/pkg/lang"
)

// maxInputHistory bounds the navigable input history
const maxInputHistory = 100

// Model is the main Bubbletea model for the ockham REPL
type Model struct {
	// State
	width      int
	height     int
	ready      bool
	evaluating bool

	// Components
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	// Transcript state
	entries []Entry

	// Input history
	inputHistory []string // previous inputs, oldest first
	historyIndex int      // current position in the history (-1 = fresh input)
	currentInput string   // stash for the fresh input while navigating

	// Engine wiring
	engine  *lang.Engine
	session *lang.Session
	store   history.Store
	capture *bytes.Buffer
}

// Config holds REPL configuration
type Config struct {
	Engine *lang.Engine
	Store  history.Store

	// Output is the buffer the engine's print builtins write into; its
	// content is drained into the transcript after each evaluation
	Output *bytes.Buffer
}

// New creates a new REPL model
func New(cfg Config) Model {
	// Setup input line
	ti := textinput.New()
	ti.Placeholder = "set x = 1; (Enter to evaluate)"
	ti.Prompt = PromptStyle.Render(Prompt)
	ti.Focus()
	ti.CharLimit = 4096

	// Setup spinner
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle

	store := cfg.Store
	if store == nil {
		store = history.NewMemoryStore()
	}

	return Model{
		input:        ti,
		spinner:      sp,
		entries:      []Entry{},
		inputHistory: []string{},
		historyIndex: -1, // -1 means: no history navigation active
		engine:       cfg.Engine,
		session:      cfg.Engine.NewSession(),
		store:        store,
		capture:      cfg.Output,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.recordSession,
		m.loadHistory,
		tea.EnterAltScreen,
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 // banner panel
		footerHeight := 7 // input + status bar + help
		viewportHeight := msg.Height - headerHeight - footerHeight

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - 8
		m.updateViewportContent()

	case spinner.TickMsg:
		if m.evaluating {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case evalResultMsg:
		m.evaluating = false
		m.entries = append(m.entries, Entry{
			Input:    msg.input,
			Output:   msg.output,
			IsError:  msg.isError,
			Duration: msg.duration,
		})
		m.updateViewportContent()
		m.viewport.GotoBottom()

	case historyLoadedMsg:
		if len(msg.inputs) > 0 {
			m.inputHistory = msg.inputs
			m.historyIndex = -1
		}

	case sessionRecordedMsg:
		if msg.err != nil {
			m.entries = append(m.entries, Entry{
				Output: "history unavailable: " + msg.err.Error(),
				Notice: true,
			})
			m.updateViewportContent()
		}
	}

	// Update components
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global shortcuts
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyCtrlL:
		// Clear transcript
		m.entries = []Entry{}
		m.updateViewportContent()
		return m, nil
	}

	// Ignore further input while an evaluation is running
	if m.evaluating {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(m.input.Value())
		if input == "" {
			return m, nil
		}
		return m.submit(input)

	case tea.KeyUp:
		// Navigate up through the input history
		if len(m.inputHistory) > 0 {
			if m.historyIndex == -1 {
				// First navigation: stash the current input
				m.currentInput = m.input.Value()
				m.historyIndex = len(m.inputHistory) - 1
			} else if m.historyIndex > 0 {
				m.historyIndex--
			}
			m.input.SetValue(m.inputHistory[m.historyIndex])
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyDown:
		// Navigate down through the input history
		if m.historyIndex != -1 {
			if m.historyIndex < len(m.inputHistory)-1 {
				m.historyIndex++
				m.input.SetValue(m.inputHistory[m.historyIndex])
			} else {
				// Back to the stashed fresh input
				m.historyIndex = -1
				m.input.SetValue(m.currentInput)
			}
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyPgUp:
		m.viewport.ViewUp()
		return m, nil

	case tea.KeyPgDown:
		m.viewport.ViewDown()
		return m, nil
	}

	// Pass other keys to the input line
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit handles one entered line, dispatching REPL commands locally and
// everything else to the engine session
func (m Model) submit(input string) (tea.Model, tea.Cmd) {
	m.rememberInput(input)
	m.input.Reset()

	switch input {
	case "exit", "quit":
		return m, tea.Quit

	case "clear":
		m.entries = []Entry{}
		m.updateViewportContent()
		return m, nil

	case "help":
		m.entries = append(m.entries, Entry{Input: input, Output: helpText(), Notice: true})
		m.updateViewportContent()
		m.viewport.GotoBottom()
		return m, nil

	case "env":
		m.entries = append(m.entries, Entry{Input: input, Output: m.renderEnvironment(), Notice: true})
		m.updateViewportContent()
		m.viewport.GotoBottom()
		return m, nil
	}

	m.evaluating = true
	return m, tea.Batch(
		m.spinner.Tick,
		m.evaluate(input),
	)
}

// rememberInput appends input to the navigable history, skipping
// immediate repeats and capping the length
func (m *Model) rememberInput(input string) {
	if len(m.inputHistory) == 0 || m.inputHistory[len(m.inputHistory)-1] != input {
		m.inputHistory = append(m.inputHistory, input)
		if len(m.inputHistory) > maxInputHistory {
			m.inputHistory = m.inputHistory[len(m.inputHistory)-maxInputHistory:]
		}
	}
	m.historyIndex = -1
	m.currentInput = ""
}

// View renders the REPL
func (m Model) View() string {
	if !m.ready {
		return "Starting ockham REPL..."
	}

	var b strings.Builder

	b.WriteString(m.renderBanner())
	b.WriteString("\n")
	b.WriteString(m.renderTranscriptArea())
	b.WriteString("\n")
	b.WriteString(m.renderInputArea())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())

	return b.String()
}

// renderBanner renders the header panel with logo and version
func (m Model) renderBanner() string {
	logo := LogoStyle.Render(Logo)
	sub := SubHeaderStyle.Render("interactive interpreter v" + version.ComponentVersion("repl"))

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		logo,
		strings.Repeat(" ", 3),
		sub,
	)

	return TitlePanelStyle.Width(m.width - 4).Render(header)
}

// renderTranscriptArea renders the main transcript viewport
func (m Model) renderTranscriptArea() string {
	style := TranscriptPanelStyle.Width(m.width - 2).Height(m.viewport.Height + 2)
	return style.Render(m.viewport.View())
}

// renderInputArea renders the input line
func (m Model) renderInputArea() string {
	var input string
	if m.evaluating {
		input = m.spinner.View() + EvaluatingStyle.Render(" Evaluating...")
	} else {
		input = m.input.View()
	}

	style := InputStyle.Width(m.width - 2)
	if !m.evaluating {
		style = FocusedInputStyle.Width(m.width - 2)
	}

	return style.Render(input)
}

// renderStatusBar renders the status bar with session info and version
func (m Model) renderStatusBar() string {
	shortID := m.session.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}

	leftPart := StatusLabelStyle.Render("Session: ") + StatusValueStyle.Render(shortID)
	centerPart := HelpDescStyle.Render(version.Full())
	rightPart := StatusLabelStyle.Render("Runs: ") + StatusValueStyle.Render(fmt.Sprintf("%d", m.session.Runs()))

	// Calculate padding
	leftLen := lipgloss.Width(leftPart)
	centerLen := lipgloss.Width(centerPart)
	rightLen := lipgloss.Width(rightPart)
	totalLen := leftLen + centerLen + rightLen
	availableSpace := m.width - totalLen - 4
	if availableSpace < 2 {
		availableSpace = 2
	}
	leftPadding := availableSpace / 2
	rightPadding := availableSpace - leftPadding

	content := leftPart + strings.Repeat(" ", leftPadding) + centerPart + strings.Repeat(" ", rightPadding) + rightPart

	return StatusBarStyle.Width(m.width - 2).Render(content)
}

// renderHelpBar renders the help shortcuts bar
func (m Model) renderHelpBar() string {
	items := []string{
		RenderKeyHint("Enter", "evaluate"),
		RenderKeyHint("↑/↓", "history"),
		RenderKeyHint("PgUp/PgDn", "scroll"),
		RenderKeyHint("Ctrl+L", "clear"),
		RenderKeyHint("Ctrl+C", "quit"),
	}
	return HelpStyle.Render(strings.Join(items, "  "))
}

// updateViewportContent rebuilds the viewport from the transcript
func (m *Model) updateViewportContent() {
	var content strings.Builder

	if len(m.entries) == 0 {
		content.WriteString(NoticeStyle.Render("Type an ockham statement and press Enter. Try: set x = 1;"))
		content.WriteString("\n")
	}

	for _, entry := range m.entries {
		if entry.Input != "" {
			content.WriteString(RenderPrompt(entry.Input))
			content.WriteString("\n")
		}
		if entry.Output != "" {
			style := ResultStyle
			switch {
			case entry.IsError:
				style = ErrorStyle
			case entry.Notice:
				style = NoticeStyle
			}
			content.WriteString(style.Render(entry.Output))
			if !entry.Notice && entry.Duration > 0 {
				content.WriteString(DurationStyle.Render(fmt.Sprintf("  (%s)", entry.Duration.Round(time.Microsecond))))
			}
			content.WriteString("\n")
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// evaluate runs one input through the engine session
func (m *Model) evaluate(input string) tea.Cmd {
	session := m.session
	store := m.store
	capture := m.capture

	return func() tea.Msg {
		result, err := session.Run(context.Background(), input)

		// Drain builtin print output captured during the run
		var printed string
		if capture != nil {
			printed = strings.TrimRight(capture.String(), "\n")
			capture.Reset()
		}

		var parts []string
		if printed != "" {
			parts = append(parts, printed)
		}

		var isError bool
		var duration time.Duration
		if err != nil {
			parts = append(parts, err.Error())
			isError = true
		} else {
			duration = result.Duration
			if !result.IsNull() {
				parts = append(parts, result.Value.String())
			}
		}
		output := strings.Join(parts, "\n")

		// History persistence is best effort
		_ = store.Append(context.Background(), &history.Entry{
			SessionID: session.ID,
			Input:     input,
			Result:    output,
			IsError:   isError,
		})

		return evalResultMsg{
			input:    input,
			output:   output,
			isError:  isError,
			duration: duration,
		}
	}
}

// recordSession writes the session row so appended entries have a parent
func (m Model) recordSession() tea.Msg {
	err := m.store.BeginSession(context.Background(), &history.Session{
		ID:        m.session.ID,
		StartedAt: m.session.StartedAt,
	})
	return sessionRecordedMsg{err: err}
}

// loadHistory preloads the input history from the store
func (m Model) loadHistory() tea.Msg {
	entries, err := m.store.Recent(context.Background(), maxInputHistory)
	if err != nil {
		return historyLoadedMsg{}
	}

	inputs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if len(inputs) > 0 && inputs[len(inputs)-1] == entry.Input {
			continue
		}
		inputs = append(inputs, entry.Input)
	}
	return historyLoadedMsg{inputs: inputs}
}

// renderEnvironment lists the variables and functions declared in the
// session, leaving out the builtins
func (m Model) renderEnvironment() string {
	env := m.session.Environment()
	names := m.session.DeclaredNames()
	if len(names) == 0 {
		return "environment is empty"
	}

	var b strings.Builder
	for _, name := range names {
		value, ok := env.Lookup(name)
		if !ok {
			continue
		}
		keyword := "set"
		if env.IsConstant(name) {
			keyword = "lock"
		}
		fmt.Fprintf(&b, "%-4s %s = %s\n", keyword, name, value.String())
	}
	return strings.TrimRight(b.String(), "\n")
}

// helpText lists REPL commands and key bindings
func helpText() string {
	return strings.Join([]string{
		"Commands:",
		"  help         show this help",
		"  env          list defined variables",
		"  clear        clear the transcript",
		"  exit, quit   leave the REPL",
		"",
		"Keys:",
		"  Enter        evaluate input",
		"  Up/Down      navigate input history",
		"  PgUp/PgDn    scroll the transcript",
		"  Ctrl+L       clear the transcript",
		"  Ctrl+C, Esc  quit",
	}, "\n")
}

// Run starts the REPL TUI
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
