// Package tui is a terminal front end for the autocomplete controller: key
// and mouse events become controller events, and resolved tickers are sent
// to the market pulse backend and appended to a chat transcript.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ticker-search/api"
	"ticker-search/autocomplete"
	"ticker-search/models"
	"ticker-search/search"
)

var (
	userStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	assistantStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	bullishStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	bearishStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	neutralStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	symbolStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Width(7)
	symbolTextStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	matchStyle      = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("11"))
	rowStyle        = lipgloss.NewStyle()
	rowHlStyle      = lipgloss.NewStyle().Background(lipgloss.Color("236"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

type role int

const (
	roleUser role = iota
	roleAssistant
)

type turn struct {
	role    role
	text    string
	pulse   *models.Pulse
	err     bool
	loading bool
}

type pulseMsg struct {
	symbol string
	pulse  *models.Pulse
	err    error
}

// Model is the bubbletea model. It must be used through a pointer because the
// controller's resolve callback writes into it.
type Model struct {
	ctrl     *autocomplete.Controller
	input    textinput.Model
	pulse    api.PulseFetcher
	timeout  time.Duration
	turns    []turn
	resolved []string
}

// New builds the model. pulse may be nil, in which case resolved tickers are
// only echoed.
func New(engine search.Engine, pulse api.PulseFetcher, timeout time.Duration) *Model {
	ti := textinput.New()
	ti.Placeholder = "Enter ticker symbol (e.g., AAPL, Apple, Microsoft...)"
	ti.CharLimit = autocomplete.MaxInputLength
	ti.Prompt = "🔍 "
	ti.Focus()

	m := &Model{input: ti, pulse: pulse, timeout: timeout}
	m.ctrl = autocomplete.NewController(engine, func(symbol string) {
		m.resolved = append(m.resolved, symbol)
	})
	return m
}

func (m *Model) Init() tea.Cmd {
	m.ctrl.Dispatch(autocomplete.FocusGained())
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case pulseMsg:
		m.finishTurn(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyDown:
		m.ctrl.Dispatch(autocomplete.ArrowDown())
		return m, nil
	case tea.KeyUp:
		m.ctrl.Dispatch(autocomplete.ArrowUp())
		return m, nil
	case tea.KeyEnter:
		m.ctrl.Dispatch(autocomplete.Enter())
		m.syncInput()
		return m, m.drainResolved()
	case tea.KeyEsc:
		m.ctrl.Dispatch(autocomplete.Escape())
		m.input.Blur()
		return m, nil
	}

	if !m.ctrl.State().Focused {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "/", "i", "tab":
			m.focus()
			return m, textinput.Blink
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.ctrl.Dispatch(autocomplete.TextChanged(m.input.Value()))
		m.syncInput()
	}
	return m, cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	row, onRow := m.rowAt(msg.Y)
	switch {
	case msg.Action == tea.MouseActionMotion && onRow:
		m.ctrl.Dispatch(autocomplete.Hovered(row))
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		switch {
		case onRow:
			m.ctrl.Dispatch(autocomplete.Selected(row))
			m.syncInput()
			m.input.Focus()
			return m.drainResolved()
		case msg.Y == m.inputLine():
			m.focus()
		default:
			m.ctrl.Dispatch(autocomplete.Outside())
			m.input.Blur()
		}
	}
	return nil
}

func (m *Model) focus() {
	m.input.Focus()
	m.ctrl.Dispatch(autocomplete.FocusGained())
}

// syncInput shows the controller's canonical (uppercased) query in the field.
func (m *Model) syncInput() {
	if q := m.ctrl.State().Query; q != m.input.Value() {
		m.input.SetValue(q)
		m.input.CursorEnd()
	}
}

// drainResolved turns tickers resolved by the controller into chat turns and
// pulse requests, then clears the input for the next question.
func (m *Model) drainResolved() tea.Cmd {
	if len(m.resolved) == 0 {
		return nil
	}
	var cmds []tea.Cmd
	for _, symbol := range m.resolved {
		m.turns = append(m.turns, turn{role: roleUser, text: symbol})
		if m.pulse == nil {
			m.turns = append(m.turns, turn{role: roleAssistant, text: "Resolved " + symbol})
			continue
		}
		m.turns = append(m.turns, turn{role: roleAssistant, text: symbol, loading: true})
		cmds = append(cmds, m.fetchPulse(symbol))
	}
	m.resolved = m.resolved[:0]

	m.ctrl.Dispatch(autocomplete.TextChanged(""))
	m.input.SetValue("")
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) fetchPulse(symbol string) tea.Cmd {
	pulse, timeout := m.pulse, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		p, err := pulse.Fetch(ctx, symbol)
		return pulseMsg{symbol: symbol, pulse: p, err: err}
	}
}

// finishTurn replaces the oldest loading turn for the symbol with the result.
func (m *Model) finishTurn(msg pulseMsg) {
	for i := range m.turns {
		t := &m.turns[i]
		if !t.loading || t.text != msg.symbol {
			continue
		}
		t.loading = false
		if msg.err != nil {
			t.err = true
			t.text = fmt.Sprintf("Sorry, I couldn't analyze %s. %v", msg.symbol, msg.err)
		} else {
			t.pulse = msg.pulse
		}
		return
	}
}

// State exposes the controller state, mainly for tests.
func (m *Model) State() autocomplete.State {
	return m.ctrl.State()
}
