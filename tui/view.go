package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ticker-search/models"
)

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderTranscript())
	b.WriteString(m.input.View())
	b.WriteByte('\n')
	b.WriteString(m.renderDropdown())
	return b.String()
}

func (m *Model) renderTranscript() string {
	var b strings.Builder
	for _, t := range m.turns {
		switch {
		case t.role == roleUser:
			b.WriteString(userStyle.Render("> " + t.text))
		case t.loading:
			b.WriteString(dimStyle.Render("  analyzing " + t.text + "..."))
		case t.err:
			b.WriteString(errorStyle.Render("  " + t.text))
		case t.pulse != nil:
			b.WriteString(renderPulse(t.pulse))
		default:
			b.WriteString(assistantStyle.Render("  " + t.text))
		}
		b.WriteByte('\n')
	}
	if len(m.turns) > 0 {
		b.WriteByte('\n')
	}
	return b.String()
}

func renderPulse(p *models.Pulse) string {
	style := neutralStyle
	switch p.Pulse {
	case "bullish":
		style = bullishStyle
	case "bearish":
		style = bearishStyle
	}

	returns := make([]string, len(p.Momentum.Returns))
	for i, r := range p.Momentum.Returns {
		returns[i] = fmt.Sprintf("%+.2f%%", r)
	}

	lines := []string{
		fmt.Sprintf("  %s %s  momentum %.2f  [%s]",
			symbolStyle.Render(p.Ticker), style.Render(strings.ToUpper(p.Pulse)),
			p.Momentum.Score, strings.Join(returns, " ")),
	}
	if p.LLMExplanation != "" {
		lines = append(lines, assistantStyle.Render("  "+p.LLMExplanation))
	}
	for _, n := range p.News {
		lines = append(lines, dimStyle.Render("  • "+n.Title))
	}
	return strings.Join(lines, "\n")
}

// dropdownHeaderLines is the result-count line above the first row.
const dropdownHeaderLines = 1

func (m *Model) renderDropdown() string {
	s := m.ctrl.State()
	if !s.Visible() {
		return ""
	}

	var b strings.Builder
	plural := "s"
	if len(s.Results) == 1 {
		plural = ""
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d result%s", len(s.Results), plural)))
	b.WriteByte('\n')
	for i, r := range s.Results {
		line := fmt.Sprintf("  %s %s %s",
			padRight(highlightMatch(r.Instrument.Symbol, s.Query, symbolTextStyle), symbolColumn),
			padRight(highlightMatch(r.Instrument.Name, s.Query, rowStyle), nameColumn),
			dimStyle.Render(r.Instrument.Sector))
		if i == s.Highlighted {
			b.WriteString(rowHlStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteByte('\n')
	}
	b.WriteString(dimStyle.Render("  Use ↑↓ arrow keys to navigate, Enter to select"))
	b.WriteByte('\n')
	return b.String()
}

// inputLine is the screen row of the text input.
func (m *Model) inputLine() int {
	return strings.Count(m.renderTranscript(), "\n")
}

// rowAt maps a screen row to a dropdown row index.
func (m *Model) rowAt(y int) (int, bool) {
	s := m.ctrl.State()
	if !s.Visible() {
		return 0, false
	}
	first := m.inputLine() + 1 + dropdownHeaderLines
	i := y - first
	if i < 0 || i >= len(s.Results) {
		return 0, false
	}
	return i, true
}

const (
	symbolColumn = 7
	nameColumn   = 36
)

// matchSpan finds the first case-insensitive occurrence of query in text as
// byte offsets into text.
func matchSpan(text, query string) (int, int, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	lower := strings.ToLower(text)
	if q == "" || len(lower) != len(text) {
		return 0, 0, false
	}
	i := strings.Index(lower, q)
	if i < 0 {
		return 0, 0, false
	}
	return i, i + len(q), true
}

// highlightMatch renders text with base, marking the span matched by query.
func highlightMatch(text, query string, base lipgloss.Style) string {
	start, end, ok := matchSpan(text, query)
	if !ok {
		return base.Render(text)
	}
	var b strings.Builder
	if start > 0 {
		b.WriteString(base.Render(text[:start]))
	}
	b.WriteString(matchStyle.Render(text[start:end]))
	if end < len(text) {
		b.WriteString(base.Render(text[end:]))
	}
	return b.String()
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
