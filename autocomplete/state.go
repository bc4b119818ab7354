// Package autocomplete is the interaction state machine behind the ticker
// input: it turns keyboard and pointer events into matcher calls and
// resolved symbols.
package autocomplete

import (
	"ticker-search/models"
)

const (
	// NoHighlight marks that no dropdown row is highlighted.
	NoHighlight = -1
	// MaxInputLength mirrors the input field's character limit.
	MaxInputLength = 10
)

// State is everything the input and its dropdown render from.
type State struct {
	Query       string // visible input value, uppercased
	IsOpen      bool
	Focused     bool
	Results     []models.MatchCandidate
	Highlighted int
}

func NewState() State {
	return State{Results: []models.MatchCandidate{}, Highlighted: NoHighlight}
}

// HighlightedCandidate returns the highlighted row, if any.
func (s State) HighlightedCandidate() (models.MatchCandidate, bool) {
	if s.Highlighted < 0 || s.Highlighted >= len(s.Results) {
		return models.MatchCandidate{}, false
	}
	return s.Results[s.Highlighted], true
}

// Visible reports whether the dropdown should be drawn.
func (s State) Visible() bool {
	return s.IsOpen && len(s.Results) > 0
}

type EventKind int

const (
	EventTextChange EventKind = iota
	EventFocus
	EventArrowDown
	EventArrowUp
	EventEnter
	EventEscape
	// EventSelect is a pointer click on a row.
	EventSelect
	// EventHover is the pointer moving over a row.
	EventHover
	// EventOutside is pointer activity outside both the input and the dropdown.
	EventOutside
)

var eventNames = [...]string{
	EventTextChange: "text_change",
	EventFocus:      "focus",
	EventArrowDown:  "arrow_down",
	EventArrowUp:    "arrow_up",
	EventEnter:      "enter",
	EventEscape:     "escape",
	EventSelect:     "select",
	EventHover:      "hover",
	EventOutside:    "outside",
}

func (k EventKind) String() string {
	if int(k) >= 0 && int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

type Event struct {
	Kind  EventKind
	Text  string // EventTextChange
	Index int    // EventSelect, EventHover
}

func TextChanged(text string) Event {
	return Event{Kind: EventTextChange, Text: text}
}

func FocusGained() Event {
	return Event{Kind: EventFocus}
}

func ArrowDown() Event {
	return Event{Kind: EventArrowDown}
}

func ArrowUp() Event {
	return Event{Kind: EventArrowUp}
}

func Enter() Event {
	return Event{Kind: EventEnter}
}

func Escape() Event {
	return Event{Kind: EventEscape}
}

func Selected(index int) Event {
	return Event{Kind: EventSelect, Index: index}
}

func Hovered(index int) Event {
	return Event{Kind: EventHover, Index: index}
}

func Outside() Event {
	return Event{Kind: EventOutside}
}

type EffectKind int

const (
	EffectNone EffectKind = iota
	// EffectSubmit resolves the typed text itself.
	EffectSubmit
	// EffectSelect resolves a chosen dropdown row.
	EffectSelect
)

// Effect is what a transition asks the caller to do. Symbol is non-empty and
// uppercase whenever Kind is not EffectNone.
type Effect struct {
	Kind   EffectKind
	Symbol string
}

func (e Effect) Resolved() bool {
	return e.Kind != EffectNone
}
