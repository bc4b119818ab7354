package autocomplete

import (
	"strings"

	"ticker-search/models"
	"ticker-search/search"
)

// Reduce applies one event to s and returns the next state. It never mutates
// s; the engine is the only collaborator and must itself be pure.
func Reduce(s State, ev Event, engine search.Engine) (State, Effect) {
	switch ev.Kind {
	case EventTextChange:
		raw := capInput(ev.Text)
		s.Query = strings.ToUpper(raw)
		s.Focused = true
		s.Highlighted = NoHighlight
		s.IsOpen = strings.TrimSpace(raw) != ""
		if s.IsOpen {
			s.Results = engine.Search(raw)
		} else {
			s.Results = []models.MatchCandidate{}
		}

	case EventFocus:
		s.Focused = true
		if strings.TrimSpace(s.Query) != "" {
			s.Results = engine.Search(s.Query)
			s.IsOpen = true
			if s.Highlighted >= len(s.Results) {
				s.Highlighted = len(s.Results) - 1
			}
		}

	case EventArrowDown:
		if s.Visible() {
			s.Highlighted = min(s.Highlighted+1, len(s.Results)-1)
		}

	case EventArrowUp:
		if s.Visible() {
			s.Highlighted = max(s.Highlighted-1, 0)
		}

	case EventEnter:
		if cand, ok := s.HighlightedCandidate(); ok && s.IsOpen {
			return selectCandidate(s, cand)
		}
		return submit(s)

	case EventEscape:
		s.IsOpen = false
		s.Highlighted = NoHighlight
		s.Focused = false

	case EventSelect:
		if s.Visible() && ev.Index >= 0 && ev.Index < len(s.Results) {
			return selectCandidate(s, s.Results[ev.Index])
		}

	case EventHover:
		if s.Visible() && ev.Index >= 0 && ev.Index < len(s.Results) {
			s.Highlighted = ev.Index
		}

	case EventOutside:
		s.IsOpen = false
		s.Highlighted = NoHighlight
		s.Focused = false
		s.Results = []models.MatchCandidate{}
	}

	return s, Effect{}
}

func selectCandidate(s State, cand models.MatchCandidate) (State, Effect) {
	s.Query = cand.Instrument.Symbol
	s.IsOpen = false
	s.Results = []models.MatchCandidate{}
	s.Highlighted = NoHighlight
	s.Focused = true
	return s, Effect{Kind: EffectSelect, Symbol: cand.Instrument.Symbol}
}

// submit resolves the typed text itself. Blank input resolves nothing.
func submit(s State) (State, Effect) {
	s.IsOpen = false
	s.Highlighted = NoHighlight
	symbol := strings.ToUpper(strings.TrimSpace(s.Query))
	if symbol == "" {
		return s, Effect{}
	}
	return s, Effect{Kind: EffectSubmit, Symbol: symbol}
}

func capInput(text string) string {
	r := []rune(text)
	if len(r) > MaxInputLength {
		return string(r[:MaxInputLength])
	}
	return text
}
