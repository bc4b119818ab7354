package autocomplete

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticker-search/loader"
	"ticker-search/models"
	"ticker-search/search"
)

// stubEngine returns a fixed list for any non-blank query and records calls.
type stubEngine struct {
	results []models.MatchCandidate
	queries []string
}

func (e *stubEngine) Search(query string) []models.MatchCandidate {
	e.queries = append(e.queries, query)
	if search.Sanitize(query) == "" {
		return []models.MatchCandidate{}
	}
	return append([]models.MatchCandidate(nil), e.results...)
}

func threeResults() *stubEngine {
	return &stubEngine{results: []models.MatchCandidate{
		{Instrument: models.Instrument{Symbol: "MSFT", Name: "Microsoft Corporation"}, Score: 0.1, Tier: models.TierSymbolSubstring},
		{Instrument: models.Instrument{Symbol: "MS", Name: "Morgan Stanley"}, Score: 0.1, Tier: models.TierSymbolSubstring},
		{Instrument: models.Instrument{Symbol: "META", Name: "Meta Platforms Inc."}, Score: 0.6, Tier: models.TierFuzzy},
	}}
}

type resolveRecorder struct {
	symbols []string
}

func (r *resolveRecorder) onResolve(symbol string) {
	r.symbols = append(r.symbols, symbol)
}

func TestTextChangeOpensAndUppercases(t *testing.T) {
	engine := threeResults()
	c := NewController(engine, nil)

	c.Dispatch(TextChanged("ms"))
	s := c.State()
	assert.Equal(t, "MS", s.Query)
	assert.True(t, s.IsOpen)
	assert.True(t, s.Focused)
	assert.Len(t, s.Results, 3)
	assert.Equal(t, NoHighlight, s.Highlighted)
	assert.Equal(t, []string{"ms"}, engine.queries, "matcher receives the raw-cased text")
}

func TestBlankTextCloses(t *testing.T) {
	c := NewController(threeResults(), nil)

	c.Dispatch(TextChanged("ms"))
	for _, text := range []string{"", "   "} {
		c.Dispatch(TextChanged(text))
		s := c.State()
		assert.False(t, s.IsOpen, "text %q", text)
		assert.Empty(t, s.Results)
		assert.False(t, s.Visible())
	}
}

func TestTextChangeCapsInput(t *testing.T) {
	engine := threeResults()
	c := NewController(engine, nil)

	c.Dispatch(TextChanged("microsoft corporation"))
	assert.Equal(t, "MICROSOFT ", c.State().Query)
	assert.Equal(t, []string{"microsoft "}, engine.queries)
}

func TestKeyboardNavigationAndEscape(t *testing.T) {
	c := NewController(threeResults(), nil)

	c.Dispatch(TextChanged("ms"))
	c.Dispatch(ArrowDown())
	c.Dispatch(ArrowDown())
	assert.Equal(t, 1, c.State().Highlighted)

	c.Dispatch(Escape())
	s := c.State()
	assert.Equal(t, NoHighlight, s.Highlighted)
	assert.False(t, s.IsOpen)
	assert.False(t, s.Focused)
	assert.Equal(t, "MS", s.Query)
}

func TestArrowDownStopsAtLastRow(t *testing.T) {
	c := NewController(threeResults(), nil)

	c.Dispatch(TextChanged("ms"))
	for i := 0; i < 5; i++ {
		c.Dispatch(ArrowDown())
	}
	assert.Equal(t, 2, c.State().Highlighted)
}

func TestArrowUpStopsAtFirstRow(t *testing.T) {
	c := NewController(threeResults(), nil)

	c.Dispatch(TextChanged("ms"))
	c.Dispatch(ArrowUp())
	assert.Equal(t, 0, c.State().Highlighted)

	c.Dispatch(ArrowDown())
	c.Dispatch(ArrowDown())
	c.Dispatch(ArrowUp())
	assert.Equal(t, 1, c.State().Highlighted)
	c.Dispatch(ArrowUp())
	c.Dispatch(ArrowUp())
	assert.Equal(t, 0, c.State().Highlighted)
}

func TestArrowsIgnoredWhenClosed(t *testing.T) {
	c := NewController(threeResults(), nil)

	c.Dispatch(TextChanged("ms"))
	c.Dispatch(Escape())
	c.Dispatch(ArrowDown())
	c.Dispatch(ArrowUp())
	assert.Equal(t, NoHighlight, c.State().Highlighted)
}

func TestEnterOnHighlightSelects(t *testing.T) {
	rec := &resolveRecorder{}
	c := NewController(threeResults(), rec.onResolve)

	c.Dispatch(TextChanged("ms"))
	c.Dispatch(ArrowDown())
	effect := c.Dispatch(Enter())

	assert.Equal(t, Effect{Kind: EffectSelect, Symbol: "MSFT"}, effect)
	s := c.State()
	assert.Equal(t, "MSFT", s.Query)
	assert.False(t, s.IsOpen)
	assert.Empty(t, s.Results)
	assert.Equal(t, NoHighlight, s.Highlighted)
	assert.True(t, s.Focused)
	assert.Equal(t, []string{"MSFT"}, rec.symbols)
}

func TestEnterWithoutHighlightSubmits(t *testing.T) {
	rec := &resolveRecorder{}
	c := NewController(threeResults(), rec.onResolve)

	c.Dispatch(TextChanged("nvda "))
	effect := c.Dispatch(Enter())

	assert.Equal(t, Effect{Kind: EffectSubmit, Symbol: "NVDA"}, effect)
	assert.Equal(t, []string{"NVDA"}, rec.symbols)
	assert.False(t, c.State().IsOpen)
	assert.Equal(t, "NVDA ", c.State().Query)
}

func TestEnterWhenClosedSubmits(t *testing.T) {
	rec := &resolveRecorder{}
	c := NewController(threeResults(), rec.onResolve)

	c.Dispatch(TextChanged("ms"))
	c.Dispatch(ArrowDown())
	c.Dispatch(Escape())
	effect := c.Dispatch(Enter())

	assert.Equal(t, EffectSubmit, effect.Kind)
	assert.Equal(t, []string{"MS"}, rec.symbols)
}

func TestEnterWithEmptyResultsSubmits(t *testing.T) {
	rec := &resolveRecorder{}
	c := NewController(&stubEngine{}, rec.onResolve)

	c.Dispatch(TextChanged("zzz"))
	assert.True(t, c.State().IsOpen)
	assert.False(t, c.State().Visible())

	effect := c.Dispatch(Enter())
	assert.Equal(t, Effect{Kind: EffectSubmit, Symbol: "ZZZ"}, effect)
	assert.Equal(t, []string{"ZZZ"}, rec.symbols)
}

func TestEnterOnBlankInputResolvesNothing(t *testing.T) {
	rec := &resolveRecorder{}
	c := NewController(threeResults(), rec.onResolve)

	effect := c.Dispatch(Enter())
	assert.False(t, effect.Resolved())
	c.Dispatch(TextChanged("  "))
	effect = c.Dispatch(Enter())
	assert.False(t, effect.Resolved())
	assert.Empty(t, rec.symbols)
}

func TestPointerSelection(t *testing.T) {
	rec := &resolveRecorder{}
	c := NewController(threeResults(), rec.onResolve)

	c.Dispatch(TextChanged("m"))
	effect := c.Dispatch(Selected(0))

	assert.Equal(t, Effect{Kind: EffectSelect, Symbol: "MSFT"}, effect)
	s := c.State()
	assert.Equal(t, "MSFT", s.Query)
	assert.False(t, s.IsOpen)
	assert.Empty(t, s.Results)
	assert.Equal(t, []string{"MSFT"}, rec.symbols)

	// out of range clicks are ignored
	c.Dispatch(TextChanged("m"))
	assert.False(t, c.Dispatch(Selected(7)).Resolved())
	assert.Len(t, rec.symbols, 1)
}

func TestSelectIgnoredWhenClosed(t *testing.T) {
	rec := &resolveRecorder{}
	c := NewController(threeResults(), rec.onResolve)

	c.Dispatch(TextChanged("ms"))
	c.Dispatch(Escape())
	require.Len(t, c.State().Results, 3)

	effect := c.Dispatch(Selected(0))
	assert.False(t, effect.Resolved())
	assert.Equal(t, EffectNone, effect.Kind)
	assert.Equal(t, "MS", c.State().Query)
	assert.Empty(t, rec.symbols)
}

func TestHoverMovesHighlight(t *testing.T) {
	c := NewController(threeResults(), nil)

	c.Dispatch(TextChanged("m"))
	c.Dispatch(Hovered(2))
	assert.Equal(t, 2, c.State().Highlighted)
	c.Dispatch(Hovered(9))
	assert.Equal(t, 2, c.State().Highlighted)
}

func TestOutsideClosesKeepsQuery(t *testing.T) {
	c := NewController(threeResults(), nil)

	c.Dispatch(TextChanged("ms"))
	c.Dispatch(ArrowDown())
	c.Dispatch(Outside())

	s := c.State()
	assert.False(t, s.IsOpen)
	assert.Equal(t, NoHighlight, s.Highlighted)
	assert.Equal(t, "MS", s.Query)
}

func TestFocusReopensWithoutTouchingHighlight(t *testing.T) {
	engine := threeResults()
	c := NewController(engine, nil)

	c.Dispatch(FocusGained())
	assert.False(t, c.State().IsOpen, "empty query stays closed")
	assert.Empty(t, engine.queries)

	c.Dispatch(TextChanged("ms"))
	c.Dispatch(ArrowDown())
	c.Dispatch(Outside())
	c.Dispatch(FocusGained())

	s := c.State()
	assert.True(t, s.IsOpen)
	assert.True(t, s.Focused)
	assert.Len(t, s.Results, 3)
	assert.Equal(t, NoHighlight, s.Highlighted)

	c.Dispatch(ArrowDown())
	c.Dispatch(ArrowDown())
	c.Dispatch(FocusGained())
	assert.Equal(t, 1, c.State().Highlighted)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	engine := threeResults()
	s, _ := Reduce(NewState(), TextChanged("ms"), engine)
	before := append([]models.MatchCandidate(nil), s.Results...)

	next, effect := Reduce(s, Selected(1), engine)
	assert.Equal(t, "MS", effect.Symbol)
	assert.Empty(t, next.Results)
	assert.Equal(t, before, s.Results)
	assert.True(t, s.IsOpen)
}

func TestControllerWithMatcher(t *testing.T) {
	cat, err := loader.Builtin()
	require.NoError(t, err)
	rec := &resolveRecorder{}
	c := NewController(search.NewMatcher(cat), rec.onResolve)

	c.Dispatch(TextChanged("apple"))
	s := c.State()
	require.True(t, s.Visible())
	assert.Equal(t, "APPLE", s.Query)
	assert.Equal(t, "AAPL", s.Results[0].Instrument.Symbol)

	c.Dispatch(ArrowDown())
	c.Dispatch(Enter())
	assert.Equal(t, []string{"AAPL"}, rec.symbols)
	assert.Equal(t, "AAPL", c.State().Query)
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "arrow_down", EventArrowDown.String())
	assert.Equal(t, "outside", EventOutside.String())
	assert.Equal(t, "unknown", EventKind(42).String())
}
