package autocomplete

import (
	"github.com/rs/zerolog/log"

	"ticker-search/models"
	"ticker-search/search"
)

// Controller owns a State and feeds events through Reduce one at a time.
// It is not safe for concurrent use; events are expected from a single loop.
type Controller struct {
	engine    search.Engine
	state     State
	onResolve func(symbol string)
}

// NewController creates a controller. onResolve is called exactly once for
// every submit or selection and may be nil.
func NewController(engine search.Engine, onResolve func(symbol string)) *Controller {
	return &Controller{
		engine:    engine,
		state:     NewState(),
		onResolve: onResolve,
	}
}

func (c *Controller) Dispatch(ev Event) Effect {
	next, effect := Reduce(c.state, ev, c.engine)
	c.state = next

	if effect.Resolved() {
		log.Debug().
			Str("event", ev.Kind.String()).
			Str("symbol", effect.Symbol).
			Bool("selected", effect.Kind == EffectSelect).
			Msg("ticker resolved")
		if c.onResolve != nil {
			c.onResolve(effect.Symbol)
		}
	}
	return effect
}

// State returns a snapshot; the Results slice is copied.
func (c *Controller) State() State {
	s := c.state
	s.Results = append([]models.MatchCandidate(nil), c.state.Results...)
	if s.Results == nil {
		s.Results = []models.MatchCandidate{}
	}
	return s
}
