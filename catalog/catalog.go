// Package catalog holds the immutable set of instruments the matcher ranks
// and the alias table mapping common names to canonical symbols.
package catalog

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2/search"

	"ticker-search/models"
)

// MaxSymbolLength is the longest symbol accepted at load.
const MaxSymbolLength = 10

// suggestDistance bounds how far a symbol may be from a dangling alias target
// to be offered as a suggestion.
const suggestDistance = 2

type Catalog struct {
	instruments []models.Instrument
	bySymbol    map[string]int
	aliases     map[string]string
}

// New validates instruments and aliases and returns a read-only catalog.
// Alias keys are trimmed and lowercased. Any problem yields a *ConfigError
// and a nil catalog.
func New(instruments []models.Instrument, aliases map[string]string) (*Catalog, error) {
	c := &Catalog{
		instruments: make([]models.Instrument, 0, len(instruments)),
		bySymbol:    make(map[string]int, len(instruments)),
		aliases:     make(map[string]string, len(aliases)),
	}

	var problems []Problem
	for _, inst := range instruments {
		if msg := checkSymbol(inst.Symbol); msg != "" {
			problems = append(problems, Problem{Symbol: inst.Symbol, Message: msg})
			continue
		}
		if _, dup := c.bySymbol[inst.Symbol]; dup {
			problems = append(problems, Problem{Symbol: inst.Symbol, Message: "duplicate symbol"})
			continue
		}
		c.bySymbol[inst.Symbol] = len(c.instruments)
		c.instruments = append(c.instruments, inst)
	}

	// Sorted so the reported problem list is stable.
	keys := make([]string, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	seen := make(map[string]string, len(keys))
	for _, raw := range keys {
		symbol := aliases[raw]
		key := strings.ToLower(strings.TrimSpace(raw))
		if key == "" {
			problems = append(problems, Problem{Alias: raw, Symbol: symbol, Message: "empty alias"})
			continue
		}
		if prev, ok := seen[key]; ok {
			problems = append(problems, Problem{Alias: raw, Symbol: symbol, Message: fmt.Sprintf("duplicate alias (same key as %q)", prev)})
			continue
		}
		seen[key] = raw
		if _, ok := c.bySymbol[symbol]; !ok {
			msg := "unknown symbol"
			if s := c.suggest(symbol); s != "" {
				msg += ", did you mean " + s + "?"
			}
			problems = append(problems, Problem{Alias: raw, Symbol: symbol, Message: msg})
			continue
		}
		c.aliases[key] = symbol
	}

	if len(problems) > 0 {
		return nil, &ConfigError{Problems: problems}
	}
	return c, nil
}

func checkSymbol(symbol string) string {
	switch n := utf8.RuneCountInString(symbol); {
	case n == 0:
		return "empty symbol"
	case n > MaxSymbolLength:
		return "symbol longer than 10 characters"
	}
	if strings.ToUpper(symbol) != symbol {
		return "symbol must be uppercase"
	}
	return ""
}

// suggest returns the closest catalog symbol to target, or "" when nothing is
// within suggestDistance edits.
func (c *Catalog) suggest(target string) string {
	best, bestDist := "", suggestDistance+1
	upper := strings.ToUpper(target)
	for _, inst := range c.instruments {
		if d := search.LevenshteinDistance(upper, inst.Symbol); d < bestDist {
			best, bestDist = inst.Symbol, d
		}
	}
	return best
}

// LookupAlias resolves an already lowercased, trimmed query against the alias table.
func (c *Catalog) LookupAlias(queryLower string) (models.Instrument, bool) {
	symbol, ok := c.aliases[queryLower]
	if !ok {
		return models.Instrument{}, false
	}
	return c.instruments[c.bySymbol[symbol]], true
}

// All returns the instruments in insertion order. The slice is a copy.
func (c *Catalog) All() []models.Instrument {
	out := make([]models.Instrument, len(c.instruments))
	copy(out, c.instruments)
	return out
}

func (c *Catalog) BySymbol(symbol string) (models.Instrument, bool) {
	i, ok := c.bySymbol[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return models.Instrument{}, false
	}
	return c.instruments[i], true
}

// Aliases returns a copy of the normalized alias table.
func (c *Catalog) Aliases() map[string]string {
	out := make(map[string]string, len(c.aliases))
	for k, v := range c.aliases {
		out[k] = v
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.instruments)
}

// Each iterates instruments in order without copying. Used by the matcher.
func (c *Catalog) Each(fn func(models.Instrument)) {
	for _, inst := range c.instruments {
		fn(inst)
	}
}
