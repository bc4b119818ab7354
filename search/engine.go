package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"ticker-search/catalog"
	"ticker-search/models"
)

const (
	// MaxResults bounds the number of candidates returned per query.
	MaxResults = 8
	// MaxQueryLength caps user input before matching; longer input is truncated.
	MaxQueryLength = 64

	AliasScore     = 0.0
	SubstringScore = 0.1
)

// Engine ranks catalog instruments for a free-text query.
type Engine interface {
	Search(query string) []models.MatchCandidate
}

// Matcher is the three-tier Engine: alias exact match, symbol substring,
// then fuzzy over symbol, name and sector. It holds no mutable state and is
// safe for concurrent use.
type Matcher struct {
	catalog   *catalog.Catalog
	fields    []FieldWeight
	threshold float64
	limit     int
}

type Option func(*Matcher)

func WithFields(fields []FieldWeight) Option {
	return func(m *Matcher) { m.fields = fields }
}

func WithThreshold(t float64) Option {
	return func(m *Matcher) { m.threshold = t }
}

func WithLimit(n int) Option {
	return func(m *Matcher) {
		if n > 0 {
			m.limit = n
		}
	}
}

func NewMatcher(cat *catalog.Catalog, opts ...Option) *Matcher {
	m := &Matcher{
		catalog:   cat,
		fields:    DefaultFields,
		threshold: Threshold,
		limit:     MaxResults,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Search returns at most limit candidates with unique symbols, sorted by
// ascending score. An empty or blank query yields no candidates.
func (m *Matcher) Search(query string) []models.MatchCandidate {
	q := Sanitize(query)
	if q == "" {
		return []models.MatchCandidate{}
	}
	qLower := strings.ToLower(q)

	var combined []models.MatchCandidate

	// 1. Alias exact match
	if inst, ok := m.catalog.LookupAlias(qLower); ok {
		combined = append(combined, models.MatchCandidate{
			Instrument: inst,
			Score:      AliasScore,
			Tier:       models.TierAliasExact,
		})
	}

	// 2. Symbol substring
	m.catalog.Each(func(inst models.Instrument) {
		if strings.Contains(strings.ToLower(inst.Symbol), qLower) {
			combined = append(combined, models.MatchCandidate{
				Instrument: inst,
				Score:      SubstringScore,
				Tier:       models.TierSymbolSubstring,
			})
		}
	})

	// 3. Fuzzy
	scorer := newFuzzyScorer(qLower, m.fields, m.threshold)
	m.catalog.Each(func(inst models.Instrument) {
		if score, ok := scorer.score(inst); ok {
			combined = append(combined, models.MatchCandidate{
				Instrument: inst,
				Score:      score,
				Tier:       models.TierFuzzy,
			})
		}
	})

	results := dedupe(combined)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})
	if len(results) > m.limit {
		results = results[:m.limit]
	}
	return results
}

// dedupe keeps the first candidate per symbol, so earlier tiers win.
func dedupe(candidates []models.MatchCandidate) []models.MatchCandidate {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]models.MatchCandidate, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.Instrument.Symbol]; ok {
			continue
		}
		seen[c.Instrument.Symbol] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Sanitize trims surrounding whitespace and truncates to MaxQueryLength runes.
func Sanitize(query string) string {
	q := strings.TrimSpace(query)
	if utf8.RuneCountInString(q) > MaxQueryLength {
		q = strings.TrimSpace(string([]rune(q)[:MaxQueryLength]))
	}
	return q
}
