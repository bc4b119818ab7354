package search

import (
	"strings"

	"ticker-search/models"
)

// Threshold is the largest normalized distance at which a field still matches
// (0 = exact, 1 = anything).
const Threshold = 0.4

// FieldWeight assigns a relative weight to one instrument field.
type FieldWeight struct {
	Name   string
	Weight float64
	Get    func(models.Instrument) string
}

// DefaultFields are the fuzzy keys: symbol .4, name .3, sector .1.
var DefaultFields = []FieldWeight{
	{Name: "symbol", Weight: 0.4, Get: func(i models.Instrument) string { return i.Symbol }},
	{Name: "name", Weight: 0.3, Get: func(i models.Instrument) string { return i.Name }},
	{Name: "sector", Weight: 0.1, Get: func(i models.Instrument) string { return i.Sector }},
}

// fuzzyScorer scores instruments against one lowercased query.
type fuzzyScorer struct {
	pattern   []rune
	fields    []FieldWeight
	weights   []float64 // normalized to sum 1
	threshold float64
}

func newFuzzyScorer(queryLower string, fields []FieldWeight, threshold float64) *fuzzyScorer {
	total := 0.0
	for _, f := range fields {
		total += f.Weight
	}
	weights := make([]float64, len(fields))
	for i, f := range fields {
		if total > 0 {
			weights[i] = f.Weight / total
		}
	}
	return &fuzzyScorer{
		pattern:   []rune(queryLower),
		fields:    fields,
		weights:   weights,
		threshold: threshold,
	}
}

// score returns the weighted distance of inst and whether any field matched.
// Unmatched fields contribute their full weight.
func (s *fuzzyScorer) score(inst models.Instrument) (float64, bool) {
	if len(s.pattern) == 0 {
		return 0, false
	}
	total, matched := 0.0, false
	for i, f := range s.fields {
		d := s.fieldDistance(f.Get(inst))
		if d <= s.threshold {
			matched = true
			total += s.weights[i] * d
		} else {
			total += s.weights[i]
		}
	}
	return total, matched
}

func (s *fuzzyScorer) fieldDistance(field string) float64 {
	if field == "" {
		return 1
	}
	d := substringDistance(s.pattern, []rune(strings.ToLower(field)))
	n := float64(d) / float64(len(s.pattern))
	if n > 1 {
		return 1
	}
	return n
}

// substringDistance is the smallest optimal-string-alignment distance between
// pattern and any substring of text. Leading and trailing text is free, so
// the position of the match does not matter.
func substringDistance(pattern, text []rune) int {
	m, n := len(pattern), len(text)
	if m == 0 {
		return 0
	}
	if n == 0 {
		return m
	}

	// rows[i][j]: distance of pattern[:i] against a substring of text ending at j.
	prev2 := make([]int, n+1)
	prev := make([]int, n+1) // row 0 is all zeros: a match may start anywhere
	cur := make([]int, n+1)

	for i := 1; i <= m; i++ {
		cur[0] = i
		for j := 1; j <= n; j++ {
			cost := 1
			if pattern[i-1] == text[j-1] {
				cost = 0
			}
			v := min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && pattern[i-1] == text[j-2] && pattern[i-2] == text[j-1] {
				v = min(v, prev2[j-2]+1)
			}
			cur[j] = v
		}
		prev2, prev, cur = prev, cur, prev2
	}

	best := prev[0]
	for _, v := range prev[1:] {
		best = min(best, v)
	}
	return best
}
