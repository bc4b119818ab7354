package models

import "fmt"

type Instrument struct {
	Symbol string `json:"symbol" yaml:"symbol"`
	Name   string `json:"name" yaml:"name"`
	Sector string `json:"sector" yaml:"sector"` // e.g., "Technology", "Banking", "ETF"
}

// Tier identifies which matching strategy produced a candidate.
// Declaration order is also the precedence order used for dedupe.
type Tier int

const (
	TierAliasExact Tier = iota
	TierSymbolSubstring
	TierFuzzy
)

func (t Tier) String() string {
	switch t {
	case TierAliasExact:
		return "alias"
	case TierSymbolSubstring:
		return "substring"
	case TierFuzzy:
		return "fuzzy"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(b []byte) error {
	switch string(b) {
	case "alias":
		*t = TierAliasExact
	case "substring":
		*t = TierSymbolSubstring
	case "fuzzy":
		*t = TierFuzzy
	default:
		return fmt.Errorf("unknown tier %q", string(b))
	}
	return nil
}

// MatchCandidate is one ranked search hit. Lower Score is a stronger match.
type MatchCandidate struct {
	Instrument Instrument `json:"instrument"`
	Score      float64    `json:"score"`
	Tier       Tier       `json:"tier"`
}
