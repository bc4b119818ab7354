package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfig matches every *ConfigError via errors.Is.
var ErrConfig = errors.New("catalog configuration error")

// Problem is a single validation failure found while building a catalog.
type Problem struct {
	Alias   string // set for alias problems
	Symbol  string
	Message string
}

func (p Problem) String() string {
	if p.Alias != "" {
		return fmt.Sprintf("alias %q -> %q: %s", p.Alias, p.Symbol, p.Message)
	}
	return fmt.Sprintf("symbol %q: %s", p.Symbol, p.Message)
}

// ConfigError is returned by New when the instrument list or alias table is
// inconsistent. A catalog is never returned alongside it.
type ConfigError struct {
	Problems []Problem
}

func (e *ConfigError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.String()
	}
	return fmt.Sprintf("invalid catalog: %s", strings.Join(parts, "; "))
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
