package credentials

import (
	"errors"
	"fmt"
	"os"
)

// PulseAPIKey is the credential sent to the sentiment backend, when set.
const PulseAPIKey = "PULSE_API_KEY"

// ErrNotFound is returned when a provider has no value for a key.
var ErrNotFound = errors.New("credential not found")

// Provider defines the interface for credential providers
type Provider interface {
	GetCredential(key string) (string, error)
}

// EnvProvider retrieves credentials from environment variables
type EnvProvider struct{}

func NewEnvProvider() *EnvProvider {
	return &EnvProvider{}
}

func (p *EnvProvider) GetCredential(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return value, nil
}

// StaticProvider for testing with hardcoded credentials
type StaticProvider struct {
	credentials map[string]string
}

func NewStaticProvider(creds map[string]string) *StaticProvider {
	return &StaticProvider{
		credentials: creds,
	}
}

func (p *StaticProvider) GetCredential(key string) (string, error) {
	value, ok := p.credentials[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return value, nil
}

// Optional returns the credential or "" when it is not configured. Other
// provider failures are returned.
func Optional(p Provider, key string) (string, error) {
	if p == nil {
		return "", nil
	}
	value, err := p.GetCredential(key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return value, err
}
