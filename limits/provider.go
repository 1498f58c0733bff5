package limits

import (
	"fmt"
	"strings"
)

// Provider identifies an LLM vendor integration.
//
// The set of providers is closed: adding a new one means adding a constant
// here, an entry in providerOrder, a defaults table, and a legacy fallback.
// Switches over Provider should list every constant so the compiler (via
// exhaustiveness linters) catches additions.
type Provider string

// Supported providers.
const (
	OpenAI    Provider = "openai"
	Anthropic Provider = "anthropic"
	Google    Provider = "google"
	Ollama    Provider = "ollama"
)

// providerOrder fixes the iteration order used by reverse lookups.
// Reverse lookup by model id alone is ambiguous if two providers register
// the same id; the first provider in this order wins. Callers that need
// determinism beyond this ordering must supply the provider explicitly.
var providerOrder = []Provider{OpenAI, Anthropic, Google, Ollama}

// Providers returns all supported providers in lookup order.
func Providers() []Provider {
	out := make([]Provider, len(providerOrder))
	copy(out, providerOrder)
	return out
}

// String returns the provider's canonical lowercase name.
func (p Provider) String() string {
	return string(p)
}

// Valid reports whether p is one of the supported providers.
func (p Provider) Valid() bool {
	switch p {
	case OpenAI, Anthropic, Google, Ollama:
		return true
	default:
		return false
	}
}

// ParseProvider converts a string to a Provider.
// Matching is case-insensitive and accepts common aliases
// ("gpt" for openai, "claude" for anthropic, "gemini" for google).
func ParseProvider(s string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "openai", "gpt":
		return OpenAI, nil
	case "anthropic", "claude":
		return Anthropic, nil
	case "google", "gemini":
		return Google, nil
	case "ollama", "local":
		return Ollama, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
	}
}
