package limits

import "errors"

// Sentinel errors for registry lookups.
var (
	// ErrModelNotFound indicates the (provider, model) pair is not registered.
	ErrModelNotFound = errors.New("model not registered")

	// ErrUnknownProvider indicates a provider name that could not be parsed.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrInvalidOverride indicates an override file entry that could not be applied.
	ErrInvalidOverride = errors.New("invalid limits override")
)
