package truncate

import (
	"github.com/contextfit/contextfit/limits"
	"github.com/contextfit/contextfit/tokens"
)

// Strategy defines where content is removed from.
type Strategy int

const (
	// FromEnd removes content from the end (default).
	FromEnd Strategy = iota

	// FromMiddle removes content from the middle, keeping start and end.
	FromMiddle

	// FromStart removes content from the start.
	FromStart
)

// DefaultEndMarker is the default marker for end truncation.
const DefaultEndMarker = "..."

// DefaultMiddleMarker is the default marker for middle truncation.
const DefaultMiddleMarker = "\n...[content truncated]...\n"

// DefaultStartMarker is the default marker for start truncation.
const DefaultStartMarker = "..."

// Truncator reduces text to fit within token limits. It works against the
// tokens.Counter interface, so callers can plug in the provider-tuned
// estimator or any exact counter. The typical use is hard-fitting fixed
// instructions or a preamble into whatever budget.MaxDocTokensPerRequest
// left over.
type Truncator struct {
	counter  tokens.Counter
	strategy Strategy
	marker   string
}

// New creates a truncator with the given strategy and the default
// provider-agnostic estimator.
func New(strategy Strategy) *Truncator {
	marker := DefaultEndMarker
	if strategy == FromMiddle {
		marker = DefaultMiddleMarker
	}
	return &Truncator{
		counter:  tokens.NewEstimatorWithProfile(tokens.Profile{}),
		strategy: strategy,
		marker:   marker,
	}
}

// NewForProvider creates a truncator whose sizing uses the estimator tuned
// for the given provider's tokenization density.
func NewForProvider(strategy Strategy, provider limits.Provider) *Truncator {
	t := New(strategy)
	t.counter = tokens.NewEstimator(provider)
	return t
}

// NewFromEnd creates a truncator that removes content from the end.
func NewFromEnd() *Truncator {
	return New(FromEnd)
}

// NewFromMiddle creates a truncator that removes content from the middle.
func NewFromMiddle() *Truncator {
	return New(FromMiddle)
}

// NewFromStart creates a truncator that removes content from the start.
func NewFromStart() *Truncator {
	return New(FromStart)
}

// WithCounter sets a custom token counter.
func (t *Truncator) WithCounter(counter tokens.Counter) *Truncator {
	t.counter = counter
	return t
}

// WithMarker sets a custom truncation marker.
func (t *Truncator) WithMarker(marker string) *Truncator {
	t.marker = marker
	return t
}

// Truncate reduces the text to fit within the token limit.
// Returns the truncated text and whether truncation occurred.
func (t *Truncator) Truncate(text string, maxTokens int) (string, bool) {
	if t.counter.FitsInLimit(text, maxTokens) {
		return text, false
	}

	switch t.strategy {
	case FromMiddle:
		return t.truncateMiddle(text, maxTokens), true
	case FromStart:
		return t.truncateStart(text, maxTokens), true
	default:
		return t.truncateEnd(text, maxTokens), true
	}
}

// Strategy returns the truncator's strategy.
func (t *Truncator) Strategy() Strategy {
	return t.strategy
}

// Marker returns the truncator's marker.
func (t *Truncator) Marker() string {
	return t.marker
}

// ToTokens truncates text to fit within the token limit using end
// truncation and the default estimator.
func ToTokens(text string, maxTokens int) string {
	result, _ := NewFromEnd().Truncate(text, maxTokens)
	return result
}
