package tokens

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/contextfit/contextfit/limits"
)

// Counter estimates or measures token counts for text.
type Counter interface {
	// Count returns the number of tokens in the given text.
	Count(text string) int

	// FitsInLimit returns true if the text fits within the token limit.
	FitsInLimit(text string, limit int) bool
}

// safetyPad is the flat over-count applied to every estimate. Under-counting
// input risks silent truncation or provider-side rejection, so the estimator
// is biased to over-count.
const safetyPad = 1.10

// punctTokenWeight approximates how often a punctuation mark becomes its own
// token on top of the word it is attached to.
const punctTokenWeight = 0.25

// numberTokenWeight approximates the extra tokens BPE tokenizers spend
// splitting digit runs.
const numberTokenWeight = 0.5

// Profile tunes the estimator for one vendor's tokenization density.
type Profile struct {
	// TokensPerWord is the average tokens produced per whitespace-separated
	// word of English text.
	TokensPerWord float64

	// CharsPerToken is the average characters consumed per token.
	CharsPerToken float64
}

// profiles holds empirical ratios per provider. GPT and Claude tokenizers
// behave similarly on English text; SentencePiece-based tokenizers (Gemini,
// most Ollama models) run slightly denser per word.
var profiles = map[limits.Provider]Profile{
	limits.OpenAI:    {TokensPerWord: 1.30, CharsPerToken: 4.0},
	limits.Anthropic: {TokensPerWord: 1.30, CharsPerToken: 4.0},
	limits.Google:    {TokensPerWord: 1.40, CharsPerToken: 4.0},
	limits.Ollama:    {TokensPerWord: 1.40, CharsPerToken: 3.5},
}

// defaultProfile is the conservative middle ground for unknown providers.
var defaultProfile = Profile{TokensPerWord: 1.35, CharsPerToken: 4.0}

// ProfileFor returns the estimation profile for a provider.
func ProfileFor(provider limits.Provider) Profile {
	if p, ok := profiles[provider]; ok {
		return p
	}
	return defaultProfile
}

// Estimator is a heuristic token counter. It is synchronous, never fails,
// and is the total fallback behind every exact counting path.
//
// The estimate combines a word-based and a character-based figure (taking
// the larger), adds adjustments for punctuation marks and digit runs, then
// applies a flat +10% pad and rounds up. The result is non-decreasing in
// text length for a fixed profile.
type Estimator struct {
	profile Profile
}

// NewEstimator creates an estimator tuned for the given provider.
func NewEstimator(provider limits.Provider) *Estimator {
	return &Estimator{profile: ProfileFor(provider)}
}

// NewEstimatorWithProfile creates an estimator with custom ratios.
// Non-positive ratios fall back to the defaults.
func NewEstimatorWithProfile(p Profile) *Estimator {
	if p.TokensPerWord <= 0 {
		p.TokensPerWord = defaultProfile.TokensPerWord
	}
	if p.CharsPerToken <= 0 {
		p.CharsPerToken = defaultProfile.CharsPerToken
	}
	return &Estimator{profile: p}
}

// Count estimates the number of tokens in the given text.
func (e *Estimator) Count(text string) int {
	if text == "" {
		return 0
	}

	words := len(strings.Fields(text))
	runes := utf8.RuneCountInString(text)

	wordEstimate := float64(words) * e.profile.TokensPerWord
	charEstimate := float64(runes) / e.profile.CharsPerToken

	estimate := math.Max(wordEstimate, charEstimate)
	estimate += float64(countPunct(text)) * punctTokenWeight
	estimate += float64(countNumberRuns(text)) * numberTokenWeight
	estimate *= safetyPad

	return int(math.Ceil(estimate))
}

// FitsInLimit returns true if the text fits within the token limit.
func (e *Estimator) FitsInLimit(text string, limit int) bool {
	return e.Count(text) <= limit
}

// Profile returns the estimator's tuning.
func (e *Estimator) Profile() Profile {
	return e.profile
}

// EstimateTokens is a convenience function using the default profile.
func EstimateTokens(text string) int {
	return NewEstimatorWithProfile(defaultProfile).Count(text)
}

// countPunct counts punctuation and symbol runes.
func countPunct(text string) int {
	n := 0
	for _, r := range text {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			n++
		}
	}
	return n
}

// countNumberRuns counts maximal runs of consecutive digits.
func countNumberRuns(text string) int {
	n := 0
	inRun := false
	for _, r := range text {
		switch {
		case unicode.IsDigit(r) && !inRun:
			n++
			inRun = true
		case !unicode.IsDigit(r):
			inRun = false
		}
	}
	return n
}
