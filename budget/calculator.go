package budget

import (
	"math"

	"github.com/contextfit/contextfit/limits"
	"github.com/contextfit/contextfit/tokens"
)

// defaultMarginPct is the safety margin applied when the caller does not
// supply one: 5% of the model's context window. It absorbs tokenizer
// estimation error and per-request framing overhead.
const defaultMarginPct = 5

// nearLimitPct is the context-utilization percentage at which callers get
// an early warning. It is advisory, not a hard cap.
const nearLimitPct = 85.0

// Calculator combines registry limits and token counts into per-request
// budgets. Construct it with the registry and counter owned by your
// composition root; the calculator itself is stateless and safe for
// concurrent use.
type Calculator struct {
	registry *limits.Registry
	counter  *tokens.TokenCounter
}

// NewCalculator creates a calculator over the given registry and counter.
func NewCalculator(registry *limits.Registry, counter *tokens.TokenCounter) *Calculator {
	return &Calculator{registry: registry, counter: counter}
}

// SafeMaxResult is the outcome of SafeMaxTokens.
type SafeMaxResult struct {
	// MaxTokens is the clamped output cap for the request.
	MaxTokens int

	// Margin is the safety margin that was applied, in tokens.
	Margin int

	// Limits are the effective limits the clamp was computed against.
	Limits limits.EffectiveLimits

	// OK is true iff prompt + MaxTokens + Margin fit inside the context
	// window. When false, MaxTokens is still the best achievable value
	// (possibly zero) and the caller decides whether to proceed.
	OK bool
}

// SafeMaxTokens clamps a desired output size so the whole request fits the
// model's context window with a safety margin.
//
//	MaxTokens = clamp(desired, 0, min(MaxOutputEff, context - prompt - margin))
//
// safetyMarginTokens <= 0 selects the default margin of 5% of context.
// Fails only when the (provider, model) pair is unregistered.
func (c *Calculator) SafeMaxTokens(provider limits.Provider, model string, promptTokens, desiredOutputTokens, safetyMarginTokens int) (SafeMaxResult, error) {
	eff, err := c.registry.EffectiveLimits(provider, model)
	if err != nil {
		return SafeMaxResult{}, err
	}

	margin := safetyMarginTokens
	if margin <= 0 {
		margin = eff.Context * defaultMarginPct / 100
	}

	maxTokens := desiredOutputTokens
	if maxTokens > eff.MaxOutputEff {
		maxTokens = eff.MaxOutputEff
	}
	if available := eff.Context - promptTokens - margin; maxTokens > available {
		maxTokens = available
	}
	if maxTokens < 0 {
		maxTokens = 0
	}

	return SafeMaxResult{
		MaxTokens: maxTokens,
		Margin:    margin,
		Limits:    eff,
		OK:        promptTokens+maxTokens+margin <= eff.Context,
	}, nil
}

// MaxDocTokensPerRequest returns the largest document-body token allowance
// that can accompany a fixed instructions overhead plus a reserved output
// allowance without exceeding the context window. Never negative.
func (c *Calculator) MaxDocTokensPerRequest(provider limits.Provider, model string, instructionsTokens, desiredOutputTokens, safetyMarginTokens int) (int, error) {
	eff, err := c.registry.EffectiveLimits(provider, model)
	if err != nil {
		return 0, err
	}

	margin := safetyMarginTokens
	if margin <= 0 {
		margin = eff.Context * defaultMarginPct / 100
	}

	output := desiredOutputTokens
	if output > eff.MaxOutputEff {
		output = eff.MaxOutputEff
	}

	budget := eff.Context - instructionsTokens - output - margin
	if budget < 0 {
		budget = 0
	}
	return budget, nil
}

// ChunkEstimate describes how a document splits across requests.
// All fields zero means the per-request capacity is zero — a configuration
// problem the caller must surface explicitly, not proceed past.
type ChunkEstimate struct {
	EstimatedChunks     int
	TokensPerChunk      int
	TotalRequestsNeeded int
}

// EstimateOptimalChunks predicts how many requests a document of
// totalDocumentTokens needs under the given instruction/output overheads.
func (c *Calculator) EstimateOptimalChunks(provider limits.Provider, model string, totalDocumentTokens, instructionsTokens, desiredOutputTokens, safetyMarginTokens int) (ChunkEstimate, error) {
	perChunk, err := c.MaxDocTokensPerRequest(provider, model, instructionsTokens, desiredOutputTokens, safetyMarginTokens)
	if err != nil {
		return ChunkEstimate{}, err
	}
	if perChunk <= 0 {
		// Zero capacity is a sentinel, not an error: the overheads alone
		// exhaust the context window.
		return ChunkEstimate{}, nil
	}

	chunks := int(math.Ceil(float64(totalDocumentTokens) / float64(perChunk)))
	if chunks < 1 {
		chunks = 1
	}

	return ChunkEstimate{
		EstimatedChunks:     chunks,
		TokensPerChunk:      perChunk,
		TotalRequestsNeeded: chunks,
	}, nil
}

// Utilization reports how much of the context window a request consumes.
type Utilization struct {
	// Percent is (prompt + output) / context * 100.
	Percent float64

	// Remaining is the unused context in tokens, floored at zero.
	Remaining int

	// IsNearLimit is true at or above 85% utilization. Early warning only.
	IsNearLimit bool
}

// ContextUtilization computes the utilization of the model's context window
// for the given prompt and output sizes.
func (c *Calculator) ContextUtilization(provider limits.Provider, model string, promptTokens, outputTokens int) (Utilization, error) {
	eff, err := c.registry.EffectiveLimits(provider, model)
	if err != nil {
		return Utilization{}, err
	}

	used := promptTokens + outputTokens
	remaining := eff.Context - used
	if remaining < 0 {
		remaining = 0
	}

	pct := float64(used) / float64(eff.Context) * 100

	return Utilization{
		Percent:     pct,
		Remaining:   remaining,
		IsNearLimit: pct >= nearLimitPct,
	}, nil
}
