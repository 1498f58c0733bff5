package budget

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/contextfit/contextfit/limits"
)

// minDynamicMaxTokens is the floor enforced on every dynamic max-token
// decision. A cap below this produces useless completions.
const minDynamicMaxTokens = 100

// mobileOutputFactor shrinks the output cap on mobile clients, where long
// completions are slow to stream and rarely read in full.
const mobileOutputFactor = 0.85

// DynamicRequest carries everything known about an outbound request at the
// moment its max_tokens value must be decided.
type DynamicRequest struct {
	Provider limits.Provider
	Model    string

	// IsMobile shrinks the cap by 15%.
	IsMobile bool

	// ConfiguredMaxTokens is a user- or platform-imposed cap.
	// Values <= 0 mean unconfigured.
	ConfiguredMaxTokens int

	// PromptTokens, when positive, lets the decision account for the actual
	// prompt size. Values <= 0 mean unknown.
	PromptTokens int
}

// DynamicMaxTokens is the single externally-facing decision used before
// issuing a real request. Each step of the clamp chain only tightens the
// cap: effective output limit, then the configured cap, then the mobile
// factor, then a recomputation against the known prompt size.
//
// The function is total: on any internal failure (typically an unregistered
// model) it falls back to the legacy per-provider table, still applying the
// mobile factor. A floor of 100 tokens is always enforced.
func (c *Calculator) DynamicMaxTokens(req DynamicRequest) int {
	maxTokens, err := c.dynamicMaxTokens(req)
	if err != nil {
		maxTokens = c.registry.LegacyMaxTokens(req.Provider, req.Model)
		if req.IsMobile {
			maxTokens = int(float64(maxTokens) * mobileOutputFactor)
		}
		slog.Warn("dynamic max tokens fell back to legacy table",
			slog.String("provider", req.Provider.String()),
			slog.String("model", req.Model),
			slog.Int("max_tokens", maxTokens),
			slog.Any("error", err))
	}

	if maxTokens < minDynamicMaxTokens {
		maxTokens = minDynamicMaxTokens
	}
	return maxTokens
}

func (c *Calculator) dynamicMaxTokens(req DynamicRequest) (int, error) {
	eff, err := c.registry.EffectiveLimits(req.Provider, req.Model)
	if err != nil {
		return 0, err
	}

	maxTokens := eff.MaxOutputEff
	if req.ConfiguredMaxTokens > 0 && req.ConfiguredMaxTokens < maxTokens {
		maxTokens = req.ConfiguredMaxTokens
	}
	if req.IsMobile {
		maxTokens = int(float64(maxTokens) * mobileOutputFactor)
	}
	if req.PromptTokens > 0 {
		res, err := c.SafeMaxTokens(req.Provider, req.Model, req.PromptTokens, maxTokens, 0)
		if err != nil {
			return 0, err
		}
		maxTokens = res.MaxTokens
	}
	return maxTokens, nil
}

// ContextAwareResult is the outcome of ContextAwareMaxTokens.
type ContextAwareResult struct {
	MaxTokens      int
	PromptTokens   int
	UtilizationPct float64

	// IsValid reports whether the request fits. A best-effort result from a
	// degraded token count is still valid; Err carries the diagnostic.
	IsValid bool

	// Err is diagnostic only: it records a degradation (estimated instead of
	// exact count, legacy-table fallback) that did not invalidate the result.
	Err error
}

// ContextAwareMaxTokens measures the prompt itself rather than trusting a
// caller-supplied token count, then applies the same clamp chain as
// DynamicMaxTokens. A failed exact count degrades to estimation and must not
// block the pipeline, so the result stays valid with Err attached.
func (c *Calculator) ContextAwareMaxTokens(ctx context.Context, prompt string, req DynamicRequest) ContextAwareResult {
	promptTokens, countErr := c.counter.CountTokensChecked(ctx, prompt, req.Provider, req.Model)
	if countErr != nil {
		countErr = fmt.Errorf("prompt measured by estimation: %w", countErr)
	}

	req.PromptTokens = promptTokens
	maxTokens := c.DynamicMaxTokens(req)

	result := ContextAwareResult{
		MaxTokens:    maxTokens,
		PromptTokens: promptTokens,
		IsValid:      true,
		Err:          countErr,
	}

	util, err := c.ContextUtilization(req.Provider, req.Model, promptTokens, maxTokens)
	if err != nil {
		// Unregistered model: DynamicMaxTokens already fell back to the
		// legacy table; report utilization as unknown rather than failing.
		if result.Err == nil {
			result.Err = err
		}
		return result
	}

	result.UtilizationPct = util.Percent
	result.IsValid = util.Percent <= 100
	return result
}
