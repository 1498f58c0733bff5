package budget

import (
	"errors"
	"fmt"

	"github.com/contextfit/contextfit/limits"
)

// Validation is the outcome of ValidateTokenLimits: a structured diagnostic
// for user-facing settings screens. It is never an error value — invalid
// configurations are reported, not thrown.
type Validation struct {
	IsValid     bool
	Problem     string
	Suggestions []string
}

// ValidateTokenLimits checks whether a prompt of promptTokens plus a
// desired output cap fits the model, and suggests remedies when it does
// not. The default 5% safety margin is included in the check.
func (c *Calculator) ValidateTokenLimits(provider limits.Provider, model string, promptTokens, desiredOutputTokens int) Validation {
	eff, err := c.registry.EffectiveLimits(provider, model)
	if err != nil {
		v := Validation{
			Problem: fmt.Sprintf("model %s/%s is not registered", provider, model),
			Suggestions: []string{
				"register the model with UpsertModel or a limits override file",
				"check the provider and model id for typos",
			},
		}
		if !errors.Is(err, limits.ErrModelNotFound) {
			v.Problem = err.Error()
		}
		return v
	}

	margin := eff.Context * defaultMarginPct / 100

	if promptTokens > eff.InputMaxEff {
		return Validation{
			Problem: fmt.Sprintf("prompt is %d tokens but the model accepts at most %d input tokens",
				promptTokens, eff.InputMaxEff),
			Suggestions: []string{
				"reduce the prompt size or split the document into more chunks",
				"use a larger-context model",
			},
		}
	}

	if desiredOutputTokens > eff.MaxOutputEff {
		return Validation{
			Problem: fmt.Sprintf("max_tokens %d exceeds the model's effective output cap of %d",
				desiredOutputTokens, eff.MaxOutputEff),
			Suggestions: []string{
				fmt.Sprintf("reduce max_tokens to %d or below", eff.MaxOutputEff),
			},
		}
	}

	if promptTokens+desiredOutputTokens+margin > eff.Context {
		return Validation{
			Problem: fmt.Sprintf("prompt (%d) + max_tokens (%d) + safety margin (%d) exceed the %d-token context window",
				promptTokens, desiredOutputTokens, margin, eff.Context),
			Suggestions: []string{
				"reduce the prompt size",
				"reduce max_tokens",
				"use a larger-context model",
			},
		}
	}

	return Validation{IsValid: true}
}
