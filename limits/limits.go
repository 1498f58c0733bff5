package limits

import "math"

// ModelLimits holds the raw, vendor-published limits for one model.
// Values are immutable once read from the registry; replacing an entry
// wholesale via UpsertModel is the only mutation path.
type ModelLimits struct {
	// Context is the total token window across prompt plus completion.
	Context int `json:"context" yaml:"context" toml:"context"`

	// MaxOutput is the vendor cap on completion tokens for one request.
	MaxOutput int `json:"max_output" yaml:"max_output" toml:"max_output"`

	// InputMax optionally caps prompt tokens below Context - MaxOutput.
	// Zero means unset (no explicit input cap).
	InputMax int `json:"input_max,omitempty" yaml:"input_max,omitempty" toml:"input_max,omitempty"`

	// ReserveOutputPct shaves a safety reserve off MaxOutput when deriving
	// effective limits. Must be in [0, 1); zero means no reserve.
	ReserveOutputPct float64 `json:"reserve_output_pct,omitempty" yaml:"reserve_output_pct,omitempty" toml:"reserve_output_pct,omitempty"`
}

// EffectiveLimits is ModelLimits after applying the output reserve and
// deriving the usable input ceiling.
//
// Invariants: 0 <= MaxOutputEff <= MaxOutput and InputMaxEff >= 0.
type EffectiveLimits struct {
	ModelLimits

	// MaxOutputEff is floor(MaxOutput * (1 - ReserveOutputPct)).
	MaxOutputEff int `json:"max_output_eff"`

	// InputMaxEff is min(InputMax or unbounded, Context - MaxOutputEff).
	InputMaxEff int `json:"input_max_eff"`
}

// Effective derives EffectiveLimits from raw limits. The derivation is pure:
// calling it twice on the same ModelLimits yields the same result.
func (m ModelLimits) Effective() EffectiveLimits {
	reserve := m.ReserveOutputPct
	if reserve < 0 || reserve >= 1 {
		reserve = 0
	}

	maxOutputEff := int(math.Floor(float64(m.MaxOutput) * (1 - reserve)))
	if maxOutputEff < 0 {
		maxOutputEff = 0
	}

	inputMaxEff := m.Context - maxOutputEff
	if m.InputMax > 0 && m.InputMax < inputMaxEff {
		inputMaxEff = m.InputMax
	}
	if inputMaxEff < 0 {
		inputMaxEff = 0
	}

	return EffectiveLimits{
		ModelLimits:  m,
		MaxOutputEff: maxOutputEff,
		InputMaxEff:  inputMaxEff,
	}
}
