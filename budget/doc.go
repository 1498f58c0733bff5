// Package budget computes per-request token budgets from registry limits
// and measured or estimated token counts.
//
// A Calculator is wired at the composition root:
//
//	reg := limits.NewRegistry()
//	tc := tokens.NewTokenCounter()
//	calc := budget.NewCalculator(reg, tc)
//
// # Request sizing
//
// SafeMaxTokens clamps a desired output size so prompt + output + margin
// fit the context window. MaxDocTokensPerRequest answers the dual question:
// how much document body fits next to fixed instructions and a reserved
// output allowance. EstimateOptimalChunks turns that into a request count
// for a whole document; a zero-capacity result is a sentinel the caller
// must check, not an error.
//
// # The call-time decision
//
// DynamicMaxTokens is the one decision made immediately before a real
// request goes out. It starts from the effective output cap and only ever
// tightens: configured cap, mobile factor, prompt-aware recomputation. It
// never fails — an unregistered model falls back to a small legacy table —
// and always returns at least 100. ContextAwareMaxTokens is the variant
// that measures the prompt itself instead of trusting the caller.
//
// # Degradation policy
//
// The package is biased toward downgrading a request's size automatically
// rather than failing outright. Hard errors surface only from registry
// lookups in the sizing helpers; the call-time paths and ValidateTokenLimits
// always produce a usable result.
package budget
