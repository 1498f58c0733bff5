// Package limits maintains per-(provider, model) token limits and derives
// the effective limits used for request budgeting.
//
// # Registry
//
// A Registry is an explicit object, not a package singleton. Build one at
// your composition root and share it by reference:
//
//	reg := limits.NewRegistry()
//	eff, err := reg.EffectiveLimits(limits.OpenAI, "gpt-4o")
//	// eff.MaxOutputEff, eff.InputMaxEff
//
// Raw limits come from a baked-in table of vendor-published numbers.
// Effective limits apply the configured output reserve:
//
//	MaxOutputEff = floor(MaxOutput * (1 - ReserveOutputPct))
//	InputMaxEff  = min(InputMax or unbounded, Context - MaxOutputEff)
//
// # Custom models
//
// UpsertModel registers or replaces a model at runtime (last write wins).
// Upserts live only as long as the process; to keep custom models across
// restarts, put them in a YAML or TOML override file and merge it at
// startup with LoadOverrides. Watch re-applies the file when it changes.
//
// # Lookup failure
//
// RawLimits and EffectiveLimits are the only hard-failing operations in
// this module (ErrModelNotFound). LegacyMaxTokens never fails: it returns
// a small per-provider default for unregistered pairs so callers that must
// get some answer always do.
package limits
