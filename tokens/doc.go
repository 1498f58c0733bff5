// Package tokens counts tokens per LLM provider.
//
// Two paths exist behind one API. Providers with an embeddable tokenizer
// (OpenAI, via tiktoken BPE tables) get exact counts from a lazily
// initialized encoder. Everything else — and every failure along the exact
// path — degrades to a tuned heuristic estimator. Counting never fails:
//
//	tc := tokens.NewTokenCounter()
//	n := tc.CountTokens(ctx, text, limits.OpenAI, "gpt-4o")  // exact
//	n = tc.CountTokens(ctx, text, limits.Anthropic, "")      // estimated
//	defer tc.Cleanup()
//
// # Estimation
//
// The estimator takes the larger of a word-based and a character-based
// figure, adds adjustments for punctuation and digit runs, applies a flat
// +10% pad and rounds up. The pad is deliberate: an over-count costs a
// slightly smaller request, an under-count risks provider-side rejection
// or silent truncation. Ratios are tuned per provider (see Profile).
//
// Estimates are non-decreasing in text length for a fixed provider.
//
// # Batches
//
// CountSegments and TotalTokens fan out one count per segment concurrently
// with no ordering dependency between segments; results come back in input
// order. A failing segment estimates instead of stalling the batch.
package tokens
