// Package contextfit sizes LLM requests: given an arbitrarily long document
// and a provider/model, it decides how to slice the document into requests
// that respect the model's context window, output cap, and a safety margin.
//
// Each subpackage can be used independently:
//
//   - limits: per-(provider, model) token limits and effective-limit derivation
//   - tokens: exact (tiktoken) and heuristic token counting per provider
//   - budget: per-request budgets, chunk estimates, the call-time max_tokens decision
//   - chunker: heading-aligned document chunking that never corrupts content
//   - truncate: token-aware truncation for strings that must fit a budget
//
// # Quick start
//
// Wire the pieces once at your composition root:
//
//	reg := limits.NewRegistry()
//	tc := tokens.NewTokenCounter()
//	defer tc.Cleanup()
//	calc := budget.NewCalculator(reg, tc)
//
// Size a document run:
//
//	docTokens := tc.CountTokens(ctx, doc, limits.OpenAI, "gpt-4o")
//	est, err := calc.EstimateOptimalChunks(limits.OpenAI, "gpt-4o", docTokens, instrTokens, 4096, 0)
//	chunks := chunker.CreateOptimizedChunks(doc, est.TokensPerChunk)
//
// Decide the output cap right before each request:
//
//	maxTokens := calc.DynamicMaxTokens(budget.DynamicRequest{
//	    Provider: limits.OpenAI,
//	    Model:    "gpt-4o",
//	    PromptTokens: promptTokens,
//	})
//
// # Design philosophy
//
//   - Availability over strict correctness: counting failures estimate,
//     lookup failures fall back to a legacy table, requests shrink rather
//     than fail.
//   - Conservative by default: estimates over-count, margins reserve room.
//   - No singletons: registries and counters are explicit objects owned by
//     the caller, so one process can hold independently configured sets.
//   - Content is sacred: chunk boundaries only, never content loss.
package contextfit
