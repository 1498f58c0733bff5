// Package truncate hard-fits text into a token budget.
//
// Chunking (package chunker) is the right tool for documents: it splits at
// section boundaries and loses nothing. Truncation is the fallback for
// fixed strings that must fit a budget — overlong instructions, a preamble
// that exceeds what budget.MaxDocTokensPerRequest left over — where losing
// content is acceptable and splitting is not.
//
// Three strategies:
//
//   - FromEnd: remove content from the end (default)
//   - FromMiddle: remove content from the middle, keeping start and end
//   - FromStart: remove content from the start
//
//	tr := truncate.NewForProvider(truncate.FromMiddle, limits.Anthropic)
//	result, truncated := tr.Truncate(text, maxTokens)
//
// Sizing uses the tokens.Counter interface; the default is the heuristic
// estimator, which over-counts slightly, so truncation errs toward cutting
// a little more rather than overflowing the budget. Rune-based slicing
// keeps multi-byte characters intact.
package truncate
