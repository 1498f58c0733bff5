// Package chunker splits heading-structured markdown documents into
// ordered, token-budgeted chunks.
//
// The structural unit is the numbered heading: one or more '#' followed by
// a numeric label ("## 1. Background", "### 2.3. Results"). Headings
// without the label are treated as incidental markdown, not split points.
// Splitting only ever happens at these boundaries — a section is never cut
// in the middle, even when it alone exceeds the budget. That oversized
// chunk is an accepted limitation, handed to the caller as-is.
//
//	chunks := chunker.CreateOptimizedChunks(doc, 12000)
//	// strings.Join(chunks, "") == doc, always
//
// Both functions are stateless and pure in (content, limit); sizing uses a
// cheap character-length proxy rather than a real tokenizer, with 30% of
// the limit held back as headroom for the difference.
package chunker
