package chunker

import (
	"log/slog"
	"strings"
)

// chunkBudgetRatio is the share of the token limit a chunk may fill with
// document text. The remaining 30% is headroom for model-response growth
// and estimation error.
const chunkBudgetRatio = 0.70

// tokensPerChar is the cheap length proxy used while sizing sections.
// Roughly 4 characters per token for English markdown.
const tokensPerChar = 0.25

// CreateOptimizedChunks splits a heading-structured document into ordered
// chunks that respect maxTokenLimit. Splits happen only at numbered-heading
// boundaries; a section whose lone size exceeds the working budget still
// becomes a single oversized chunk rather than being force-split mid-section.
//
// Concatenating the returned chunks reproduces the document byte for byte.
//
// A document without numbered headings comes back as one chunk, unsized.
// Content before the first heading (a template preamble, typically) passes
// through verbatim as its own first chunk.
func CreateOptimizedChunks(content string, maxTokenLimit int) []string {
	headings := FindContentHeadings(content)
	if len(headings) == 0 {
		return []string{content}
	}

	var chunks []string

	if headings[0].Position > 0 {
		chunks = append(chunks, content[:headings[0].Position])
	}

	workingBudget := float64(maxTokenLimit) * chunkBudgetRatio

	bufStart := headings[0].Position
	bufTokens := 0.0
	bufSections := 0

	for i, h := range headings {
		end := len(content)
		if i+1 < len(headings) {
			end = headings[i+1].Position
		}
		sectionTokens := float64(end-h.Position) * tokensPerChar

		if bufSections > 0 && bufTokens+sectionTokens > workingBudget {
			chunks = append(chunks, content[bufStart:h.Position])
			bufStart = h.Position
			bufTokens = 0
			bufSections = 0
		}

		bufTokens += sectionTokens
		bufSections++
	}

	if bufStart < len(content) {
		chunks = append(chunks, content[bufStart:])
	}

	verifyHeadingDistribution(chunks, len(headings))

	return chunks
}

// verifyHeadingDistribution recounts headings across the produced chunks.
// A mismatch means a chunk boundary corrupted a heading; it is logged as a
// warning rather than failed hard because the chunks themselves still
// reassemble into the original document.
func verifyHeadingDistribution(chunks []string, want int) {
	got := 0
	for _, chunk := range chunks {
		got += len(FindContentHeadings(chunk))
	}
	if got != want {
		slog.Warn("heading count mismatch after chunking",
			slog.Int("found", want),
			slog.Int("distributed", got),
			slog.Int("chunks", len(chunks)))
	}
}

// EnsureTrailingNewline normalizes a chunk to end with exactly one trailing
// newline so re-assembled prompts stay well-formed.
func EnsureTrailingNewline(chunk string) string {
	return strings.TrimRight(chunk, "\n") + "\n"
}
