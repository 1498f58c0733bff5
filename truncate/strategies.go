package truncate

import "strings"

// truncateEnd removes content from the end until it fits.
func (t *Truncator) truncateEnd(text string, maxTokens int) string {
	markerTokens := t.counter.Count(t.marker)
	targetTokens := maxTokens - markerTokens
	if targetTokens <= 0 {
		return t.marker
	}

	// Binary search for the longest prefix that fits.
	runes := []rune(text)
	low, high := 0, len(runes)
	for low < high {
		mid := (low + high + 1) / 2
		if t.counter.FitsInLimit(string(runes[:mid]), targetTokens) {
			low = mid
		} else {
			high = mid - 1
		}
	}

	if low == 0 {
		return t.marker
	}
	return string(runes[:low]) + t.marker
}

// truncateMiddle removes content from the middle, keeping start and end.
func (t *Truncator) truncateMiddle(text string, maxTokens int) string {
	markerTokens := t.counter.Count(t.marker)
	targetTokens := maxTokens - markerTokens
	if targetTokens <= 0 {
		return t.marker
	}

	halfTokens := targetTokens / 2
	runes := []rune(text)

	keepStart := t.longestPrefixWithin(runes, halfTokens)

	endStart := len(runes) - keepStart
	if endStart < keepStart {
		endStart = keepStart
	}

	var sb strings.Builder
	sb.WriteString(string(runes[:keepStart]))
	sb.WriteString(t.marker)
	if endStart < len(runes) {
		sb.WriteString(string(runes[endStart:]))
	}
	return sb.String()
}

// truncateStart removes content from the start.
func (t *Truncator) truncateStart(text string, maxTokens int) string {
	markerTokens := t.counter.Count(t.marker)
	targetTokens := maxTokens - markerTokens
	if targetTokens <= 0 {
		return t.marker
	}

	// Binary search for the earliest suffix start that fits.
	runes := []rune(text)
	low, high := 0, len(runes)
	for low < high {
		mid := (low + high) / 2
		if t.counter.FitsInLimit(string(runes[mid:]), targetTokens) {
			high = mid
		} else {
			low = mid + 1
		}
	}

	if low >= len(runes) {
		return t.marker
	}
	return t.marker + string(runes[low:])
}

// longestPrefixWithin finds how many runes from the start fit in the
// given token budget.
func (t *Truncator) longestPrefixWithin(runes []rune, maxTokens int) int {
	low, high := 0, len(runes)
	for low < high {
		mid := (low + high + 1) / 2
		if t.counter.FitsInLimit(string(runes[:mid]), maxTokens) {
			low = mid
		} else {
			high = mid - 1
		}
	}
	return low
}
