package tokens

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tiktoken-go/tokenizer"

	"github.com/contextfit/contextfit/limits"
)

// TokenCounter counts tokens per provider: exactly where an embeddable
// encoder exists, by tuned estimation otherwise. Counting never fails the
// caller — every failure path degrades to the estimator.
//
// Encoder handles are created lazily on first use and cached per provider.
// Concurrent first calls may race to initialize the same encoder; the
// duplicate simply replaces the cached handle with an equivalent one, which
// is cheaper than serializing every call behind the init path.
type TokenCounter struct {
	mu     sync.RWMutex
	codecs map[limits.Provider]tokenizer.Codec
	// initErrs records providers whose encoder init already failed, so
	// repeated calls don't retry a load that cannot succeed.
	initErrs map[limits.Provider]error
}

// NewTokenCounter creates a counter with no encoders loaded.
func NewTokenCounter() *TokenCounter {
	return &TokenCounter{
		codecs:   make(map[limits.Provider]tokenizer.Codec),
		initErrs: make(map[limits.Provider]error),
	}
}

// CountTokens returns the token count for text under the given provider.
// The model steers encoder selection where the provider supports several
// encodings; it may be empty.
//
// The context matters only on first use per provider, when the encoding
// table is loaded; a cancelled context skips the load and estimates.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string, provider limits.Provider, model string) int {
	n, _ := tc.CountTokensChecked(ctx, text, provider, model)
	return n
}

// CountTokensChecked is CountTokens with a diagnostic: the returned count is
// always usable, and a non-nil error only reports that a provider with exact
// counting support had to estimate (encoder init or encode failure).
// Providers without an embeddable tokenizer estimate by design and return a
// nil error.
func (tc *TokenCounter) CountTokensChecked(ctx context.Context, text string, provider limits.Provider, model string) (int, error) {
	if text == "" {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		if hasExactSupport(provider) {
			return tc.EstimateTokens(text, provider), err
		}
		return tc.EstimateTokens(text, provider), nil
	}

	codec, err := tc.codecFor(provider, model)
	if codec == nil {
		if err != nil {
			slog.Debug("tokenizer unavailable, estimating",
				slog.String("provider", provider.String()),
				slog.Any("error", err))
		}
		return tc.EstimateTokens(text, provider), err
	}

	n, err := exactCount(codec, text)
	if err != nil {
		slog.Debug("exact token count failed, estimating",
			slog.String("provider", provider.String()),
			slog.Any("error", err))
		return tc.EstimateTokens(text, provider), err
	}
	return n, nil
}

// EstimateTokens is the synchronous heuristic path. It is always available
// and is the total fallback behind CountTokens.
func (tc *TokenCounter) EstimateTokens(text string, provider limits.Provider) int {
	return NewEstimator(provider).Count(text)
}

// CountSegments counts each segment concurrently and returns the per-segment
// counts in input order. A segment that cannot be counted exactly degrades
// to estimation; the batch never stalls on one segment.
func (tc *TokenCounter) CountSegments(ctx context.Context, segments []string, provider limits.Provider, model string) []int {
	counts := make([]int, len(segments))

	g, gctx := errgroup.WithContext(ctx)
	for i, segment := range segments {
		i, segment := i, segment
		g.Go(func() error {
			counts[i] = tc.CountTokens(gctx, segment, provider, model)
			return nil
		})
	}
	// CountTokens is total, so Wait cannot return an error.
	_ = g.Wait()

	return counts
}

// TotalTokens counts all segments concurrently and sums the results.
func (tc *TokenCounter) TotalTokens(ctx context.Context, segments []string, provider limits.Provider, model string) int {
	total := 0
	for _, n := range tc.CountSegments(ctx, segments, provider, model) {
		total += n
	}
	return total
}

// Cleanup releases cached encoder handles. Safe to call multiple times;
// a later CountTokens simply re-initializes on demand.
func (tc *TokenCounter) Cleanup() {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	tc.codecs = make(map[limits.Provider]tokenizer.Codec)
	tc.initErrs = make(map[limits.Provider]error)
}

// hasExactSupport reports whether the provider ships an embeddable tokenizer.
func hasExactSupport(provider limits.Provider) bool {
	return provider == limits.OpenAI
}

// codecFor returns the cached encoder for the provider, initializing it on
// first use. A nil codec means the caller must estimate; the error, when
// non-nil, explains an init failure for a provider that should have one.
func (tc *TokenCounter) codecFor(provider limits.Provider, model string) (tokenizer.Codec, error) {
	if !hasExactSupport(provider) {
		return nil, nil
	}

	tc.mu.RLock()
	codec, ok := tc.codecs[provider]
	initErr, failed := tc.initErrs[provider]
	tc.mu.RUnlock()

	if ok {
		return codec, nil
	}
	if failed {
		return nil, initErr
	}

	// Deliberately initialized outside the lock: a concurrent caller may
	// build an equivalent codec, and last write wins.
	codec, err := newCodec(provider, model)

	tc.mu.Lock()
	defer tc.mu.Unlock()
	if err != nil {
		tc.initErrs[provider] = err
		return nil, err
	}
	tc.codecs[provider] = codec
	return codec, nil
}
