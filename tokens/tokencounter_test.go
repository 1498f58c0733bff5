package tokens

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/contextfit/contextfit/limits"
)

func TestTokenCounter_CountTokens_Empty(t *testing.T) {
	tc := NewTokenCounter()
	defer tc.Cleanup()

	if got := tc.CountTokens(context.Background(), "", limits.OpenAI, "gpt-4o"); got != 0 {
		t.Errorf("CountTokens(\"\") = %d, expected 0", got)
	}
}

func TestTokenCounter_CountTokensChecked_ExactPath(t *testing.T) {
	tc := NewTokenCounter()
	defer tc.Cleanup()

	text := "Hello, world! This is a short test sentence."
	n, err := tc.CountTokensChecked(context.Background(), text, limits.OpenAI, "gpt-4o")
	if err != nil {
		t.Fatalf("exact path returned diagnostic error: %v", err)
	}
	if n <= 0 {
		t.Fatalf("CountTokensChecked = %d, expected positive", n)
	}

	// The exact count should come in under the padded estimate for plain
	// English; if they match the exact path silently fell through.
	if est := tc.EstimateTokens(text, limits.OpenAI); n >= est {
		t.Errorf("exact count %d >= estimate %d, exact path did not engage", n, est)
	}
}

func TestTokenCounter_CountTokensChecked_EstimationProviders(t *testing.T) {
	tc := NewTokenCounter()
	defer tc.Cleanup()

	text := "Estimation providers never report a diagnostic."

	for _, provider := range []limits.Provider{limits.Anthropic, limits.Google, limits.Ollama} {
		t.Run(provider.String(), func(t *testing.T) {
			n, err := tc.CountTokensChecked(context.Background(), text, provider, "")
			if err != nil {
				t.Fatalf("estimation-only provider returned error: %v", err)
			}
			if want := tc.EstimateTokens(text, provider); n != want {
				t.Errorf("count = %d, expected estimate %d", n, want)
			}
		})
	}
}

func TestTokenCounter_CountTokensChecked_CancelledContext(t *testing.T) {
	tc := NewTokenCounter()
	defer tc.Cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	text := "cancelled before the encoder ever loads"

	// Exact-capable provider: still get a count, plus the diagnostic.
	n, err := tc.CountTokensChecked(ctx, text, limits.OpenAI, "gpt-4o")
	if err == nil {
		t.Error("expected diagnostic error for cancelled exact-capable count")
	}
	if want := tc.EstimateTokens(text, limits.OpenAI); n != want {
		t.Errorf("count = %d, expected estimate %d", n, want)
	}

	// Estimation-only provider: cancellation changes nothing.
	n, err = tc.CountTokensChecked(ctx, text, limits.Google, "")
	if err != nil {
		t.Errorf("estimation-only provider returned error: %v", err)
	}
	if n <= 0 {
		t.Errorf("count = %d, expected positive", n)
	}
}

func TestTokenCounter_CountSegments(t *testing.T) {
	tc := NewTokenCounter()
	defer tc.Cleanup()

	segments := []string{
		"first segment of the batch",
		"",
		"the third segment is noticeably longer than the first one was",
	}

	counts := tc.CountSegments(context.Background(), segments, limits.Anthropic, "claude-sonnet-4")
	if len(counts) != len(segments) {
		t.Fatalf("got %d counts for %d segments", len(counts), len(segments))
	}

	// Results line up with input order.
	for i, segment := range segments {
		want := tc.CountTokens(context.Background(), segment, limits.Anthropic, "claude-sonnet-4")
		if counts[i] != want {
			t.Errorf("counts[%d] = %d, expected %d", i, counts[i], want)
		}
	}
	if counts[1] != 0 {
		t.Errorf("empty segment counted %d tokens", counts[1])
	}
}

func TestTokenCounter_TotalTokens(t *testing.T) {
	tc := NewTokenCounter()
	defer tc.Cleanup()

	segments := []string{"alpha beta", "gamma delta epsilon", "zeta"}

	total := tc.TotalTokens(context.Background(), segments, limits.Ollama, "llama3.1")

	sum := 0
	for _, n := range tc.CountSegments(context.Background(), segments, limits.Ollama, "llama3.1") {
		sum += n
	}
	if total != sum {
		t.Errorf("TotalTokens = %d, expected sum of segments %d", total, sum)
	}

	if got := tc.TotalTokens(context.Background(), nil, limits.Ollama, "llama3.1"); got != 0 {
		t.Errorf("TotalTokens(nil) = %d, expected 0", got)
	}
}

func TestTokenCounter_Cleanup(t *testing.T) {
	tc := NewTokenCounter()

	before := tc.CountTokens(context.Background(), "hello world", limits.OpenAI, "gpt-4o")

	tc.Cleanup()
	tc.Cleanup() // idempotent

	// Counting after cleanup re-initializes on demand.
	after := tc.CountTokens(context.Background(), "hello world", limits.OpenAI, "gpt-4o")
	if before != after {
		t.Errorf("count changed across Cleanup: %d vs %d", before, after)
	}
}

func TestTokenCounter_ConcurrentUse(t *testing.T) {
	tc := NewTokenCounter()
	defer tc.Cleanup()

	text := strings.Repeat("concurrent counting stress ", 50)
	providers := []limits.Provider{limits.OpenAI, limits.Anthropic, limits.Google, limits.Ollama}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				provider := providers[(i+j)%len(providers)]
				if n := tc.CountTokens(context.Background(), text, provider, "gpt-4o"); n <= 0 {
					t.Errorf("count = %d for %s, expected positive", n, provider)
				}
			}
		}(i)
	}
	wg.Wait()
}

func BenchmarkTokenCounter_CountTokens_Exact(b *testing.B) {
	tc := NewTokenCounter()
	defer tc.Cleanup()

	ctx := context.Background()
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 50)

	// Warm the encoder cache so the benchmark measures encoding, not init.
	tc.CountTokens(ctx, text, limits.OpenAI, "gpt-4o")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tc.CountTokens(ctx, text, limits.OpenAI, "gpt-4o")
	}
}

func BenchmarkTokenCounter_CountTokens_Estimate(b *testing.B) {
	tc := NewTokenCounter()
	defer tc.Cleanup()

	ctx := context.Background()
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 50)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tc.CountTokens(ctx, text, limits.Anthropic, "claude-sonnet-4")
	}
}
