package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contextfit/contextfit/limits"
	"github.com/contextfit/contextfit/tokens"
)

func newTestCalculator() (*Calculator, *limits.Registry) {
	reg := limits.NewRegistry()
	return NewCalculator(reg, tokens.NewTokenCounter()), reg
}

func TestSafeMaxTokens(t *testing.T) {
	calc, _ := newTestCalculator()

	// gpt-4o: context 128000, effective output 16384, default margin 6400.
	tests := []struct {
		name          string
		promptTokens  int
		desired       int
		margin        int
		wantMaxTokens int
		wantOK        bool
	}{
		{
			name:          "desired fits untouched",
			promptTokens:  1000,
			desired:       4096,
			margin:        500,
			wantMaxTokens: 4096,
			wantOK:        true,
		},
		{
			name:          "desired clamped to effective output cap",
			promptTokens:  1000,
			desired:       50000,
			margin:        500,
			wantMaxTokens: 16384,
			wantOK:        true,
		},
		{
			name:          "large prompt squeezes the output",
			promptTokens:  120000,
			desired:       16384,
			margin:        500,
			wantMaxTokens: 128000 - 120000 - 500,
			wantOK:        true,
		},
		{
			name:          "prompt alone overflows, floor at zero",
			promptTokens:  130000,
			desired:       4096,
			margin:        500,
			wantMaxTokens: 0,
			wantOK:        false,
		},
		{
			name:          "zero margin selects the 5 percent default",
			promptTokens:  1000,
			desired:       4096,
			margin:        0,
			wantMaxTokens: 4096,
			wantOK:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := calc.SafeMaxTokens(limits.OpenAI, "gpt-4o", tt.promptTokens, tt.desired, tt.margin)
			require.NoError(t, err)

			assert.Equal(t, tt.wantMaxTokens, res.MaxTokens)
			assert.Equal(t, tt.wantOK, res.OK)
			assert.LessOrEqual(t, res.MaxTokens, res.Limits.MaxOutputEff)
		})
	}
}

func TestSafeMaxTokens_DefaultMargin(t *testing.T) {
	calc, _ := newTestCalculator()

	res, err := calc.SafeMaxTokens(limits.OpenAI, "gpt-4o", 1000, 4096, 0)
	require.NoError(t, err)
	assert.Equal(t, 128000*5/100, res.Margin)
}

func TestSafeMaxTokens_UnregisteredModel(t *testing.T) {
	calc, _ := newTestCalculator()

	_, err := calc.SafeMaxTokens(limits.OpenAI, "no-such-model", 100, 100, 0)
	require.ErrorIs(t, err, limits.ErrModelNotFound)
}

func TestMaxDocTokensPerRequest(t *testing.T) {
	calc, reg := newTestCalculator()
	reg.UpsertModel(limits.OpenAI, "test-8k", limits.ModelLimits{Context: 8000, MaxOutput: 4000})

	// 8000 - 2000 instructions - 2500 output - 500 margin = 3000.
	got, err := calc.MaxDocTokensPerRequest(limits.OpenAI, "test-8k", 2000, 2500, 500)
	require.NoError(t, err)
	assert.Equal(t, 3000, got)

	// Overheads exhaust the window: floored at zero, not negative.
	got, err = calc.MaxDocTokensPerRequest(limits.OpenAI, "test-8k", 7000, 4000, 500)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestEstimateOptimalChunks(t *testing.T) {
	calc, reg := newTestCalculator()
	reg.UpsertModel(limits.OpenAI, "test-8k", limits.ModelLimits{Context: 8000, MaxOutput: 4000})

	// 10000 document tokens over a 3000-token per-request capacity: 4 requests.
	est, err := calc.EstimateOptimalChunks(limits.OpenAI, "test-8k", 10000, 2000, 2500, 500)
	require.NoError(t, err)
	assert.Equal(t, 4, est.EstimatedChunks)
	assert.Equal(t, 3000, est.TokensPerChunk)
	assert.Equal(t, est.EstimatedChunks, est.TotalRequestsNeeded)
}

func TestEstimateOptimalChunks_SmallDocumentIsOneChunk(t *testing.T) {
	calc, _ := newTestCalculator()

	est, err := calc.EstimateOptimalChunks(limits.OpenAI, "gpt-4o", 50, 100, 1000, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, est.EstimatedChunks)

	// An empty document still needs one request.
	est, err = calc.EstimateOptimalChunks(limits.OpenAI, "gpt-4o", 0, 100, 1000, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, est.EstimatedChunks)
}

func TestEstimateOptimalChunks_ZeroCapacitySentinel(t *testing.T) {
	calc, reg := newTestCalculator()
	reg.UpsertModel(limits.OpenAI, "test-8k", limits.ModelLimits{Context: 8000, MaxOutput: 4000})

	// Instructions plus output leave nothing for the document. The zero-value
	// estimate marks an unusable configuration without erroring.
	est, err := calc.EstimateOptimalChunks(limits.OpenAI, "test-8k", 10000, 7000, 4000, 500)
	require.NoError(t, err)
	assert.Equal(t, ChunkEstimate{}, est)
}

func TestContextUtilization(t *testing.T) {
	calc, _ := newTestCalculator()

	// Half the window used.
	util, err := calc.ContextUtilization(limits.OpenAI, "gpt-4o", 60000, 4000)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, util.Percent, 0.01)
	assert.Equal(t, 64000, util.Remaining)
	assert.False(t, util.IsNearLimit)

	// Exactly at the 85% warning threshold.
	util, err = calc.ContextUtilization(limits.OpenAI, "gpt-4o", 100000, 8800)
	require.NoError(t, err)
	assert.InDelta(t, 85.0, util.Percent, 0.01)
	assert.True(t, util.IsNearLimit)

	// Overflow reports >100% with remaining floored at zero.
	util, err = calc.ContextUtilization(limits.OpenAI, "gpt-4o", 130000, 4000)
	require.NoError(t, err)
	assert.Greater(t, util.Percent, 100.0)
	assert.Equal(t, 0, util.Remaining)
	assert.True(t, util.IsNearLimit)
}

func TestContextUtilization_UnregisteredModel(t *testing.T) {
	calc, _ := newTestCalculator()

	_, err := calc.ContextUtilization(limits.Google, "no-such-model", 100, 100)
	require.ErrorIs(t, err, limits.ErrModelNotFound)
}
