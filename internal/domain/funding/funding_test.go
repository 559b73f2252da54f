package funding

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestCheckInvestable(t *testing.T) {
	requested, funded := d(100_000_000), d(60_000_000)

	require.True(t, Remaining(requested, funded).Equal(d(40_000_000)))

	tests := []struct {
		name    string
		amount  decimal.Decimal
		wantErr error
	}{
		{"over remaining", d(45_000_000), ErrExceedsAvailable},
		{"exactly remaining", d(40_000_000), nil},
		{"below remaining", d(1_000_000), nil},
		{"zero", d(0), ErrInvalidAmount},
		{"negative", d(-5), ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, CheckInvestable(tt.amount, requested, funded), tt.wantErr)
		})
	}
}

func TestCheckInvestable_FullyFunded(t *testing.T) {
	assert.ErrorIs(t, CheckInvestable(d(1), d(100), d(100)), ErrFullyFunded)
	// over-funded transiently still reports no room
	assert.ErrorIs(t, CheckInvestable(d(1), d(100), d(120)), ErrFullyFunded)
}

func TestLTVAndBand(t *testing.T) {
	ltv, ok := LTV(d(50_000_000), d(200_000_000))
	require.True(t, ok)
	assert.True(t, ltv.Equal(d(25)), "ltv=%s", ltv)
	assert.Equal(t, BandFavorable, BandFor(ltv, ok))

	ltv, ok = LTV(d(60), d(100))
	assert.Equal(t, BandModerate, BandFor(ltv, ok))

	ltv, ok = LTV(d(70), d(100))
	assert.Equal(t, BandModerate, BandFor(ltv, ok))

	ltv, ok = LTV(d(71), d(100))
	assert.Equal(t, BandHigh, BandFor(ltv, ok))

	ltv, ok = LTV(d(50), d(0))
	assert.False(t, ok)
	assert.True(t, ltv.IsZero())
	assert.Equal(t, BandNone, BandFor(ltv, ok))
}

func TestFundingPercent_ClampedAndStable(t *testing.T) {
	tests := []struct {
		requested, funded decimal.Decimal
		want              decimal.Decimal
	}{
		{d(100_000_000), d(60_000_000), d(60)},
		{d(100_000_000), d(0), d(0)},
		{d(100_000_000), d(130_000_000), d(100)},
		{d(0), d(10), d(0)},
	}
	for _, tt := range tests {
		first := FundingPercent(tt.requested, tt.funded)
		second := FundingPercent(tt.requested, tt.funded)
		assert.True(t, first.Equal(tt.want), "got %s want %s", first, tt.want)
		assert.True(t, first.Equal(second), "not idempotent: %s vs %s", first, second)
	}

	// the ratio itself is not clamped
	assert.True(t, FundingRatio(d(100), d(130)).Equal(decimal.RequireFromString("1.3")))
}
