// Package funding derives funding state and pro-rata repayment shares from loan amounts.
// Everything here is pure arithmetic over values read in the same request.
package funding

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrFullyFunded      = errors.New("loan has no remaining amount to fund")
	ErrExceedsAvailable = errors.New("amount exceeds available")
)

var hundred = decimal.NewFromInt(100)

// Band is the presentational LTV tier.
type Band string

const (
	BandNone      Band = ""
	BandFavorable Band = "favorable"
	BandModerate  Band = "moderate"
	BandHigh      Band = "high"
)

var (
	favorableLTV = decimal.NewFromInt(50)
	highLTV      = decimal.NewFromInt(70)
)

// Remaining is the investable ceiling of a loan.
func Remaining(requested, funded decimal.Decimal) decimal.Decimal {
	return requested.Sub(funded)
}

// CheckInvestable validates amount against the loan's remaining ceiling.
func CheckInvestable(amount, requested, funded decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	rem := Remaining(requested, funded)
	if !rem.IsPositive() {
		return ErrFullyFunded
	}
	if amount.GreaterThan(rem) {
		return ErrExceedsAvailable
	}
	return nil
}

// LTV returns requested/commercialValue*100. ok is false when commercialValue <= 0.
func LTV(requested, commercialValue decimal.Decimal) (ltv decimal.Decimal, ok bool) {
	if !commercialValue.IsPositive() {
		return decimal.Zero, false
	}
	return requested.Div(commercialValue).Mul(hundred), true
}

func BandFor(ltv decimal.Decimal, ok bool) Band {
	switch {
	case !ok:
		return BandNone
	case ltv.LessThanOrEqual(favorableLTV):
		return BandFavorable
	case ltv.GreaterThan(highLTV):
		return BandHigh
	default:
		return BandModerate
	}
}

// FundingRatio is funded/requested, unclamped. Zero when requested is zero.
func FundingRatio(requested, funded decimal.Decimal) decimal.Decimal {
	if requested.IsZero() {
		return decimal.Zero
	}
	return funded.Div(requested)
}

// FundingPercent is the progress-bar value, clamped to [0, 100].
func FundingPercent(requested, funded decimal.Decimal) decimal.Decimal {
	return clampPercent(FundingRatio(requested, funded).Mul(hundred))
}

func clampPercent(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}
