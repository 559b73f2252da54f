package funding

import "github.com/shopspring/decimal"

// Payment is the part of a loan payment the allocation needs.
type Payment struct {
	Capital  decimal.Decimal
	Interest decimal.Decimal
	LateFee  decimal.Decimal
}

type PaymentTotals struct {
	Capital  decimal.Decimal `json:"capital"`
	Interest decimal.Decimal `json:"interest"`
	LateFees decimal.Decimal `json:"late_fees"`
	Count    int             `json:"count"`
}

// Allocation is one investor's portion of a loan's repayments to date.
type Allocation struct {
	Share            decimal.Decimal `json:"share"`
	CapitalRecovered decimal.Decimal `json:"capital_recovered"`
	InterestEarned   decimal.Decimal `json:"interest_earned"`
	LateFeesEarned   decimal.Decimal `json:"late_fees_earned"`
	RecoveryProgress decimal.Decimal `json:"recovery_progress"`
}

// Totals sums the full payment ledger of a loan.
func Totals(payments []Payment) PaymentTotals {
	t := PaymentTotals{Capital: decimal.Zero, Interest: decimal.Zero, LateFees: decimal.Zero}
	for _, p := range payments {
		t.Capital = t.Capital.Add(p.Capital)
		t.Interest = t.Interest.Add(p.Interest)
		t.LateFees = t.LateFees.Add(p.LateFee)
		t.Count++
	}
	return t
}

// Share is invested/requested, 0 when requested is 0.
func Share(invested, requested decimal.Decimal) decimal.Decimal {
	if !requested.IsPositive() {
		return decimal.Zero
	}
	return invested.Div(requested)
}

// Allocate applies an investor's share to the loan's payment totals.
func Allocate(invested, requested decimal.Decimal, t PaymentTotals) Allocation {
	share := Share(invested, requested)
	a := Allocation{
		Share:            share,
		CapitalRecovered: t.Capital.Mul(share),
		InterestEarned:   t.Interest.Mul(share),
		LateFeesEarned:   t.LateFees.Mul(share),
		RecoveryProgress: decimal.Zero,
	}
	if invested.IsPositive() {
		a.RecoveryProgress = clampPercent(a.CapitalRecovered.Div(invested).Mul(hundred))
	}
	return a
}
