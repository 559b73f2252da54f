package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"credito-inmobiliario/internal/domain/funding"
)

type RegisterInput struct {
	LoanID      string
	Capital     decimal.Decimal
	Interest    decimal.Decimal
	LateFee     decimal.Decimal
	PaymentDate time.Time
	RecordedBy  string
	Notes       string
}

// Holding is one investment in the investor portfolio. Allocation is nil until the
// investment is confirmed.
type Holding struct {
	InvestmentID   string              `json:"investment_id"`
	LoanID         string              `json:"loan_id"`
	LoanCode       string              `json:"loan_code"`
	LoanStatus     string              `json:"loan_status"`
	PropertyCity   string              `json:"property_city"`
	InterestRateNM decimal.Decimal     `json:"interest_rate_nm"`
	AmountInvested decimal.Decimal     `json:"amount_invested"`
	Status         string              `json:"status"`
	Allocation     *funding.Allocation `json:"allocation,omitempty"`
}

type Portfolio struct {
	Holdings         []Holding       `json:"holdings"`
	TotalInvested    decimal.Decimal `json:"total_invested"`
	TotalPending     decimal.Decimal `json:"total_pending"`
	CapitalRecovered decimal.Decimal `json:"capital_recovered"`
	InterestEarned   decimal.Decimal `json:"interest_earned"`
	LateFeesEarned   decimal.Decimal `json:"late_fees_earned"`
}
