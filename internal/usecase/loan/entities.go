package loan

import (
	"time"

	"github.com/shopspring/decimal"

	"credito-inmobiliario/internal/domain/cosigner"
	"credito-inmobiliario/internal/domain/funding"
	domain "credito-inmobiliario/internal/domain/loan"
)

type CosignerInput struct {
	FullName   string
	DocumentID string
	Email      string
	Phone      string
}

// InitialInvestment is an investment entered together with the credit-creation form.
type InitialInvestment struct {
	InvestorID string
	Amount     decimal.Decimal
	CustomRate decimal.NullDecimal
}

type CreateLoanInput struct {
	OwnerID string
	// CreatedBy is the admin entering the form; recorded on initial investments.
	CreatedBy       string
	AmountRequested decimal.Decimal
	InterestRateNM  decimal.Decimal
	// InterestRateEA is derived from InterestRateNM when zero.
	InterestRateEA  decimal.Decimal
	TermMonths      int
	PaymentType     domain.PaymentType
	PropertyAddress string
	PropertyCity    string
	PropertyType    string
	CommercialValue decimal.Decimal
	// Draft keeps the loan out of the investor marketplace.
	Draft       bool
	Cosigners   []CosignerInput
	Investments []InitialInvestment
}

// StatusInput is an admin status change. The optional terms complete an owner's draft;
// a new monthly rate also recomputes the effective annual one unless it is given.
type StatusInput struct {
	Status         domain.Status
	InterestRateNM decimal.NullDecimal
	InterestRateEA decimal.NullDecimal
	TermMonths     int
	PaymentType    domain.PaymentType
}

func (in StatusInput) hasTerms() bool {
	return in.InterestRateNM.Valid || in.InterestRateEA.Valid || in.TermMonths > 0 || in.PaymentType != ""
}

type LoanDTO struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	OwnerID         string          `json:"owner_id"`
	AmountRequested decimal.Decimal `json:"amount_requested"`
	AmountFunded    decimal.Decimal `json:"amount_funded"`
	InterestRateNM  decimal.Decimal `json:"interest_rate_nm"`
	InterestRateEA  decimal.Decimal `json:"interest_rate_ea"`
	TermMonths      int             `json:"term_months"`
	PaymentType     string          `json:"payment_type"`
	PropertyAddress string          `json:"property_address"`
	PropertyCity    string          `json:"property_city"`
	PropertyType    string          `json:"property_type"`
	CommercialValue decimal.Decimal `json:"commercial_value"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`

	Remaining      decimal.Decimal `json:"remaining"`
	FundingPercent decimal.Decimal `json:"funding_percent"`
	LTV            decimal.Decimal `json:"ltv"`
	HasLTV         bool            `json:"has_ltv"`
	LTVBand        funding.Band    `json:"ltv_band"`
}

// LoanView is the detail page projection.
type LoanView struct {
	LoanDTO
	Cosigners []cosigner.Cosigner `json:"cosigners"`
}

func toDTO(l *domain.Loan) LoanDTO {
	ltv, ok := funding.LTV(l.AmountRequested, l.CommercialValue)
	return LoanDTO{
		ID:              l.ID,
		Code:            l.Code,
		OwnerID:         l.OwnerID,
		AmountRequested: l.AmountRequested,
		AmountFunded:    l.AmountFunded,
		InterestRateNM:  l.InterestRateNM,
		InterestRateEA:  l.InterestRateEA,
		TermMonths:      l.TermMonths,
		PaymentType:     string(l.PaymentType),
		PropertyAddress: l.PropertyAddress,
		PropertyCity:    l.PropertyCity,
		PropertyType:    l.PropertyType,
		CommercialValue: l.CommercialValue,
		Status:          string(l.Status),
		CreatedAt:       l.CreatedAt,
		Remaining:       funding.Remaining(l.AmountRequested, l.AmountFunded),
		FundingPercent:  funding.FundingPercent(l.AmountRequested, l.AmountFunded),
		LTV:             ltv.Round(2),
		HasLTV:          ok,
		LTVBand:         funding.BandFor(ltv, ok),
	}
}
