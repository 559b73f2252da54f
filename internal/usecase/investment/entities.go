package investment

import (
	"time"

	"github.com/shopspring/decimal"

	domain "credito-inmobiliario/internal/domain/investment"
)

type InvestInput struct {
	LoanID     string
	InvestorID string
	Amount     decimal.Decimal
	// CustomRate is only accepted from admins.
	CustomRate decimal.NullDecimal
}

type InvestmentDTO struct {
	ID             string              `json:"id"`
	LoanID         string              `json:"loan_id"`
	InvestorID     string              `json:"investor_id"`
	AmountInvested decimal.Decimal     `json:"amount_invested"`
	Status         string              `json:"status"`
	Source         string              `json:"source"`
	CustomRate     decimal.NullDecimal `json:"custom_rate"`
	CreatedAt      time.Time           `json:"created_at"`
	ConfirmedAt    *time.Time          `json:"confirmed_at,omitempty"`
	RejectedAt     *time.Time          `json:"rejected_at,omitempty"`
}

func toDTO(i *domain.Investment) *InvestmentDTO {
	return &InvestmentDTO{
		ID:             i.ID,
		LoanID:         i.LoanID,
		InvestorID:     i.InvestorID,
		AmountInvested: i.AmountInvested,
		Status:         string(i.Status),
		Source:         string(i.Source),
		CustomRate:     i.CustomRate,
		CreatedAt:      i.CreatedAt,
		ConfirmedAt:    i.ConfirmedAt,
		RejectedAt:     i.RejectedAt,
	}
}
