package investment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusConfirmed      Status = "confirmed"
	StatusRejected       Status = "rejected"
)

// Source tells who entered the investment.
type Source string

const (
	SourceInvestor Source = "investor"
	SourceAdmin    Source = "admin"
)

var (
	ErrNotFound          = errors.New("investment not found")
	ErrInvalidTransition = errors.New("investment is no longer pending")
)

type Investment struct {
	ID             string              `gorm:"primaryKey;size:36;column:id" json:"id"`
	LoanID         string              `gorm:"size:36;index:idx_investments_loan;column:loan_id" json:"loan_id"`
	InvestorID     string              `gorm:"size:36;index:idx_investments_investor;column:investor_id" json:"investor_id"`
	AmountInvested decimal.Decimal     `gorm:"type:numeric(18,2);column:amount_invested" json:"amount_invested"`
	Status         Status              `gorm:"size:20;index:idx_investments_status;column:status" json:"status"`
	CustomRate     decimal.NullDecimal `gorm:"type:numeric(8,6);column:custom_rate" json:"custom_rate"`
	Source         Source              `gorm:"size:16;column:source" json:"source"`
	CreatedBy      string              `gorm:"size:36;column:created_by" json:"created_by"`
	ReviewedBy     *string             `gorm:"size:36;column:reviewed_by" json:"reviewed_by,omitempty"`
	CreatedAt      time.Time           `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	ConfirmedAt    *time.Time          `gorm:"column:confirmed_at" json:"confirmed_at,omitempty"`
	RejectedAt     *time.Time          `gorm:"column:rejected_at" json:"rejected_at,omitempty"`
}

func (Investment) TableName() string { return "investments" }

// Confirm moves a pending investment to confirmed.
func (i *Investment) Confirm(adminID string, at time.Time) error {
	if i.Status != StatusPendingPayment {
		return ErrInvalidTransition
	}
	i.Status = StatusConfirmed
	i.ReviewedBy = &adminID
	i.ConfirmedAt = &at
	return nil
}

// Reject moves a pending investment to rejected. No funds move.
func (i *Investment) Reject(adminID string, at time.Time) error {
	if i.Status != StatusPendingPayment {
		return ErrInvalidTransition
	}
	i.Status = StatusRejected
	i.ReviewedBy = &adminID
	i.RejectedAt = &at
	return nil
}

// TreasuryRow is a pending investment joined with what the treasury check needs.
type TreasuryRow struct {
	Investment
	LoanCode     string `gorm:"column:loan_code" json:"loan_code"`
	InvestorName string `gorm:"column:investor_name" json:"investor_name"`
}
