package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanPayment is one borrower repayment. Rows are never updated or deleted.
type LoanPayment struct {
	ID             string          `gorm:"primaryKey;size:36;column:id" json:"id"`
	LoanID         string          `gorm:"size:36;index:idx_loan_payments_loan;column:loan_id" json:"loan_id"`
	AmountCapital  decimal.Decimal `gorm:"type:numeric(18,2);column:amount_capital" json:"amount_capital"`
	AmountInterest decimal.Decimal `gorm:"type:numeric(18,2);column:amount_interest" json:"amount_interest"`
	AmountLateFee  decimal.Decimal `gorm:"type:numeric(18,2);column:amount_late_fee" json:"amount_late_fee"`
	PaymentDate    time.Time       `gorm:"column:payment_date" json:"payment_date"`
	RecordedBy     string          `gorm:"size:36;column:recorded_by" json:"recorded_by"`
	Notes          string          `gorm:"type:text;column:notes" json:"notes,omitempty"`
	CreatedAt      time.Time       `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (LoanPayment) TableName() string { return "loan_payments" }

func (p LoanPayment) Total() decimal.Decimal {
	return p.AmountCapital.Add(p.AmountInterest).Add(p.AmountLateFee)
}
