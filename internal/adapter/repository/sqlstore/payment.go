package sqlstore

import (
	"context"

	payDomain "credito-inmobiliario/internal/domain/payment"

	"gorm.io/gorm"
)

// PaymentRepository only appends to loan_payments.
type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *payDomain.LoanPayment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) ListByLoan(ctx context.Context, loanID string) ([]payDomain.LoanPayment, error) {
	var out []payDomain.LoanPayment
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("payment_date ASC, created_at ASC").
		Find(&out).Error
	return out, err
}
