package paymentmock

import (
	"context"

	domain "credito-inmobiliario/internal/domain/payment"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn     func(ctx context.Context, p *domain.LoanPayment) error
	ListByLoanFn func(ctx context.Context, loanID string) ([]domain.LoanPayment, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.LoanPayment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) ListByLoan(ctx context.Context, loanID string) ([]domain.LoanPayment, error) {
	if m.ListByLoanFn != nil {
		return m.ListByLoanFn(ctx, loanID)
	}
	return nil, nil
}
