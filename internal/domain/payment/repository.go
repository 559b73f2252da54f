package payment

import "context"

// Repository is append-only: there is no Save or Delete.
type Repository interface {
	Create(ctx context.Context, p *LoanPayment) error
	ListByLoan(ctx context.Context, loanID string) ([]LoanPayment, error)
}
