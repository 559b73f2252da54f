package uow

import (
	"context"

	"credito-inmobiliario/internal/domain/cosigner"
	"credito-inmobiliario/internal/domain/investment"
	"credito-inmobiliario/internal/domain/loan"
	"credito-inmobiliario/internal/domain/payment"
	"credito-inmobiliario/internal/domain/profile"
)

// Repos are bound to the same transaction.
type Repos struct {
	Loans       loan.Repository
	Investments investment.Repository
	Payments    payment.Repository
	Profiles    profile.Repository
	Cosigners   cosigner.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock loan first, then pass it in; serializes writers on one loan
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
