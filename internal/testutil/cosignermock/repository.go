package cosignermock

import (
	"context"

	domain "credito-inmobiliario/internal/domain/cosigner"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateBatchFn func(ctx context.Context, cs []domain.Cosigner) error
	ListByLoanFn  func(ctx context.Context, loanID string) ([]domain.Cosigner, error)
}

func (m *Repo) CreateBatch(ctx context.Context, cs []domain.Cosigner) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, cs)
	}
	return nil
}

func (m *Repo) ListByLoan(ctx context.Context, loanID string) ([]domain.Cosigner, error) {
	if m.ListByLoanFn != nil {
		return m.ListByLoanFn(ctx, loanID)
	}
	return nil, nil
}
