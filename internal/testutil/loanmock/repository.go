package loanmock

import (
	"context"

	domain "credito-inmobiliario/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, l *domain.Loan) error
	GetByIDFn          func(ctx context.Context, id string) (*domain.Loan, error)
	GetByIDForUpdateFn func(ctx context.Context, id string) (*domain.Loan, error)
	SaveFn             func(ctx context.Context, l *domain.Loan) error
	ListFn             func(ctx context.Context, f domain.Filter) ([]domain.Loan, error)
	DashboardFn        func(ctx context.Context, f domain.Filter) ([]domain.DashboardRow, error)
	SummaryFn          func(ctx context.Context) ([]domain.StatusTotal, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Loan, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Loan, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}

func (m *Repo) Dashboard(ctx context.Context, f domain.Filter) ([]domain.DashboardRow, error) {
	if m.DashboardFn != nil {
		return m.DashboardFn(ctx, f)
	}
	return nil, nil
}

func (m *Repo) Summary(ctx context.Context) ([]domain.StatusTotal, error) {
	if m.SummaryFn != nil {
		return m.SummaryFn(ctx)
	}
	return nil, nil
}
