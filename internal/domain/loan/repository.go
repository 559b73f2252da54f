package loan

import "context"

type Filter struct {
	Status  Status
	OwnerID string
}

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id string) (*Loan, error)
	// GetByIDForUpdate row-locks the loan for the rest of the surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id string) (*Loan, error)
	Save(ctx context.Context, l *Loan) error
	List(ctx context.Context, f Filter) ([]Loan, error)

	// Admin dashboard view
	Dashboard(ctx context.Context, f Filter) ([]DashboardRow, error)
	Summary(ctx context.Context) ([]StatusTotal, error)
}
