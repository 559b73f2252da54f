package investment

import "context"

type Filter struct {
	LoanID     string
	InvestorID string
	Status     Status
}

type Repository interface {
	Create(ctx context.Context, inv *Investment) error
	GetByID(ctx context.Context, id string) (*Investment, error)
	Save(ctx context.Context, inv *Investment) error
	List(ctx context.Context, f Filter) ([]Investment, error)
	// Pending lists pending_payment investments for treasury review, oldest first.
	Pending(ctx context.Context) ([]TreasuryRow, error)
}
