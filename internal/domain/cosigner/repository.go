package cosigner

import "context"

type Repository interface {
	CreateBatch(ctx context.Context, cs []Cosigner) error
	ListByLoan(ctx context.Context, loanID string) ([]Cosigner, error)
}
