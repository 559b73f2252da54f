package profile

import "context"

type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	Save(ctx context.Context, p *Profile) error
	// List returns every profile when role is empty.
	List(ctx context.Context, role Role) ([]Profile, error)
}
