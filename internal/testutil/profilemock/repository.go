package profilemock

import (
	"context"

	domain "credito-inmobiliario/internal/domain/profile"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn  func(ctx context.Context, p *domain.Profile) error
	GetByIDFn func(ctx context.Context, id string) (*domain.Profile, error)
	SaveFn    func(ctx context.Context, p *domain.Profile) error
	ListFn    func(ctx context.Context, role domain.Role) ([]domain.Profile, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Profile) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Save(ctx context.Context, p *domain.Profile) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, role domain.Role) ([]domain.Profile, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, role)
	}
	return nil, nil
}
