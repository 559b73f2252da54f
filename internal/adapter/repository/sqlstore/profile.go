package sqlstore

import (
	"context"

	profileDomain "credito-inmobiliario/internal/domain/profile"

	"gorm.io/gorm"
)

type ProfileRepository struct{ db *gorm.DB }

func NewProfileRepository(db *gorm.DB) *ProfileRepository { return &ProfileRepository{db: db} }

func (r *ProfileRepository) Create(ctx context.Context, p *profileDomain.Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProfileRepository) Save(ctx context.Context, p *profileDomain.Profile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*profileDomain.Profile, error) {
	var out profileDomain.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, notFound(err, profileDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *ProfileRepository) List(ctx context.Context, role profileDomain.Role) ([]profileDomain.Profile, error) {
	var out []profileDomain.Profile
	q := r.db.WithContext(ctx).Model(&profileDomain.Profile{})
	if role != "" {
		q = q.Where("role = ?", role)
	}
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}
