package sqlstore

import (
	"context"

	cosignerDomain "credito-inmobiliario/internal/domain/cosigner"

	"gorm.io/gorm"
)

type CosignerRepository struct{ db *gorm.DB }

func NewCosignerRepository(db *gorm.DB) *CosignerRepository { return &CosignerRepository{db: db} }

func (r *CosignerRepository) CreateBatch(ctx context.Context, cs []cosignerDomain.Cosigner) error {
	if len(cs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&cs).Error
}

func (r *CosignerRepository) ListByLoan(ctx context.Context, loanID string) ([]cosignerDomain.Cosigner, error) {
	var out []cosignerDomain.Cosigner
	err := r.db.WithContext(ctx).Where("loan_id = ?", loanID).Order("created_at ASC").Find(&out).Error
	return out, err
}
