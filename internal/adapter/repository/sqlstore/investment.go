package sqlstore

import (
	"context"

	invDomain "credito-inmobiliario/internal/domain/investment"

	"gorm.io/gorm"
)

type InvestmentRepository struct{ db *gorm.DB }

func NewInvestmentRepository(db *gorm.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

func (r *InvestmentRepository) Create(ctx context.Context, inv *invDomain.Investment) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *InvestmentRepository) Save(ctx context.Context, inv *invDomain.Investment) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

func (r *InvestmentRepository) GetByID(ctx context.Context, id string) (*invDomain.Investment, error) {
	var out invDomain.Investment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, notFound(err, invDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *InvestmentRepository) List(ctx context.Context, f invDomain.Filter) ([]invDomain.Investment, error) {
	var out []invDomain.Investment
	q := r.db.WithContext(ctx).Model(&invDomain.Investment{})
	if f.LoanID != "" {
		q = q.Where("loan_id = ?", f.LoanID)
	}
	if f.InvestorID != "" {
		q = q.Where("investor_id = ?", f.InvestorID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	err := q.Order("created_at ASC, id ASC").Find(&out).Error
	return out, err
}

func (r *InvestmentRepository) Pending(ctx context.Context) ([]invDomain.TreasuryRow, error) {
	var out []invDomain.TreasuryRow
	err := r.db.WithContext(ctx).
		Table("investments").
		Select("investments.*, loans.code AS loan_code, COALESCE(profiles.full_name, '') AS investor_name").
		Joins("JOIN loans ON loans.id = investments.loan_id").
		Joins("LEFT JOIN profiles ON profiles.id = investments.investor_id").
		Where("investments.status = ?", invDomain.StatusPendingPayment).
		Order("investments.created_at ASC").
		Scan(&out).Error
	return out, err
}
