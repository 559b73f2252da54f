package sqlstore

import (
	"context"

	loanDomain "credito-inmobiliario/internal/domain/loan"

	"gorm.io/gorm"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByID(ctx context.Context, id string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, notFound(err, loanDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, id string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	if err := forUpdate(r.db.WithContext(ctx)).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, notFound(err, loanDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *LoanRepository) List(ctx context.Context, f loanDomain.Filter) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	q := r.db.WithContext(ctx).Model(&loanDomain.Loan{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.OwnerID != "" {
		q = q.Where("owner_id = ?", f.OwnerID)
	}
	err := q.Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *LoanRepository) Dashboard(ctx context.Context, f loanDomain.Filter) ([]loanDomain.DashboardRow, error) {
	var out []loanDomain.DashboardRow
	q := r.db.WithContext(ctx).
		Table("loans").
		Select(`loans.*,
			COALESCE(profiles.full_name, '') AS owner_name,
			COUNT(investments.id) AS pending_count,
			COALESCE(SUM(investments.amount_invested), 0) AS pending_amount`).
		Joins("LEFT JOIN profiles ON profiles.id = loans.owner_id").
		Joins("LEFT JOIN investments ON investments.loan_id = loans.id AND investments.status = ?", "pending_payment").
		Group("loans.id, profiles.full_name")
	if f.Status != "" {
		q = q.Where("loans.status = ?", f.Status)
	}
	if f.OwnerID != "" {
		q = q.Where("loans.owner_id = ?", f.OwnerID)
	}
	err := q.Order("loans.created_at DESC").Scan(&out).Error
	return out, err
}

func (r *LoanRepository) Summary(ctx context.Context) ([]loanDomain.StatusTotal, error) {
	var out []loanDomain.StatusTotal
	err := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Select(`status,
			COUNT(*) AS count,
			COALESCE(SUM(amount_requested), 0) AS amount_requested,
			COALESCE(SUM(amount_funded), 0) AS amount_funded`).
		Group("status").
		Order("status").
		Scan(&out).Error
	return out, err
}
