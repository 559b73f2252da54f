package investment

import (
	"context"
	"errors"
	"time"

	"credito-inmobiliario/internal/domain/funding"
	domain "credito-inmobiliario/internal/domain/investment"
	"credito-inmobiliario/internal/domain/loan"
	"credito-inmobiliario/internal/domain/profile"
	"credito-inmobiliario/internal/domain/uow"
	"credito-inmobiliario/pkg/id"

	"github.com/shopspring/decimal"
)

var (
	ErrNotInvestor = errors.New("investor profile not found")
	ErrInvalidRate = errors.New("custom rate must be between 0 and 1")
)

var one = decimal.NewFromInt(1)

type Usecase struct {
	investments domain.Repository
	uow         uow.UnitOfWork
	now         func() time.Time
}

func NewUsecase(investments domain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{investments: investments, uow: tx, now: func() time.Time { return time.Now().UTC() }}
}

// Invest is the investor self-service entry point.
func (u *Usecase) Invest(ctx context.Context, in InvestInput) (*InvestmentDTO, error) {
	in.CustomRate = decimal.NullDecimal{}
	return u.create(ctx, in, domain.SourceInvestor, in.InvestorID)
}

// AddManual records a capital placement an admin enters on behalf of an investor.
func (u *Usecase) AddManual(ctx context.Context, adminID string, in InvestInput) (*InvestmentDTO, error) {
	if in.CustomRate.Valid && (in.CustomRate.Decimal.IsNegative() || in.CustomRate.Decimal.GreaterThan(one)) {
		return nil, ErrInvalidRate
	}
	return u.create(ctx, in, domain.SourceAdmin, adminID)
}

// create checks the amount against confirmed funds only; pending investments may together
// exceed what is left. Approve enforces the ceiling on the funded total.
func (u *Usecase) create(ctx context.Context, in InvestInput, src domain.Source, createdBy string) (*InvestmentDTO, error) {
	var out *InvestmentDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loan.Loan) error {
		if l.Status != loan.StatusFundraising {
			return loan.ErrNotFundraising
		}
		if err := funding.CheckInvestable(in.Amount, l.AmountRequested, l.AmountFunded); err != nil {
			return err
		}
		p, err := r.Profiles.GetByID(ctx, in.InvestorID)
		if err != nil {
			if errors.Is(err, profile.ErrNotFound) {
				return ErrNotInvestor
			}
			return err
		}
		if p.Role != profile.RoleInversionista {
			return ErrNotInvestor
		}

		inv := &domain.Investment{
			ID:             id.New(),
			LoanID:         l.ID,
			InvestorID:     in.InvestorID,
			AmountInvested: in.Amount,
			Status:         domain.StatusPendingPayment,
			CustomRate:     in.CustomRate,
			Source:         src,
			CreatedBy:      createdBy,
			CreatedAt:      u.now(),
		}
		if err := r.Investments.Create(ctx, inv); err != nil {
			return err
		}
		out = toDTO(inv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Approve confirms a pending investment and adds it to the loan's funded amount in the
// same transaction. A confirmation that would overfund the loan is refused. The loan
// status is not a precondition; only a fundraising loan is promoted to active.
func (u *Usecase) Approve(ctx context.Context, investmentID, adminID string) (*InvestmentDTO, error) {
	return u.review(ctx, investmentID, func(r uow.Repos, l *loan.Loan, inv *domain.Investment) error {
		if inv.AmountInvested.GreaterThan(funding.Remaining(l.AmountRequested, l.AmountFunded)) {
			return funding.ErrExceedsAvailable
		}
		if err := inv.Confirm(adminID, u.now()); err != nil {
			return err
		}
		l.AmountFunded = l.AmountFunded.Add(inv.AmountInvested)
		if l.Status == loan.StatusFundraising && l.AmountFunded.GreaterThanOrEqual(l.AmountRequested) {
			l.Status = loan.StatusActive
		}
		if err := r.Investments.Save(ctx, inv); err != nil {
			return err
		}
		return r.Loans.Save(ctx, l)
	})
}

// Reject marks a pending investment rejected; the loan is left untouched.
func (u *Usecase) Reject(ctx context.Context, investmentID, adminID string) (*InvestmentDTO, error) {
	return u.review(ctx, investmentID, func(r uow.Repos, _ *loan.Loan, inv *domain.Investment) error {
		if err := inv.Reject(adminID, u.now()); err != nil {
			return err
		}
		return r.Investments.Save(ctx, inv)
	})
}

func (u *Usecase) review(ctx context.Context, investmentID string, apply func(uow.Repos, *loan.Loan, *domain.Investment) error) (*InvestmentDTO, error) {
	found, err := u.investments.GetByID(ctx, investmentID)
	if err != nil {
		return nil, err
	}

	var out *InvestmentDTO
	err = u.uow.WithinLoanTx(ctx, found.LoanID, func(r uow.Repos, l *loan.Loan) error {
		// re-read under the loan lock; a concurrent review may have won
		inv, err := r.Investments.GetByID(ctx, investmentID)
		if err != nil {
			return err
		}
		if err := apply(r, l, inv); err != nil {
			return err
		}
		out = toDTO(inv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Pending lists investments awaiting treasury review.
func (u *Usecase) Pending(ctx context.Context) ([]domain.TreasuryRow, error) {
	return u.investments.Pending(ctx)
}

func (u *Usecase) ListByLoan(ctx context.Context, loanID string) ([]InvestmentDTO, error) {
	return u.list(ctx, domain.Filter{LoanID: loanID})
}

func (u *Usecase) list(ctx context.Context, f domain.Filter) ([]InvestmentDTO, error) {
	rows, err := u.investments.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]InvestmentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i]))
	}
	return out, nil
}
