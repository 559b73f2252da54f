package loan

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"credito-inmobiliario/internal/domain/cosigner"
	"credito-inmobiliario/internal/domain/funding"
	"credito-inmobiliario/internal/domain/investment"
	domain "credito-inmobiliario/internal/domain/loan"
	"credito-inmobiliario/internal/domain/profile"
	"credito-inmobiliario/internal/domain/uow"
	"credito-inmobiliario/pkg/id"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotOwner     = errors.New("owner must be a propietario")
	ErrNotInvestor  = errors.New("initial investment must belong to an inversionista")
)

type Usecase struct {
	repo      domain.Repository
	cosigners cosigner.Repository
	uow       uow.UnitOfWork
}

func NewUsecase(r domain.Repository, cs cosigner.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, cosigners: cs, uow: tx}
}

func validate(in CreateLoanInput) error {
	switch {
	case !in.AmountRequested.IsPositive():
		return fmt.Errorf("%w: amount requested must be greater than zero", ErrInvalidInput)
	case in.InterestRateNM.IsNegative() || in.InterestRateNM.GreaterThanOrEqual(decimal.NewFromInt(1)):
		return fmt.Errorf("%w: monthly rate must be in [0, 1)", ErrInvalidInput)
	case in.TermMonths <= 0:
		return fmt.Errorf("%w: term must be at least one month", ErrInvalidInput)
	case !in.PaymentType.Valid():
		return fmt.Errorf("%w: unknown payment type %q", ErrInvalidInput, in.PaymentType)
	case in.CommercialValue.IsNegative():
		return fmt.Errorf("%w: commercial value cannot be negative", ErrInvalidInput)
	case strings.TrimSpace(in.PropertyAddress) == "" || strings.TrimSpace(in.PropertyCity) == "":
		return fmt.Errorf("%w: property address and city are required", ErrInvalidInput)
	}
	for _, c := range in.Cosigners {
		if strings.TrimSpace(c.FullName) == "" || strings.TrimSpace(c.DocumentID) == "" {
			return fmt.Errorf("%w: cosigner name and document are required", ErrInvalidInput)
		}
	}
	return nil
}

// EffectiveAnnual converts a nominal monthly rate to the effective annual one.
func EffectiveAnnual(nm decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	return one.Add(nm).Pow(decimal.NewFromInt(12)).Sub(one).Round(6)
}

// Create is the admin full credit-creation form. The loan, its cosigners and any initial
// investments are written in one transaction.
func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanView, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	if in.Draft && len(in.Investments) > 0 {
		return nil, fmt.Errorf("%w: draft loans cannot receive investments", ErrInvalidInput)
	}

	l := newLoan(in)
	if in.Draft {
		l.Status = domain.StatusDraft
	}
	var view *LoanView
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := requireRole(ctx, r.Profiles, in.OwnerID, profile.RolePropietario, ErrNotOwner); err != nil {
			return err
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		cs := newCosigners(l.ID, in.Cosigners)
		if err := r.Cosigners.CreateBatch(ctx, cs); err != nil {
			return err
		}

		// Initial investments share the same ceiling as every other entry point.
		// Nothing is confirmed yet, so each is checked against the requested amount
		// less what the form already placed.
		placed := decimal.Zero
		for _, ii := range in.Investments {
			if err := funding.CheckInvestable(ii.Amount, l.AmountRequested, l.AmountFunded.Add(placed)); err != nil {
				return err
			}
			if err := requireRole(ctx, r.Profiles, ii.InvestorID, profile.RoleInversionista, ErrNotInvestor); err != nil {
				return err
			}
			inv := &investment.Investment{
				ID:             id.New(),
				LoanID:         l.ID,
				InvestorID:     ii.InvestorID,
				AmountInvested: ii.Amount,
				Status:         investment.StatusPendingPayment,
				CustomRate:     ii.CustomRate,
				Source:         investment.SourceAdmin,
				CreatedBy:      in.CreatedBy,
			}
			if err := r.Investments.Create(ctx, inv); err != nil {
				return err
			}
			placed = placed.Add(ii.Amount)
		}

		view = &LoanView{LoanDTO: toDTO(l), Cosigners: cs}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Request lets a propietario submit a loan request; it starts as a draft for admin review.
func (u *Usecase) Request(ctx context.Context, in CreateLoanInput) (*LoanView, error) {
	in.Draft = true
	in.Investments = nil
	return u.Create(ctx, in)
}

func requireRole(ctx context.Context, profiles profile.Repository, userID string, role profile.Role, errWrong error) error {
	p, err := profiles.GetByID(ctx, userID)
	if errors.Is(err, profile.ErrNotFound) {
		return errWrong
	}
	if err != nil {
		return err
	}
	if p.Role != role {
		return errWrong
	}
	return nil
}

func newLoan(in CreateLoanInput) *domain.Loan {
	ea := in.InterestRateEA
	if ea.IsZero() {
		ea = EffectiveAnnual(in.InterestRateNM)
	}
	return &domain.Loan{
		ID:              id.New(),
		Code:            id.NewLoanCode(),
		OwnerID:         in.OwnerID,
		AmountRequested: in.AmountRequested,
		AmountFunded:    decimal.Zero,
		InterestRateNM:  in.InterestRateNM,
		InterestRateEA:  ea,
		TermMonths:      in.TermMonths,
		PaymentType:     in.PaymentType,
		PropertyAddress: strings.TrimSpace(in.PropertyAddress),
		PropertyCity:    strings.TrimSpace(in.PropertyCity),
		PropertyType:    strings.TrimSpace(in.PropertyType),
		CommercialValue: in.CommercialValue,
		Status:          domain.StatusFundraising,
	}
}

func newCosigners(loanID string, in []CosignerInput) []cosigner.Cosigner {
	out := make([]cosigner.Cosigner, 0, len(in))
	for _, c := range in {
		out = append(out, cosigner.Cosigner{
			ID:         id.New(),
			LoanID:     loanID,
			FullName:   strings.TrimSpace(c.FullName),
			DocumentID: strings.TrimSpace(c.DocumentID),
			Email:      strings.TrimSpace(c.Email),
			Phone:      strings.TrimSpace(c.Phone),
		})
	}
	return out
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanView, error) {
	l, err := u.repo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	cs, err := u.cosigners.ListByLoan(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	return &LoanView{LoanDTO: toDTO(l), Cosigners: cs}, nil
}

// ListFundraising is the investor opportunities list.
func (u *Usecase) ListFundraising(ctx context.Context) ([]LoanDTO, error) {
	return u.list(ctx, domain.Filter{Status: domain.StatusFundraising})
}

func (u *Usecase) ListByOwner(ctx context.Context, ownerID string) ([]LoanDTO, error) {
	return u.list(ctx, domain.Filter{OwnerID: ownerID})
}

func (u *Usecase) list(ctx context.Context, f domain.Filter) ([]LoanDTO, error) {
	rows, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toDTO(&rows[i]))
	}
	return out, nil
}

func (u *Usecase) Dashboard(ctx context.Context, status domain.Status) ([]domain.DashboardRow, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	return u.repo.Dashboard(ctx, domain.Filter{Status: status})
}

func (u *Usecase) Summary(ctx context.Context) ([]domain.StatusTotal, error) {
	return u.repo.Summary(ctx)
}

// UpdateStatus applies an admin lifecycle transition. Terms in the input complete a draft
// and are refused on any other loan. A loan leaves draft only with a positive monthly rate.
func (u *Usecase) UpdateStatus(ctx context.Context, loanID string, in StatusInput) (*LoanDTO, error) {
	if !in.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, in.Status)
	}
	var out LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if !domain.CanTransition(l.Status, in.Status) {
			return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, l.Status, in.Status)
		}
		if in.hasTerms() {
			if l.Status != domain.StatusDraft {
				return fmt.Errorf("%w: terms can only change on a draft", ErrInvalidInput)
			}
			if err := applyTerms(l, in); err != nil {
				return err
			}
		}
		if in.Status == domain.StatusFundraising && !l.InterestRateNM.IsPositive() {
			return fmt.Errorf("%w: monthly rate is required to publish a draft", ErrInvalidInput)
		}
		l.Status = in.Status
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		out = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func applyTerms(l *domain.Loan, in StatusInput) error {
	if in.InterestRateNM.Valid {
		nm := in.InterestRateNM.Decimal
		if nm.IsNegative() || nm.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return fmt.Errorf("%w: monthly rate must be in [0, 1)", ErrInvalidInput)
		}
		l.InterestRateNM = nm
		l.InterestRateEA = EffectiveAnnual(nm)
	}
	if in.InterestRateEA.Valid && !in.InterestRateEA.Decimal.IsZero() {
		l.InterestRateEA = in.InterestRateEA.Decimal
	}
	if in.TermMonths > 0 {
		l.TermMonths = in.TermMonths
	}
	if in.PaymentType != "" {
		if !in.PaymentType.Valid() {
			return fmt.Errorf("%w: unknown payment type %q", ErrInvalidInput, in.PaymentType)
		}
		l.PaymentType = in.PaymentType
	}
	return nil
}
