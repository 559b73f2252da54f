package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"credito-inmobiliario/internal/domain/funding"
	"credito-inmobiliario/internal/domain/investment"
	"credito-inmobiliario/internal/domain/loan"
	domain "credito-inmobiliario/internal/domain/payment"
	"credito-inmobiliario/internal/domain/uow"
	"credito-inmobiliario/pkg/id"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("payment components must be non-negative and total greater than zero")

type Usecase struct {
	payments    domain.Repository
	loans       loan.Repository
	investments investment.Repository
	uow         uow.UnitOfWork
	now         func() time.Time
}

func NewUsecase(p domain.Repository, l loan.Repository, inv investment.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{payments: p, loans: l, investments: inv, uow: tx, now: time.Now}
}

func toFunding(rows []domain.LoanPayment) []funding.Payment {
	out := make([]funding.Payment, 0, len(rows))
	for _, p := range rows {
		out = append(out, funding.Payment{Capital: p.AmountCapital, Interest: p.AmountInterest, LateFee: p.AmountLateFee})
	}
	return out
}

// Register appends a repayment to the loan ledger. The loan is marked paid once the
// cumulative capital covers what was funded.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*domain.LoanPayment, error) {
	if in.Capital.IsNegative() || in.Interest.IsNegative() || in.LateFee.IsNegative() {
		return nil, ErrInvalidAmount
	}
	if !in.Capital.Add(in.Interest).Add(in.LateFee).IsPositive() {
		return nil, ErrInvalidAmount
	}
	date := in.PaymentDate
	if date.IsZero() {
		date = u.now()
	}

	var out *domain.LoanPayment
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loan.Loan) error {
		if l.Status != loan.StatusActive && l.Status != loan.StatusLate {
			return fmt.Errorf("%w: loan is %s", loan.ErrNotRepaying, l.Status)
		}
		p := &domain.LoanPayment{
			ID:             id.New(),
			LoanID:         l.ID,
			AmountCapital:  in.Capital,
			AmountInterest: in.Interest,
			AmountLateFee:  in.LateFee,
			PaymentDate:    date,
			RecordedBy:     in.RecordedBy,
			Notes:          in.Notes,
		}
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}
		ledger, err := r.Payments.ListByLoan(ctx, l.ID)
		if err != nil {
			return err
		}
		totals := funding.Totals(toFunding(ledger))
		if l.AmountFunded.IsPositive() && totals.Capital.GreaterThanOrEqual(l.AmountFunded) {
			l.Status = loan.StatusPaid
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) ListByLoan(ctx context.Context, loanID string) ([]domain.LoanPayment, funding.PaymentTotals, error) {
	rows, err := u.payments.ListByLoan(ctx, loanID)
	if err != nil {
		return nil, funding.PaymentTotals{}, err
	}
	return rows, funding.Totals(toFunding(rows)), nil
}

// Portfolio recomputes the investor's allocations from each loan's full ledger.
func (u *Usecase) Portfolio(ctx context.Context, investorID string) (*Portfolio, error) {
	invs, err := u.investments.List(ctx, investment.Filter{InvestorID: investorID})
	if err != nil {
		return nil, err
	}
	pf := &Portfolio{
		Holdings:         make([]Holding, 0, len(invs)),
		TotalInvested:    decimal.Zero,
		TotalPending:     decimal.Zero,
		CapitalRecovered: decimal.Zero,
		InterestEarned:   decimal.Zero,
		LateFeesEarned:   decimal.Zero,
	}
	loans := map[string]*loan.Loan{}
	totals := map[string]funding.PaymentTotals{}

	for _, inv := range invs {
		if inv.Status == investment.StatusRejected {
			continue
		}
		l, ok := loans[inv.LoanID]
		if !ok {
			if l, err = u.loans.GetByID(ctx, inv.LoanID); err != nil {
				return nil, err
			}
			loans[inv.LoanID] = l
		}
		h := Holding{
			InvestmentID:   inv.ID,
			LoanID:         l.ID,
			LoanCode:       l.Code,
			LoanStatus:     string(l.Status),
			PropertyCity:   l.PropertyCity,
			InterestRateNM: l.InterestRateNM,
			AmountInvested: inv.AmountInvested,
			Status:         string(inv.Status),
		}
		if inv.Status == investment.StatusPendingPayment {
			pf.TotalPending = pf.TotalPending.Add(inv.AmountInvested)
			pf.Holdings = append(pf.Holdings, h)
			continue
		}

		t, ok := totals[l.ID]
		if !ok {
			rows, err := u.payments.ListByLoan(ctx, l.ID)
			if err != nil {
				return nil, err
			}
			t = funding.Totals(toFunding(rows))
			totals[l.ID] = t
		}
		a := funding.Allocate(inv.AmountInvested, l.AmountRequested, t)
		h.Allocation = &a
		pf.Holdings = append(pf.Holdings, h)

		pf.TotalInvested = pf.TotalInvested.Add(inv.AmountInvested)
		pf.CapitalRecovered = pf.CapitalRecovered.Add(a.CapitalRecovered)
		pf.InterestEarned = pf.InterestEarned.Add(a.InterestEarned)
		pf.LateFeesEarned = pf.LateFeesEarned.Add(a.LateFeesEarned)
	}
	return pf, nil
}
