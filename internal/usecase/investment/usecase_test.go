package investment

import (
	"context"
	"errors"
	"testing"
	"time"

	"credito-inmobiliario/internal/domain/funding"
	domain "credito-inmobiliario/internal/domain/investment"
	"credito-inmobiliario/internal/domain/loan"
	"credito-inmobiliario/internal/domain/profile"
	"credito-inmobiliario/internal/domain/uow"
	"credito-inmobiliario/internal/testutil/investmentmock"
	"credito-inmobiliario/internal/testutil/loanmock"
	"credito-inmobiliario/internal/testutil/profilemock"
	"credito-inmobiliario/internal/testutil/uowmock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	loanID     = "loan-1"
	investorID = "investor-1"
	adminID    = "admin-1"
)

func amt(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// fixture wires a Usecase over one in-memory loan and records writes.
type fixture struct {
	loan    *loan.Loan
	created []*domain.Investment
	saved   []*domain.Investment
	store   map[string]*domain.Investment
	role    profile.Role
	uc      *Usecase
}

func newFixture(status loan.Status, requested, funded int64) *fixture {
	f := &fixture{
		loan:  &loan.Loan{ID: loanID, Status: status, AmountRequested: amt(requested), AmountFunded: amt(funded)},
		store: map[string]*domain.Investment{},
		role:  profile.RoleInversionista,
	}
	loans := &loanmock.Repo{
		GetByIDForUpdateFn: func(_ context.Context, id string) (*loan.Loan, error) {
			if id != f.loan.ID {
				return nil, loan.ErrNotFound
			}
			return f.loan, nil
		},
		SaveFn: func(_ context.Context, l *loan.Loan) error { f.loan = l; return nil },
	}
	invs := &investmentmock.Repo{
		CreateFn: func(_ context.Context, inv *domain.Investment) error {
			f.created = append(f.created, inv)
			f.store[inv.ID] = inv
			return nil
		},
		GetByIDFn: func(_ context.Context, id string) (*domain.Investment, error) {
			inv, ok := f.store[id]
			if !ok {
				return nil, domain.ErrNotFound
			}
			cp := *inv
			return &cp, nil
		},
		SaveFn: func(_ context.Context, inv *domain.Investment) error {
			f.saved = append(f.saved, inv)
			f.store[inv.ID] = inv
			return nil
		},
	}
	profiles := &profilemock.Repo{
		GetByIDFn: func(_ context.Context, id string) (*profile.Profile, error) {
			if id != investorID {
				return nil, profile.ErrNotFound
			}
			return &profile.Profile{ID: id, Role: f.role}, nil
		},
	}
	tx := uowmock.Passthrough(uow.Repos{Loans: loans, Investments: invs, Profiles: profiles})
	f.uc = NewUsecase(invs, tx)
	f.uc.now = func() time.Time { return time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC) }
	return f
}

func (f *fixture) seedPending(id string, amount int64) {
	f.store[id] = &domain.Investment{ID: id, LoanID: loanID, InvestorID: investorID, AmountInvested: amt(amount), Status: domain.StatusPendingPayment}
}

func TestInvest_RemainingCeiling(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		wantErr error
	}{
		{"exceeds available", 45_000_000, funding.ErrExceedsAvailable},
		{"exactly remaining", 40_000_000, nil},
		{"zero amount", 0, funding.ErrInvalidAmount},
		{"negative amount", -1, funding.ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(loan.StatusFundraising, 100_000_000, 60_000_000)
			dto, err := f.uc.Invest(context.Background(), InvestInput{LoanID: loanID, InvestorID: investorID, Amount: amt(tt.amount)})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, f.created, "rejected investment must not be persisted")
				return
			}
			require.NoError(t, err)
			require.Len(t, f.created, 1)
			assert.Equal(t, string(domain.StatusPendingPayment), dto.Status)
			assert.Equal(t, string(domain.SourceInvestor), dto.Source)
			assert.True(t, dto.AmountInvested.Equal(amt(tt.amount)))
			// pending investments do not move the funded total
			assert.True(t, f.loan.AmountFunded.Equal(amt(60_000_000)))
		})
	}
}

func TestInvest_IgnoresCustomRate(t *testing.T) {
	f := newFixture(loan.StatusFundraising, 100, 0)
	dto, err := f.uc.Invest(context.Background(), InvestInput{
		LoanID: loanID, InvestorID: investorID, Amount: amt(10),
		CustomRate: decimal.NewNullDecimal(decimal.RequireFromString("0.5")),
	})
	require.NoError(t, err)
	assert.False(t, dto.CustomRate.Valid)
}

func TestInvest_LoanNotFundraising(t *testing.T) {
	for _, st := range []loan.Status{loan.StatusDraft, loan.StatusActive, loan.StatusCancelled} {
		f := newFixture(st, 100_000_000, 0)
		_, err := f.uc.Invest(context.Background(), InvestInput{LoanID: loanID, InvestorID: investorID, Amount: amt(1_000)})
		assert.ErrorIs(t, err, loan.ErrNotFundraising, "status %s", st)
		assert.Empty(t, f.created)
	}
}

func TestInvest_UnknownLoan(t *testing.T) {
	f := newFixture(loan.StatusFundraising, 100, 0)
	_, err := f.uc.Invest(context.Background(), InvestInput{LoanID: "nope", InvestorID: investorID, Amount: amt(1)})
	assert.ErrorIs(t, err, loan.ErrNotFound)
}

func TestAddManual_RequiresInvestorRole(t *testing.T) {
	f := newFixture(loan.StatusFundraising, 100_000_000, 0)
	f.role = profile.RolePropietario
	_, err := f.uc.AddManual(context.Background(), adminID, InvestInput{LoanID: loanID, InvestorID: investorID, Amount: amt(5)})
	assert.ErrorIs(t, err, ErrNotInvestor)

	_, err = f.uc.AddManual(context.Background(), adminID, InvestInput{LoanID: loanID, InvestorID: "ghost", Amount: amt(5)})
	assert.ErrorIs(t, err, ErrNotInvestor)
	assert.Empty(t, f.created)
}

func TestAddManual_CustomRateAndCeiling(t *testing.T) {
	f := newFixture(loan.StatusFundraising, 100_000_000, 60_000_000)
	rate := decimal.NewNullDecimal(decimal.RequireFromString("0.02"))

	_, err := f.uc.AddManual(context.Background(), adminID, InvestInput{LoanID: loanID, InvestorID: investorID, Amount: amt(45_000_000), CustomRate: rate})
	require.ErrorIs(t, err, funding.ErrExceedsAvailable)

	dto, err := f.uc.AddManual(context.Background(), adminID, InvestInput{LoanID: loanID, InvestorID: investorID, Amount: amt(40_000_000), CustomRate: rate})
	require.NoError(t, err)
	assert.Equal(t, string(domain.SourceAdmin), dto.Source)
	assert.True(t, dto.CustomRate.Valid)
	assert.Equal(t, adminID, f.created[0].CreatedBy)

	_, err = f.uc.AddManual(context.Background(), adminID, InvestInput{LoanID: loanID, InvestorID: investorID, Amount: amt(1),
		CustomRate: decimal.NewNullDecimal(decimal.NewFromInt(2))})
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestApprove_IncrementsFundedAndActivates(t *testing.T) {
	f := newFixture(loan.StatusFundraising, 100_000_000, 60_000_000)
	f.seedPending("inv-a", 30_000_000)
	f.seedPending("inv-b", 10_000_000)

	dto, err := f.uc.Approve(context.Background(), "inv-a", adminID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), dto.Status)
	require.NotNil(t, dto.ConfirmedAt)
	assert.True(t, f.loan.AmountFunded.Equal(amt(90_000_000)))
	assert.Equal(t, loan.StatusFundraising, f.loan.Status)

	_, err = f.uc.Approve(context.Background(), "inv-b", adminID)
	require.NoError(t, err)
	assert.True(t, f.loan.AmountFunded.Equal(amt(100_000_000)))
	assert.Equal(t, loan.StatusActive, f.loan.Status)
}

func TestApprove_RefusesOverfunding(t *testing.T) {
	f := newFixture(loan.StatusFundraising, 100_000_000, 60_000_000)
	// two pendings that each fit, but not together
	f.seedPending("inv-a", 30_000_000)
	f.seedPending("inv-b", 30_000_000)

	_, err := f.uc.Approve(context.Background(), "inv-a", adminID)
	require.NoError(t, err)

	_, err = f.uc.Approve(context.Background(), "inv-b", adminID)
	require.ErrorIs(t, err, funding.ErrExceedsAvailable)
	assert.True(t, f.loan.AmountFunded.Equal(amt(90_000_000)))
	assert.Equal(t, domain.StatusPendingPayment, f.store["inv-b"].Status)
}

func TestApprove_OnlyFromPending(t *testing.T) {
	f := newFixture(loan.StatusFundraising, 100_000_000, 0)
	f.seedPending("inv-a", 10)
	_, err := f.uc.Reject(context.Background(), "inv-a", adminID)
	require.NoError(t, err)

	_, err = f.uc.Approve(context.Background(), "inv-a", adminID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.True(t, f.loan.AmountFunded.IsZero())
}

func TestReject_NoFundsMove(t *testing.T) {
	f := newFixture(loan.StatusFundraising, 100_000_000, 60_000_000)
	f.seedPending("inv-a", 40_000_000)

	dto, err := f.uc.Reject(context.Background(), "inv-a", adminID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusRejected), dto.Status)
	require.NotNil(t, dto.RejectedAt)
	assert.True(t, f.loan.AmountFunded.Equal(amt(60_000_000)))

	_, err = f.uc.Reject(context.Background(), "inv-a", adminID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestReview_UnknownInvestment(t *testing.T) {
	f := newFixture(loan.StatusFundraising, 100, 0)
	_, err := f.uc.Approve(context.Background(), "missing", adminID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestApprove_AfterManualActivation(t *testing.T) {
	// partly funded loan moved to active by an admin; the transfer is still reviewable
	f := newFixture(loan.StatusFundraising, 100_000_000, 0)
	_, err := f.uc.Invest(context.Background(), InvestInput{LoanID: loanID, InvestorID: investorID, Amount: amt(40_000_000)})
	require.NoError(t, err)
	require.Len(t, f.created, 1)
	f.loan.Status = loan.StatusActive

	dto, err := f.uc.Approve(context.Background(), f.created[0].ID, adminID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), dto.Status)
	assert.True(t, f.loan.AmountFunded.Equal(amt(40_000_000)))
	assert.Equal(t, loan.StatusActive, f.loan.Status)

	f.seedPending("inv-big", 70_000_000)
	_, err = f.uc.Approve(context.Background(), "inv-big", adminID)
	assert.ErrorIs(t, err, funding.ErrExceedsAvailable)
}

func TestApprove_FullFundingKeepsLateStatus(t *testing.T) {
	f := newFixture(loan.StatusLate, 100, 90)
	f.seedPending("inv-a", 10)

	_, err := f.uc.Approve(context.Background(), "inv-a", adminID)
	require.NoError(t, err)
	assert.True(t, f.loan.AmountFunded.Equal(amt(100)))
	assert.Equal(t, loan.StatusLate, f.loan.Status)
}
