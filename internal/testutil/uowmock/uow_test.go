package uowmock

import (
	"context"
	"errors"
	"testing"

	"credito-inmobiliario/internal/domain/loan"
	"credito-inmobiliario/internal/domain/uow"
	"credito-inmobiliario/internal/testutil/investmentmock"
	"credito-inmobiliario/internal/testutil/loanmock"
)

func TestUoW_WithinTx_Happy(t *testing.T) {
	ctx := context.Background()

	loans := &loanmock.Repo{}
	invs := &investmentmock.Repo{}
	repos := uow.Repos{Loans: loans, Investments: invs}

	innerCalled := false
	m := &UoW{
		WithinTxFn: func(gotCtx context.Context, fn func(r uow.Repos) error) error {
			if gotCtx != ctx {
				t.Fatalf("WithinTx: ctx mismatch")
			}
			return fn(repos)
		},
	}

	err := m.WithinTx(ctx, func(r uow.Repos) error {
		innerCalled = true
		if r.Loans != loans || r.Investments != invs {
			t.Fatalf("WithinTx: repos not forwarded correctly")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinTx: unexpected err: %v", err)
	}
	if !innerCalled {
		t.Fatalf("WithinTx: inner fn not called")
	}
}

func TestUoW_Default_Unimplemented(t *testing.T) {
	ctx := context.Background()
	m := New()
	if err := m.WithinTx(ctx, func(uow.Repos) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinTx default: want errUnimplemented, got %v", err)
	}
	if err := m.WithinLoanTx(ctx, "LN", func(uow.Repos, *loan.Loan) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinLoanTx default: want errUnimplemented, got %v", err)
	}
}

func TestPassthrough_WithinLoanTx_ResolvesLoan(t *testing.T) {
	lock := &loan.Loan{ID: "LN-7"}
	loans := &loanmock.Repo{
		GetByIDForUpdateFn: func(_ context.Context, id string) (*loan.Loan, error) {
			if id != "LN-7" {
				t.Fatalf("unexpected id %s", id)
			}
			return lock, nil
		},
	}
	m := Passthrough(uow.Repos{Loans: loans})

	var got *loan.Loan
	if err := m.WithinLoanTx(context.Background(), "LN-7", func(_ uow.Repos, l *loan.Loan) error {
		got = l
		return nil
	}); err != nil {
		t.Fatalf("WithinLoanTx: %v", err)
	}
	if got != lock {
		t.Fatalf("loan not forwarded")
	}

	loans.GetByIDForUpdateFn = func(context.Context, string) (*loan.Loan, error) { return nil, loan.ErrNotFound }
	err := m.WithinLoanTx(context.Background(), "LN-8", func(uow.Repos, *loan.Loan) error {
		t.Fatalf("fn must not run")
		return nil
	})
	if !errors.Is(err, loan.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestUoW_Reset(t *testing.T) {
	m := New().WithWithinTx(func(context.Context, func(uow.Repos) error) error { return nil })
	m.Reset()
	if m.WithinTxFn != nil || m.WithinLoanTxFn != nil {
		t.Fatalf("Reset did not clear funcs")
	}
}
