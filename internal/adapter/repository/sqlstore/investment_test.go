package sqlstore

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "credito-inmobiliario/internal/domain/investment"
	"credito-inmobiliario/internal/domain/loan"
	"credito-inmobiliario/internal/domain/profile"
	"credito-inmobiliario/pkg/id"
)

func TestInvestment_CreateGetSave(t *testing.T) {
	db := openTestDB(t)
	repo := NewInvestmentRepository(db)
	ctx := context.Background()

	inv := makeInvestment(id.New(), id.New(), 3_000_000, domain.StatusPendingPayment, time.Now().UTC())
	if err := repo.Create(ctx, inv); err != nil {
		t.Fatalf("Create: %v", err)
	}

	admin := id.New()
	if err := inv.Confirm(admin, time.Now().UTC()); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if err := repo.Save(ctx, inv); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByID(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != domain.StatusConfirmed || got.ReviewedBy == nil || *got.ReviewedBy != admin || got.ConfirmedAt == nil {
		t.Fatalf("unexpected investment: %+v", got)
	}
	if got.CustomRate.Valid {
		t.Fatalf("custom rate should be null")
	}

	if _, err := repo.GetByID(ctx, id.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestInvestment_ListAndPending(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewInvestmentRepository(db)

	investor := makeProfile(profile.RoleInversionista, "carlos")
	if err := NewProfileRepository(db).Create(ctx, investor); err != nil {
		t.Fatal(err)
	}
	l := makeLoan(id.New(), loan.StatusFundraising, 100_000_000, 0)
	if err := NewLoanRepository(db).Create(ctx, l); err != nil {
		t.Fatal(err)
	}

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	older := makeInvestment(l.ID, investor.ID, 1_000_000, domain.StatusPendingPayment, base)
	newer := makeInvestment(l.ID, investor.ID, 2_000_000, domain.StatusPendingPayment, base.Add(time.Hour))
	done := makeInvestment(l.ID, id.New(), 4_000_000, domain.StatusConfirmed, base)
	for _, inv := range []*domain.Investment{newer, older, done} {
		if err := repo.Create(ctx, inv); err != nil {
			t.Fatal(err)
		}
	}

	pending, err := repo.Pending(ctx)
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending = %d, want 2", len(pending))
	}
	if pending[0].ID != older.ID {
		t.Fatalf("pending not oldest first: %+v", pending)
	}
	if pending[0].LoanCode != l.Code || pending[0].InvestorName != "carlos" {
		t.Fatalf("treasury row not joined: %+v", pending[0])
	}

	mine, err := repo.List(ctx, domain.Filter{InvestorID: investor.ID})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("investor investments = %d, want 2", len(mine))
	}

	confirmed, err := repo.List(ctx, domain.Filter{LoanID: l.ID, Status: domain.StatusConfirmed})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(confirmed) != 1 || confirmed[0].ID != done.ID {
		t.Fatalf("unexpected confirmed list: %+v", confirmed)
	}
}
