package sqlstore

import (
	"testing"
	"time"

	"credito-inmobiliario/internal/domain/investment"
	"credito-inmobiliario/internal/domain/loan"
	"credito-inmobiliario/internal/domain/profile"
	"credito-inmobiliario/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB creates an in-memory sqlite DB with the full schema. One connection keeps
// every statement on the same in-memory database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func amt(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func makeLoan(ownerID string, status loan.Status, requested, funded int64) *loan.Loan {
	return &loan.Loan{
		ID:              id.New(),
		Code:            id.NewLoanCode(),
		OwnerID:         ownerID,
		AmountRequested: amt(requested),
		AmountFunded:    amt(funded),
		InterestRateNM:  decimal.RequireFromString("0.018"),
		InterestRateEA:  decimal.RequireFromString("0.239"),
		TermMonths:      12,
		PaymentType:     loan.PaymentInterestOnly,
		PropertyAddress: "Cra 7 # 71-21",
		PropertyCity:    "Bogotá",
		PropertyType:    "apartamento",
		CommercialValue: amt(requested * 2),
		Status:          status,
	}
}

func makeProfile(role profile.Role, name string) *profile.Profile {
	return &profile.Profile{
		ID:                 id.New(),
		Role:               role,
		FullName:           name,
		Email:              name + "@example.com",
		VerificationStatus: profile.VerificationPending,
	}
}

func makeInvestment(loanID, investorID string, amount int64, status investment.Status, createdAt time.Time) *investment.Investment {
	return &investment.Investment{
		ID:             id.New(),
		LoanID:         loanID,
		InvestorID:     investorID,
		AmountInvested: amt(amount),
		Status:         status,
		Source:         investment.SourceInvestor,
		CreatedBy:      investorID,
		CreatedAt:      createdAt,
	}
}
