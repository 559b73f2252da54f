package sqlstore

import (
	"credito-inmobiliario/internal/domain/cosigner"
	"credito-inmobiliario/internal/domain/investment"
	"credito-inmobiliario/internal/domain/loan"
	"credito-inmobiliario/internal/domain/payment"
	"credito-inmobiliario/internal/domain/profile"

	"gorm.io/gorm"
)

// Migrate creates the tables for local development and tests. Hosted deployments own
// their schema and never call this.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&profile.Profile{},
		&loan.Loan{},
		&cosigner.Cosigner{},
		&investment.Investment{},
		&payment.LoanPayment{},
	)
}
