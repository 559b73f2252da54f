package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft       Status = "draft"
	StatusFundraising Status = "fundraising"
	StatusActive      Status = "active"
	StatusLate        Status = "late"
	StatusPaid        Status = "paid"
	StatusDefaulted   Status = "defaulted"
	StatusCancelled   Status = "cancelled"
)

type PaymentType string

const (
	PaymentInterestOnly         PaymentType = "interest_only"
	PaymentPrincipalAndInterest PaymentType = "principal_and_interest"
)

var (
	ErrNotFound          = errors.New("loan not found")
	ErrInvalidTransition = errors.New("invalid loan status transition")
	ErrNotFundraising    = errors.New("loan is not open for fundraising")
	ErrNotRepaying       = errors.New("loan is not active")
)

// transitions lists the statuses an admin may move a loan to from each status.
var transitions = map[Status][]Status{
	StatusDraft:       {StatusFundraising, StatusCancelled},
	StatusFundraising: {StatusActive, StatusCancelled},
	StatusActive:      {StatusLate, StatusPaid, StatusDefaulted},
	StatusLate:        {StatusActive, StatusPaid, StatusDefaulted},
}

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusFundraising, StatusActive, StatusLate, StatusPaid, StatusDefaulted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether from → to is a legal admin transition.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (p PaymentType) Valid() bool {
	return p == PaymentInterestOnly || p == PaymentPrincipalAndInterest
}

type Loan struct {
	ID              string          `gorm:"primaryKey;size:36;column:id" json:"id"`
	Code            string          `gorm:"size:16;uniqueIndex:ux_loans_code;column:code" json:"code"`
	OwnerID         string          `gorm:"size:36;index:idx_loans_owner;column:owner_id" json:"owner_id"`
	AmountRequested decimal.Decimal `gorm:"type:numeric(18,2);column:amount_requested" json:"amount_requested"`
	AmountFunded    decimal.Decimal `gorm:"type:numeric(18,2);column:amount_funded" json:"amount_funded"`
	InterestRateNM  decimal.Decimal `gorm:"type:numeric(8,6);column:interest_rate_nm" json:"interest_rate_nm"`
	InterestRateEA  decimal.Decimal `gorm:"type:numeric(8,6);column:interest_rate_ea" json:"interest_rate_ea"`
	TermMonths      int             `gorm:"column:term_months" json:"term_months"`
	PaymentType     PaymentType     `gorm:"size:32;column:payment_type" json:"payment_type"`
	PropertyAddress string          `gorm:"type:text;column:property_address" json:"property_address"`
	PropertyCity    string          `gorm:"size:120;column:property_city" json:"property_city"`
	PropertyType    string          `gorm:"size:60;column:property_type" json:"property_type"`
	CommercialValue decimal.Decimal `gorm:"type:numeric(18,2);column:commercial_value" json:"commercial_value"`
	Status          Status          `gorm:"size:20;index:idx_loans_status;column:status" json:"status"`
	CreatedAt       time.Time       `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime;column:updated_at" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// DashboardRow is one line of the admin loans dashboard view.
type DashboardRow struct {
	Loan
	OwnerName     string          `gorm:"column:owner_name" json:"owner_name"`
	PendingCount  int64           `gorm:"column:pending_count" json:"pending_count"`
	PendingAmount decimal.Decimal `gorm:"column:pending_amount" json:"pending_amount"`
}

// StatusTotal aggregates loans sharing a status.
type StatusTotal struct {
	Status          Status          `gorm:"column:status" json:"status"`
	Count           int64           `gorm:"column:count" json:"count"`
	AmountRequested decimal.Decimal `gorm:"column:amount_requested" json:"amount_requested"`
	AmountFunded    decimal.Decimal `gorm:"column:amount_funded" json:"amount_funded"`
}
