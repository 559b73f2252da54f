package cosigner

import "time"

// Cosigner is attached when the loan is created and never changed afterwards.
type Cosigner struct {
	ID         string    `gorm:"primaryKey;size:36;column:id" json:"id"`
	LoanID     string    `gorm:"size:36;index:idx_loan_cosigners_loan;column:loan_id" json:"loan_id"`
	FullName   string    `gorm:"size:160;column:full_name" json:"full_name"`
	DocumentID string    `gorm:"size:40;column:document_id" json:"document_id"`
	Email      string    `gorm:"size:255;column:email" json:"email"`
	Phone      string    `gorm:"size:40;column:phone" json:"phone"`
	CreatedAt  time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (Cosigner) TableName() string { return "loan_cosigners" }
