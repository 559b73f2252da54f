package profile

import (
	"errors"
	"time"
)

type Role string

const (
	RoleAdmin         Role = "admin"
	RoleInversionista Role = "inversionista"
	RolePropietario   Role = "propietario"
)

type Verification string

const (
	VerificationPending  Verification = "pending"
	VerificationVerified Verification = "verified"
	VerificationRejected Verification = "rejected"
)

var ErrNotFound = errors.New("profile not found")

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleInversionista || r == RolePropietario
}

// Home is the root of the dashboard area a role may use.
func (r Role) Home() string { return "/dashboard/" + string(r) }

func (v Verification) Valid() bool {
	return v == VerificationPending || v == VerificationVerified || v == VerificationRejected
}

type Profile struct {
	ID                 string       `gorm:"primaryKey;size:36;column:id" json:"id"`
	Role               Role         `gorm:"size:20;index:idx_profiles_role;column:role" json:"role"`
	FullName           string       `gorm:"size:160;column:full_name" json:"full_name"`
	Email              string       `gorm:"size:255;column:email" json:"email"`
	Phone              string       `gorm:"size:40;column:phone" json:"phone"`
	DocumentID         string       `gorm:"size:40;column:document_id" json:"document_id"`
	VerificationStatus Verification `gorm:"size:20;column:verification_status" json:"verification_status"`
	CreatedAt          time.Time    `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt          time.Time    `gorm:"autoUpdateTime;column:updated_at" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }
