package id

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// New returns a random UUID string used as primary key for every entity.
func New() string { return uuid.NewString() }

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewLoanCode returns the human-readable loan code, e.g. "CR-9F3A61B2".
func NewLoanCode() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return "CR-" + strings.ToUpper(hex.EncodeToString(b))
}

// IsUUID reports whether s parses as a UUID.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
