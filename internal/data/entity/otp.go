package entity

import (
	"time"
)

// OTP is the per-email ledger row. At most one live row per email: issuing
// a new code overwrites the old row, resets attempts and expiry.
type OTP struct {
	Email     string    `db:"email"`
	Code      string    `db:"code"`
	Attempts  int       `db:"attempts"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
