package domain

import (
	"time"

	"github.com/google/uuid"
)

// StartingCredits is the balance granted to a newly registered participant
const StartingCredits int64 = 1000

// User is a participant. Credits is the spendable ledger balance: debited at
// stake placement, credited at settlement, and never touched by any other
// writer. The store enforces credits >= 0.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Credits   int64     `json:"credits"`
	CreatedAt time.Time `json:"created_at"`
}
