package loyalty

import "time"

// Account tracks a user's accumulated loyalty points.
type Account struct {
	UserID    uint      `json:"user_id"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type EntryType string

const (
	EntryAward  EntryType = "AWARD"
	EntryRedeem EntryType = "REDEEM"
)

// Entry is one points movement, kept for history views.
type Entry struct {
	ID        string    `json:"id"`
	UserID    uint      `json:"user_id"`
	Type      EntryType `json:"type"`
	Points    int       `json:"points"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"created_at"`
}
