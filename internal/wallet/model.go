package wallet

import "time"

type Wallet struct {
	ID        string    `json:"id"`
	UserID    uint      `json:"user_id"`
	Balance   float64   `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TransactionType string

const (
	TransactionCredit TransactionType = "CREDIT"
	TransactionDebit  TransactionType = "DEBIT"
)

// Transaction is one ledger entry against a wallet. Reference carries
// the order id for order-related movements.
type Transaction struct {
	ID        string          `json:"id"`
	WalletID  string          `json:"wallet_id"`
	Type      TransactionType `json:"type"`
	Amount    float64         `json:"amount"`
	Reference string          `json:"reference"`
	CreatedAt time.Time       `json:"created_at"`
}
