package paylater

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
)

// DueDays is how long a buyer has to settle a pay-later order.
const DueDays = 30

// PayLaterOrder is a deferred payment obligation tied to an order.
type PayLaterOrder struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	UserID      uint      `json:"user_id"`
	TotalAmount float64   `json:"total_amount"`
	PaidAmount  float64   `json:"paid_amount"`
	DueDate     time.Time `json:"due_date"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Outstanding is what remains to be paid.
func (p *PayLaterOrder) Outstanding() float64 {
	rest := p.TotalAmount - p.PaidAmount
	if rest < 0 {
		return 0
	}
	return rest
}
