package model

// BudgetItem is one line in the event budget.
type BudgetItem struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Title     string    `json:"title"`
	Category  string    `json:"category,omitempty"`
	Planned   float64   `json:"planned_amount"`
	Actual    float64   `json:"actual_amount"`
	Paid      bool      `json:"is_paid"`
	VendorID  string    `json:"professional_id,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
}
