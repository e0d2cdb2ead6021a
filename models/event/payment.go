package event

import (
	"time"
)

// Payment is one ledger entry owned by its parent event. Entries are appended
// and removed by position, never mutated in place.
type Payment struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	EventID uint `gorm:"not null;index" json:"event_id"`

	Amount      float64   `gorm:"not null;type:decimal(12,2)" json:"amount"`
	PaidOn      time.Time `gorm:"not null" json:"paid_on"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`

	// Position preserves ledger order within the event.
	Position int `gorm:"not null" json:"position"`

	CreatedBy string    `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the Payment model
func (Payment) TableName() string {
	return "event_payments"
}
