package event

import (
	"time"

	"venue-booking/models/company"
)

// Event represents one venue booking with schedule, contact, payment and
// attachment data.
type Event struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	StartAt time.Time `gorm:"not null;index" json:"start_at"`
	EndAt   time.Time `gorm:"not null" json:"end_at"`

	// CompanyName mirrors the linked company's canonical name for display;
	// CompanyID is the authoritative reference.
	CompanyName string           `gorm:"type:varchar(255);not null" json:"company_name"`
	CompanyID   *uint            `gorm:"index" json:"company_id,omitempty"`
	Company     *company.Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`

	ContactName  string `gorm:"type:varchar(255);not null" json:"contact_name"`
	ContactPhone string `gorm:"type:varchar(30);not null" json:"contact_phone"`
	ContactEmail string `gorm:"type:varchar(255)" json:"contact_email"`

	PeopleCount int     `gorm:"not null;default:0" json:"people_count"`
	Location    *string `gorm:"type:varchar(255)" json:"location,omitempty"`
	Description *string `gorm:"type:text" json:"description,omitempty"`

	// FoodPackages holds the selected package codes comma-joined.
	FoodPackages string `gorm:"type:text" json:"food_packages"`

	// Deposit equals the ledger sum whenever at least one payment exists.
	Deposit       float64 `gorm:"not null;default:0;type:decimal(12,2)" json:"deposit"`
	PendingAmount float64 `gorm:"not null;default:0;type:decimal(12,2)" json:"pending_amount"`

	Status EventStatus `gorm:"size:20;not null;default:pending" json:"status"`

	Payments    []Payment    `gorm:"foreignKey:EventID" json:"payments,omitempty"`
	Attachments []Attachment `gorm:"foreignKey:EventID" json:"attachments,omitempty"`

	CreatedBy string     `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedBy string     `gorm:"type:varchar(255)" json:"updated_by,omitempty"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"` // Soft delete field
}
