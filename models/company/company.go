package company

import (
	"time"
)

// Company represents a billable organization or individual that books events.
type Company struct {
	ID            uint               `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string             `gorm:"type:varchar(255);not null;index" json:"name"`
	IDType        IdentificationType `gorm:"type:varchar(30);not null" json:"id_type"`
	IDNumber      string             `gorm:"type:varchar(100);not null;index" json:"id_number"`
	ContactPerson string             `gorm:"type:varchar(255);not null" json:"contact_person"`
	Phone         string             `gorm:"type:varchar(30);not null" json:"phone"`
	Email         *string            `gorm:"type:varchar(255)" json:"email,omitempty"`
	Address       *string            `gorm:"type:text" json:"address,omitempty"`
	City          *string            `gorm:"type:varchar(100)" json:"city,omitempty"`

	CreatedBy string    `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedBy string    `gorm:"type:varchar(255)" json:"updated_by,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
