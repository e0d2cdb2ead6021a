package event

import (
	"time"
)

// Attachment points at a file kept in external object storage for an event.
type Attachment struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	EventID uint `gorm:"not null;index" json:"event_id"`

	DisplayName string `gorm:"type:varchar(255);not null" json:"display_name"`
	StoragePath string `gorm:"type:varchar(1024);not null" json:"storage_path"`
	PublicURL   string `gorm:"type:varchar(2048);not null" json:"public_url"`
	MimeType    string `gorm:"type:varchar(100)" json:"mime_type"`

	Position int `gorm:"not null" json:"position"`

	CreatedBy string    `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the Attachment model
func (Attachment) TableName() string {
	return "event_attachments"
}
