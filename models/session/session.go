package session

import (
	"time"

	"venue-booking/models/user"
)

// Session is one signed-in browser session. The issued token is stored sealed
// (AES-GCM) so a database dump does not leak usable credentials.
type Session struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	UserID uint      `gorm:"not null;index" json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID" json:"user"`

	TokenSealed string `gorm:"type:text;not null" json:"-"`
	Role        string `gorm:"type:varchar(50);not null" json:"role"`
	Locale      string `gorm:"type:varchar(10);not null;default:en" json:"locale"`

	ExpiresAt time.Time  `gorm:"not null;index" json:"expires_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
