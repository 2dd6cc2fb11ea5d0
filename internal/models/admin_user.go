package models

import "time"

type AdminUser struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Username     string `gorm:"size:60;uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Email        string `gorm:"size:120" json:"email"`
	Phone        string `gorm:"size:30" json:"phone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

type PasswordResetRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AdminUserID uint   `gorm:"not null;index" json:"admin_user_id"`
	TokenHash   string `gorm:"size:64;not null;index" json:"-"`
	Channel     string `gorm:"size:10;not null" json:"channel"`

	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	Attempts  int        `gorm:"default:0;not null" json:"attempts"`
	UsedAt    *time.Time `json:"used_at"`

	CreatedAt time.Time `json:"created_at"`
}

func (PasswordResetRequest) TableName() string { return "admin_password_resets" }

type AdminResetRateLimit struct {
	AdminUserID uint      `gorm:"primaryKey;autoIncrement:false" json:"admin_user_id"`
	Channel     string    `gorm:"primaryKey;size:10" json:"channel"`
	LastSentAt  time.Time `gorm:"not null" json:"last_sent_at"`
}

func (AdminResetRateLimit) TableName() string { return "admin_reset_rate_limits" }
