package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User covers all four roles: admin, agent, client, developer.
type User struct {
	UserID              uuid.UUID      `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	Fullname            string         `gorm:"column:fullname;not null" json:"fullname"`
	UserName            string         `gorm:"column:user_name;not null;uniqueIndex" json:"user_name"`
	Email               string         `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash        string         `gorm:"column:password_hash;not null" json:"-"`
	Phone               string         `gorm:"column:phone" json:"phone"`
	Role                string         `gorm:"column:role;not null;default:client" json:"role"`
	Active              bool           `gorm:"column:active;not null;default:false" json:"active"`
	EmailConfirmed      bool           `gorm:"column:email_confirmed;not null;default:false" json:"email_confirmed"`
	ConfirmToken        string         `gorm:"column:confirm_token" json:"-"`
	ResetToken          string         `gorm:"column:reset_token" json:"-"`
	ResetTokenExpiresAt *time.Time     `gorm:"column:reset_token_expires_at" json:"-"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "Users"
}

// BeforeCreate sets UUID if not set (for DBs without gen_random_uuid).
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}
