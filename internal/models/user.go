package models

import (
	"time"
)

// User mirrors the identity provider's account record for display and admin
// purposes. Credentials live with the provider; only verified claims land here.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey"` // provider UID
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatarUrl"`
	Role      string    `json:"role" gorm:"default:member"`
	IsActive  bool      `json:"isActive" gorm:"default:true"`
	LastLogin time.Time `json:"lastLogin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
