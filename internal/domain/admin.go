package domain

import "time"

// AdminCredentials is the dashboard login singleton. Password is stored as a
// bcrypt hash; the store materializes a default record on first read.
type AdminCredentials struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (AdminCredentials) TableName() string { return "admin_credentials" }

// AdminCredentialsPatch updates the singleton. Password, when set, must
// already be hashed by the caller.
type AdminCredentialsPatch struct {
	Email    *string
	Password *string
}
