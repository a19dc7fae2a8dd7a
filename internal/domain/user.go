package domain

// User is an auth principal. The admin dashboard authenticates against the
// AdminCredentials singleton; users exist for legacy logins and seeding.
type User struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
}

func (User) TableName() string { return "users" }

// NewUser is the create payload. Password must already be hashed by the
// caller; the store never hashes.
type NewUser struct {
	Username string
	Password string
}
