package domain

import "time"

// Contact is a contact-form submission. Append-only in the primary flow.
type Contact struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Phone     *string   `json:"phone"`
	Subject   string    `gorm:"not null" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (Contact) TableName() string { return "contacts" }

type NewContact struct {
	Name    string
	Email   string
	Phone   *string
	Subject string
	Message string
}
