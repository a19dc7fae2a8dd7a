package domain

import "time"

// ContactInfo is the business contact/social singleton, defaulted on first
// read.
type ContactInfo struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Phone     string    `json:"phone"`
	WhatsApp  string    `gorm:"column:whatsapp" json:"whatsapp"`
	Email     string    `json:"email"`
	Website   string    `json:"website"`
	Address   string    `gorm:"type:text" json:"address"`
	MapEmbed  string    `gorm:"type:text;column:map_embed" json:"mapEmbed"`
	Instagram string    `json:"instagram"`
	Facebook  string    `json:"facebook"`
	TikTok    string    `gorm:"column:tiktok" json:"tiktok"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (ContactInfo) TableName() string { return "contact_info" }

type ContactInfoPatch struct {
	Phone     *string
	WhatsApp  *string
	Email     *string
	Website   *string
	Address   *string
	MapEmbed  *string
	Instagram *string
	Facebook  *string
	TikTok    *string
}
