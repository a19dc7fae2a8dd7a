package domain

import "time"

// HeroData is the landing-page hero section. Exactly one row exists at all
// times; the store materializes a default on first read.
type HeroData struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	Title1      string    `gorm:"column:title1" json:"title1"`
	Title2      string    `gorm:"column:title2" json:"title2"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    *string   `gorm:"column:image_url" json:"imageUrl"`
	ImageAlt    string    `gorm:"column:image_alt" json:"imageAlt"`
	ShowButtons bool      `json:"showButtons"`
	ShowStats   bool      `json:"showStats"`
	StatsNumber string    `json:"statsNumber"`
	StatsLabel  string    `json:"statsLabel"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}

func (HeroData) TableName() string { return "hero_data" }

type HeroDataPatch struct {
	Title1      *string
	Title2      *string
	Description *string
	ImageURL    *string
	ImageAlt    *string
	ShowButtons *bool
	ShowStats   *bool
	StatsNumber *string
	StatsLabel  *string
}
