package domain

import "time"

// GalleryItem is point-addressable (unlike the workshop collections) and
// sorted by Order with insertion-order ties.
type GalleryItem struct {
	ID            int       `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	Description   *string   `gorm:"type:text" json:"description,omitempty"`
	ImageURL      string    `gorm:"column:image_url;not null" json:"imageUrl"`
	IsHighlighted bool      `gorm:"column:is_highlighted" json:"isHighlighted"`
	Category      string    `json:"category"`
	Order         int       `gorm:"column:sort_order" json:"order"`
	CreatedAt     time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"not null" json:"updatedAt"`
}

func (GalleryItem) TableName() string { return "gallery_items" }

type NewGalleryItem struct {
	Title         string
	Description   *string
	ImageURL      string
	IsHighlighted bool
	Category      string
	Order         int
}

type GalleryItemPatch struct {
	Title         *string
	Description   *string
	ImageURL      *string
	IsHighlighted *bool
	Category      *string
	Order         *int
}
