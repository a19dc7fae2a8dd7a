package domain

import "time"

const (
	ProductStatusActive     = "active"
	ProductStatusOutOfStock = "out_of_stock"
	ProductStatusInactive   = "inactive"
)

// Product is a collection-replace entity.
type Product struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Category    string    `json:"category"`
	Price       string    `json:"price"`
	Stock       int       `json:"stock"`
	Sold        int       `json:"sold"`
	Status      string    `gorm:"not null" json:"status"`
	ImageURL    *string   `gorm:"column:image_url" json:"imageUrl,omitempty"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	MOQ         *int      `gorm:"column:moq" json:"moq,omitempty"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}

func (Product) TableName() string { return "products" }

type ProductInput struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       string  `json:"price"`
	Stock       int     `json:"stock"`
	Sold        int     `json:"sold"`
	Status      string  `json:"status"`
	ImageURL    *string `json:"imageUrl"`
	Description *string `json:"description"`
	MOQ         *int    `json:"moq"`
}
