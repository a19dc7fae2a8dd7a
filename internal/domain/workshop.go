package domain

import "time"

// WorkshopPackage is a collection-replace entity: updates replace the whole
// list and reassign ids 1..N by list position.
type WorkshopPackage struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       string    `json:"price"`
	Duration    string    `json:"duration"`
	Features    string    `gorm:"type:text" json:"features"`
	IsPopular   bool      `gorm:"column:is_popular" json:"isPopular"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}

func (WorkshopPackage) TableName() string { return "workshop_packages" }

// WorkshopPackageInput is one element of a replace payload. Features is a
// JSON-encoded string array, kept in its wire shape end-to-end.
type WorkshopPackageInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Duration    string `json:"duration"`
	Features    string `json:"features"`
	IsPopular   bool   `json:"isPopular"`
}

// WorkshopCurriculum is a collection-replace entity sorted by Order with
// insertion-order ties.
type WorkshopCurriculum struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	Step        string    `json:"step"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Duration    string    `json:"duration"`
	Order       int       `gorm:"column:sort_order" json:"order"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}

func (WorkshopCurriculum) TableName() string { return "workshop_curriculum" }

type WorkshopCurriculumInput struct {
	Step        string `json:"step"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Order       int    `json:"order"`
}
