package domain

import "time"

type BlogPost struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Excerpt     string    `gorm:"type:text" json:"excerpt"`
	Content     string    `gorm:"type:text" json:"content"`
	ImageURL    string    `gorm:"column:image_url" json:"imageUrl"`
	Featured    bool      `json:"featured"`
	PublishedAt time.Time `gorm:"not null" json:"publishedAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}

func (BlogPost) TableName() string { return "blog_posts" }

type NewBlogPost struct {
	Title    string
	Slug     string
	Excerpt  string
	Content  string
	ImageURL string
	Featured bool
}

// BlogPostPatch carries a partial update. Nil fields are left untouched.
// PublishedAt is deliberately absent: it is set at creation and never
// changed by an update.
type BlogPostPatch struct {
	Title    *string
	Slug     *string
	Excerpt  *string
	Content  *string
	ImageURL *string
	Featured *bool
}
