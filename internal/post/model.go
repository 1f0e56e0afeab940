package post

import "time"

// Post is an authored article. WaveCount is denormalized from the waves
// relation; the wave service keeps it consistent and the reconciler
// repairs any drift.
type Post struct {
	ID          uint64     `gorm:"primaryKey" json:"id"`
	AuthorID    uint64     `gorm:"index;not null" json:"author_id"`
	Title       string     `gorm:"not null" json:"title"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Excerpt     string     `gorm:"not null;default:''" json:"excerpt"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Published   bool       `gorm:"not null;default:false" json:"published"`
	PublishedAt *time.Time `json:"published_at"`
	ViewCount   int64      `gorm:"not null;default:0" json:"view_count"`
	WaveCount   int64      `gorm:"not null;default:0" json:"wave_count"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

// Tag is a normalized topic label shared across posts.
type Tag struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// PostTag is the join table between posts and tags.
type PostTag struct {
	PostID uint64 `gorm:"primaryKey" json:"post_id"`
	TagID  uint64 `gorm:"primaryKey" json:"tag_id"`
}
