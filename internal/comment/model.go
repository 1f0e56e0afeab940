package comment

import "time"

// Comment belongs to a post; ParentID nests it one level under another
// top-level comment.
type Comment struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	PostID    uint64    `gorm:"index;not null" json:"post_id"`
	UserID    uint64    `gorm:"index;not null" json:"user_id"`
	ParentID  *uint64   `gorm:"index" json:"parent_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
