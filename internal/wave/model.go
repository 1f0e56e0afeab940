package wave

import "time"

// Wave records that a user has waved a post. At most one row per
// (user, post) pair; this relation is the source of truth the
// denormalized counters are derived from.
type Wave struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:uq_waves_user_post" json:"user_id"`
	PostID    uint64    `gorm:"not null;uniqueIndex:uq_waves_user_post;index" json:"post_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
