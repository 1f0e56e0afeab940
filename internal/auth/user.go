package auth

import "time"

// User is a forum account. TotalWaves is the denormalized sum of wave
// counts across the user's posts, maintained by the wave service.
type User struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Image        string    `gorm:"not null;default:''" json:"image"`
	Bio          string    `gorm:"not null;default:''" json:"bio"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"is_admin"`
	IsVerified   bool      `gorm:"not null;default:false" json:"is_verified"`
	TotalWaves   int64     `gorm:"not null;default:0" json:"total_waves"`
	CreatedAt    time.Time `gorm:"not null" json:"joined_at"`
}
