package achievement

import "time"

type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityRare      Rarity = "RARE"
	RarityEpic      Rarity = "EPIC"
	RarityLegendary Rarity = "LEGENDARY"
)

type ConditionKind string

const (
	CondWavesReceived ConditionKind = "waves_received"
	CondPostsCreated  ConditionKind = "posts_created"
	CondCommentsMade  ConditionKind = "comments_made"
	CondFirstPost     ConditionKind = "first_post"
	CondFirstWave     ConditionKind = "first_wave"
)

// Condition is the unlock rule of a single achievement.
// Target is only meaningful for the threshold kinds.
type Condition struct {
	Kind   ConditionKind
	Target int64
}

// Counters is a snapshot of a user's aggregates at evaluation time.
type Counters struct {
	WavesReceived int64
	PostsCreated  int64
	CommentsMade  int64
	WavesGiven    int64
}

// Met reports whether the condition holds for the given counters.
func (c Condition) Met(n Counters) bool {
	switch c.Kind {
	case CondWavesReceived:
		return n.WavesReceived >= c.Target
	case CondPostsCreated:
		return n.PostsCreated >= c.Target
	case CondCommentsMade:
		return n.CommentsMade >= c.Target
	case CondFirstPost:
		return n.PostsCreated >= 1
	case CondFirstWave:
		return n.WavesGiven >= 1
	}
	return false
}

// Achievement is the persisted catalog entry. Seeded from the static
// catalog, keyed by Name.
type Achievement struct {
	ID              uint64        `gorm:"primaryKey" json:"id"`
	Name            string        `gorm:"uniqueIndex;not null" json:"name"`
	Description     string        `gorm:"not null" json:"description"`
	Icon            string        `gorm:"not null" json:"icon"`
	Color           string        `gorm:"not null" json:"color"`
	Rarity          Rarity        `gorm:"type:text;not null" json:"rarity"`
	Points          int           `gorm:"not null" json:"points"`
	ConditionKind   ConditionKind `gorm:"type:text;not null" json:"-"`
	ConditionTarget int64         `gorm:"not null;default:0" json:"-"`
	CreatedAt       time.Time     `gorm:"not null" json:"created_at"`
}

// UserAchievement records a single unlock. Never updated or deleted.
type UserAchievement struct {
	ID            uint64    `gorm:"primaryKey" json:"id"`
	UserID        uint64    `gorm:"not null;uniqueIndex:uq_user_achievement" json:"user_id"`
	AchievementID uint64    `gorm:"not null;uniqueIndex:uq_user_achievement" json:"achievement_id"`
	UnlockedAt    time.Time `gorm:"not null" json:"unlocked_at"`
}
