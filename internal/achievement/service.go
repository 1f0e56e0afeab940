package achievement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	DB  *gorm.DB
	Log *slog.Logger
}

func (s *Service) logger() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}

// userRow is the slice of the users table the evaluator needs.
type userRow struct {
	ID         uint64 `gorm:"column:id"`
	TotalWaves int64  `gorm:"column:total_waves"`
}

func (userRow) TableName() string { return "users" }

// Seed upserts the static catalog into the achievements table, keyed by
// name. Safe to call repeatedly: display and condition columns follow
// the catalog, unlock rows and created_at are never touched.
func (s *Service) Seed(ctx context.Context) error {
	db := s.DB.WithContext(ctx)
	for _, def := range Catalog {
		a := Achievement{
			Name:            def.Name,
			Description:     def.Description,
			Icon:            def.Icon,
			Color:           def.Color,
			Rarity:          def.Rarity,
			Points:          def.Points,
			ConditionKind:   def.Condition.Kind,
			ConditionTarget: def.Condition.Target,
		}
		err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"description", "icon", "color", "rarity", "points",
				"condition_kind", "condition_target",
			}),
		}).Create(&a).Error
		if err != nil {
			return fmt.Errorf("seed achievement %q: %w", def.Name, err)
		}
	}
	return nil
}

// List returns the seeded catalog in declaration order.
func (s *Service) List(ctx context.Context) ([]Achievement, error) {
	var out []Achievement
	err := s.DB.WithContext(ctx).Order("id asc").Find(&out).Error
	return out, err
}

// Unlocked returns the user's unlocked achievements, newest first.
func (s *Service) Unlocked(ctx context.Context, userID uint64) ([]Achievement, error) {
	var out []Achievement
	err := s.DB.WithContext(ctx).
		Joins("join user_achievements ua on ua.achievement_id = achievements.id").
		Where("ua.user_id = ?", userID).
		Order("ua.unlocked_at desc").
		Find(&out).Error
	return out, err
}

// Evaluate re-checks the catalog against the user's current counters and
// awards anything newly satisfied, exactly once per achievement. Returns
// the new unlocks in catalog order. An unknown user is a no-op.
//
// Each award is written independently: a failed insert skips that one
// definition with a logged warning, earlier awards in the same call stay
// committed. The (user_id, achievement_id) unique index backstops the
// already-unlocked set check against concurrent evaluations.
func (s *Service) Evaluate(ctx context.Context, userID uint64) ([]Achievement, error) {
	db := s.DB.WithContext(ctx)

	var u userRow
	if err := db.First(&u, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Triggering action already validated the user.
			return nil, nil
		}
		return nil, err
	}

	n := Counters{WavesReceived: u.TotalWaves}
	if err := db.Table("posts").Where("author_id = ? AND published = ?", userID, true).Count(&n.PostsCreated).Error; err != nil {
		return nil, err
	}
	if err := db.Table("waves").Where("user_id = ?", userID).Count(&n.WavesGiven).Error; err != nil {
		return nil, err
	}
	if err := db.Table("comments").Where("user_id = ?", userID).Count(&n.CommentsMade).Error; err != nil {
		return nil, err
	}

	var names []string
	if err := db.Table("user_achievements").
		Joins("join achievements on achievements.id = user_achievements.achievement_id").
		Where("user_achievements.user_id = ?", userID).
		Pluck("achievements.name", &names).Error; err != nil {
		return nil, err
	}
	unlocked := make(map[string]struct{}, len(names))
	for _, name := range names {
		unlocked[name] = struct{}{}
	}

	var awarded []Achievement
	for _, def := range Catalog {
		if _, ok := unlocked[def.Name]; ok {
			continue
		}
		if !def.Condition.Met(n) {
			continue
		}

		var a Achievement
		if err := db.Where("name = ?", def.Name).First(&a).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Catalog entry not seeded yet.
				continue
			}
			s.logger().Warn("achievement lookup failed", "user_id", userID, "achievement", def.Name, "err", err)
			continue
		}

		ua := UserAchievement{
			UserID:        userID,
			AchievementID: a.ID,
			UnlockedAt:    time.Now(),
		}
		if err := db.Create(&ua).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost a race with a concurrent evaluation.
				continue
			}
			s.logger().Warn("achievement award failed", "user_id", userID, "achievement", def.Name, "err", err)
			continue
		}
		awarded = append(awarded, a)
	}

	return awarded, nil
}
