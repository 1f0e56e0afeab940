package wave

import (
	"context"
	"errors"
	"log/slog"

	"waven/internal/achievement"
	"waven/internal/post"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

// errAlreadyWaved aborts the toggle transaction when a concurrent
// request inserted the same wave first.
var errAlreadyWaved = errors.New("wave already exists")

type Service struct {
	DB           *gorm.DB
	Achievements *achievement.Service
	Log          *slog.Logger
}

func (s *Service) logger() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}

type ToggleResult struct {
	Waved           bool
	WaveCount       int64
	NewAchievements []achievement.Achievement
}

// Toggle flips the acting user's wave on the post behind slug. The wave
// row and both derived counters move together in one transaction, with
// counter changes expressed as relative deltas so concurrent toggles on
// the same post never lose updates. Afterwards achievements are
// re-evaluated for the actor (first_wave) and the author (waves_received).
func (s *Service) Toggle(ctx context.Context, userID uint64, slug string) (ToggleResult, error) {
	db := s.DB.WithContext(ctx)

	var p post.Post
	if err := db.Select("id", "author_id").Where("slug = ?", slug).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ToggleResult{}, ErrNotFound
		}
		return ToggleResult{}, err
	}

	var res ToggleResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var w Wave
		err := tx.Where("user_id = ? AND post_id = ?", userID, p.ID).First(&w).Error
		switch {
		case err == nil:
			del := tx.Delete(&Wave{}, w.ID)
			if del.Error != nil {
				return del.Error
			}
			if del.RowsAffected == 0 {
				// Concurrent toggle removed the row first and already
				// applied its deltas; running ours would double-decrement.
				res.Waved = false
				return nil
			}
			if err := applyDeltas(tx, p, -1); err != nil {
				return err
			}
			res.Waved = false
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&Wave{UserID: userID, PostID: p.ID}).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					// Concurrent toggle won the insert race. Roll back
					// and report the current state instead of failing.
					return errAlreadyWaved
				}
				return err
			}
			if err := applyDeltas(tx, p, 1); err != nil {
				return err
			}
			res.Waved = true
			return nil
		default:
			return err
		}
	})
	if errors.Is(err, errAlreadyWaved) {
		res.Waved = true
	} else if err != nil {
		return ToggleResult{}, err
	}

	// Re-read for the authoritative count; concurrent toggles may have
	// moved it since the commit.
	var current post.Post
	if err := db.Select("wave_count").First(&current, p.ID).Error; err != nil {
		return ToggleResult{}, err
	}
	res.WaveCount = current.WaveCount

	// Actor first (first_wave), then author (waves_received thresholds).
	// A self-wave needs only one pass: evaluation is idempotent and the
	// single call covers both condition families.
	res.NewAchievements = append(res.NewAchievements, s.evaluate(ctx, userID)...)
	if p.AuthorID != userID {
		res.NewAchievements = append(res.NewAchievements, s.evaluate(ctx, p.AuthorID)...)
	}
	return res, nil
}

func applyDeltas(tx *gorm.DB, p post.Post, delta int) error {
	err := tx.Model(&post.Post{}).Where("id = ?", p.ID).
		UpdateColumn("wave_count", gorm.Expr("wave_count + ?", delta)).Error
	if err != nil {
		return err
	}
	return tx.Table("users").Where("id = ?", p.AuthorID).
		UpdateColumn("total_waves", gorm.Expr("total_waves + ?", delta)).Error
}

// evaluate is best-effort: a failure logs and returns nothing rather
// than failing the toggle.
func (s *Service) evaluate(ctx context.Context, userID uint64) []achievement.Achievement {
	unlocked, err := s.Achievements.Evaluate(ctx, userID)
	if err != nil {
		s.logger().Warn("achievement evaluation failed after wave toggle", "user_id", userID, "err", err)
		return nil
	}
	return unlocked
}

// HasWaved reports whether the user currently waves the post.
func (s *Service) HasWaved(ctx context.Context, userID, postID uint64) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&Wave{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&n).Error
	return n > 0, err
}
