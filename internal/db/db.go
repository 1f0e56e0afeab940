package db

import (
	"fmt"

	"waven/internal/achievement"
	"waven/internal/auth"
	"waven/internal/comment"
	"waven/internal/post"
	"waven/internal/wave"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	// TranslateError turns driver duplicate-key failures into
	// gorm.ErrDuplicatedKey, which the wave toggle relies on.
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	// Tables
	if err := gdb.AutoMigrate(
		&auth.User{},
		&post.Post{},
		&post.Tag{},
		&post.PostTag{},
		&wave.Wave{},
		&comment.Comment{},
		&achievement.Achievement{},
		&achievement.UserAchievement{},
	); err != nil {
		return err
	}

	// Helpful indexes (unique constraints come from model tags)
	stmts := []string{
		`create index if not exists idx_posts_published_created on posts(published, created_at desc);`,
		`create index if not exists idx_posts_author_published on posts(author_id, published);`,
		`create index if not exists idx_comments_post_parent on comments(post_id, parent_id);`,
		`create index if not exists idx_unlocks_user_time on user_achievements(user_id, unlocked_at desc);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
