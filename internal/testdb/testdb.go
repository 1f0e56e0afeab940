// Package testdb opens throwaway in-memory databases with the full
// schema migrated, for package tests.
package testdb

import (
	"fmt"
	"sync/atomic"
	"testing"

	"waven/internal/achievement"
	"waven/internal/auth"
	"waven/internal/comment"
	"waven/internal/post"
	"waven/internal/wave"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var seq atomic.Int64

// Open returns a fresh in-memory sqlite DB with all tables migrated.
// Each call gets its own uniquely named database, so tests stay
// independent while gorm's pool can still open extra connections.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:waven_test_%d?mode=memory&cache=shared", seq.Add(1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

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
		t.Fatalf("migrate test db: %v", err)
	}

	return gdb
}
