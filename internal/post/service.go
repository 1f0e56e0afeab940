package post

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"waven/internal/achievement"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

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

type CreateInput struct {
	Title     string
	Content   string
	Excerpt   string
	Slug      string
	Published bool
	Tags      []string
}

type CreateResult struct {
	Post            Post
	NewAchievements []achievement.Achievement
}

// Create publishes a post under a unique slug, attaches tags, then
// re-evaluates the author's achievements. Achievement failures never
// fail the creation.
func (s *Service) Create(ctx context.Context, userID uint64, in CreateInput) (CreateResult, error) {
	base := strings.TrimSpace(in.Slug)
	if base == "" {
		base = Slugify(in.Title)
	}
	if base == "" {
		base = "post"
	}

	var res CreateResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slug, err := uniqueSlug(tx, base)
		if err != nil {
			return err
		}

		p := Post{
			AuthorID:  userID,
			Title:     in.Title,
			Content:   in.Content,
			Excerpt:   in.Excerpt,
			Slug:      slug,
			Published: in.Published,
		}
		if in.Published {
			now := time.Now()
			p.PublishedAt = &now
		}
		if err := tx.Create(&p).Error; err != nil {
			return err
		}

		if err := attachTags(tx, p.ID, in.Tags); err != nil {
			return err
		}

		res.Post = p
		return nil
	})
	if err != nil {
		return CreateResult{}, err
	}

	unlocked, err := s.Achievements.Evaluate(ctx, userID)
	if err != nil {
		s.logger().Warn("achievement evaluation failed after post create", "user_id", userID, "err", err)
	} else {
		res.NewAchievements = unlocked
	}
	return res, nil
}

// uniqueSlug returns base, or base-1, base-2, ... until an unused slug
// is found. The unique index on posts.slug backstops the check.
func uniqueSlug(tx *gorm.DB, base string) (string, error) {
	candidate := base
	for i := 0; ; i++ {
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}
		var existing Post
		err := tx.Select("id").Where("slug = ?", candidate).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
	}
}

func attachTags(tx *gorm.DB, postID uint64, names []string) error {
	seen := map[string]struct{}{}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		slug := Slugify(name)
		if slug == "" {
			continue
		}
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}

		var t Tag
		err := tx.Where("slug = ?", slug).First(&t).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			t = Tag{Name: name, Slug: slug}
			err = tx.Create(&t).Error
		}
		if err != nil {
			return err
		}

		if err := tx.Create(&PostTag{PostID: postID, TagID: t.ID}).Error; err != nil {
			return err
		}
	}
	return nil
}

// BySlug resolves a post by its slug.
func (s *Service) BySlug(ctx context.Context, slug string) (Post, error) {
	var p Post
	err := s.DB.WithContext(ctx).Where("slug = ?", slug).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Post{}, ErrNotFound
	}
	return p, err
}
