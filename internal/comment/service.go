package comment

import (
	"context"
	"errors"

	"waven/internal/post"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidParent = errors.New("invalid parent comment")
)

type Service struct {
	DB *gorm.DB
}

type CreateInput struct {
	Content  string
	ParentID *uint64
}

// Create adds a comment to the post behind slug. A parent must be a
// top-level comment on the same post; replies only nest one level.
func (s *Service) Create(ctx context.Context, userID uint64, slug string, in CreateInput) (Comment, error) {
	db := s.DB.WithContext(ctx)

	var p post.Post
	if err := db.Select("id").Where("slug = ?", slug).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Comment{}, ErrNotFound
		}
		return Comment{}, err
	}

	if in.ParentID != nil {
		var parent Comment
		if err := db.First(&parent, *in.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Comment{}, ErrInvalidParent
			}
			return Comment{}, err
		}
		if parent.PostID != p.ID || parent.ParentID != nil {
			return Comment{}, ErrInvalidParent
		}
	}

	c := Comment{
		PostID:   p.ID,
		UserID:   userID,
		ParentID: in.ParentID,
		Content:  in.Content,
	}
	if err := db.Create(&c).Error; err != nil {
		return Comment{}, err
	}
	return c, nil
}

// ForPost loads a post's top-level comments newest first, each with its
// replies oldest first.
func (s *Service) ForPost(ctx context.Context, postID uint64) ([]Comment, map[uint64][]Comment, error) {
	db := s.DB.WithContext(ctx)

	var top []Comment
	if err := db.Where("post_id = ? AND parent_id IS NULL", postID).
		Order("created_at desc, id desc").Find(&top).Error; err != nil {
		return nil, nil, err
	}

	var replies []Comment
	if err := db.Where("post_id = ? AND parent_id IS NOT NULL", postID).
		Order("created_at asc, id asc").Find(&replies).Error; err != nil {
		return nil, nil, err
	}

	byParent := make(map[uint64][]Comment, len(replies))
	for _, r := range replies {
		byParent[*r.ParentID] = append(byParent[*r.ParentID], r)
	}
	return top, byParent, nil
}
