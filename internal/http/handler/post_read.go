package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"waven/internal/auth"
	"waven/internal/comment"
	"waven/internal/post"
	"waven/internal/wave"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type PostReadHandler struct {
	DB       *gorm.DB
	Comments *comment.Service
	Waves    *wave.Service
}

type authorDTO struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	Image      string `json:"image"`
	IsVerified bool   `json:"is_verified"`
	IsAdmin    bool   `json:"is_admin"`
	TotalWaves int64  `json:"total_waves"`
}

type postDTO struct {
	ID           uint64     `json:"id"`
	Slug         string     `json:"slug"`
	Title        string     `json:"title"`
	Excerpt      string     `json:"excerpt"`
	WaveCount    int64      `json:"wave_count"`
	ViewCount    int64      `json:"view_count"`
	CommentCount int64      `json:"comment_count"`
	PublishedAt  *time.Time `json:"published_at"`
	CreatedAt    time.Time  `json:"created_at"`
	Author       authorDTO  `json:"author"`
}

type commentDTO struct {
	ID        uint64       `json:"id"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
	Author    authorDTO    `json:"author"`
	Replies   []commentDTO `json:"replies"`
}

func (h *PostReadHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 50 {
		limit = 10
	}

	q := h.DB.Model(&post.Post{}).Where("published = ?", true)

	if tag := strings.TrimSpace(strings.ToLower(r.URL.Query().Get("tag"))); tag != "" {
		q = q.Where(`id in (
			select pt.post_id from post_tags pt
			join tags t on t.id = pt.tag_id
			where t.slug = ?)`, tag)
	}
	if author := strings.TrimSpace(r.URL.Query().Get("author")); author != "" {
		if id, err := strconv.ParseUint(author, 10, 64); err == nil {
			q = q.Where("author_id = ?", id)
		}
	}
	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("lower(title) like ? or lower(content) like ? or lower(excerpt) like ?", like, like, like)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	var rows []post.Post
	if err := q.Order("created_at desc").Offset((page - 1) * limit).Limit(limit).Find(&rows).Error; err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	out := make([]postDTO, 0, len(rows))
	for _, p := range rows {
		dto, err := h.toDTO(p)
		if err != nil {
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}
		out = append(out, dto)
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"posts": out,
		"pagination": map[string]any{
			"page":        page,
			"limit":       limit,
			"total":       total,
			"total_pages": totalPages,
		},
	})
}

func (h *PostReadHandler) Detail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var p post.Post
	if err := h.DB.Where("slug = ? AND published = ?", slug, true).First(&p).Error; err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	// Fire-and-forget view counting; a miss here is not worth a 500.
	_ = h.DB.Model(&post.Post{}).Where("id = ?", p.ID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	p.ViewCount++

	dto, err := h.toDTO(p)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	var tags []post.Tag
	if err := h.DB.
		Joins("join post_tags pt on pt.tag_id = tags.id").
		Where("pt.post_id = ?", p.ID).
		Order("tags.slug asc").
		Find(&tags).Error; err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	top, byParent, err := h.Comments.ForPost(r.Context(), p.ID)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	comments, err := h.commentTree(top, byParent)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	waved := false
	if uid, ok := auth.UserIDFromContext(r.Context()); ok {
		waved, err = h.Waves.HasWaved(r.Context(), uid, p.ID)
		if err != nil {
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"post":     dto,
		"content":  p.Content,
		"tags":     tags,
		"comments": comments,
		"waved":    waved,
	})
}

func (h *PostReadHandler) toDTO(p post.Post) (postDTO, error) {
	var u auth.User
	if err := h.DB.First(&u, p.AuthorID).Error; err != nil {
		return postDTO{}, err
	}

	var commentCount int64
	if err := h.DB.Model(&comment.Comment{}).Where("post_id = ?", p.ID).Count(&commentCount).Error; err != nil {
		return postDTO{}, err
	}

	return postDTO{
		ID:           p.ID,
		Slug:         p.Slug,
		Title:        p.Title,
		Excerpt:      p.Excerpt,
		WaveCount:    p.WaveCount,
		ViewCount:    p.ViewCount,
		CommentCount: commentCount,
		PublishedAt:  p.PublishedAt,
		CreatedAt:    p.CreatedAt,
		Author:       toAuthorDTO(u),
	}, nil
}

func (h *PostReadHandler) commentTree(top []comment.Comment, byParent map[uint64][]comment.Comment) ([]commentDTO, error) {
	out := make([]commentDTO, 0, len(top))
	for _, c := range top {
		dto, err := h.toCommentDTO(c)
		if err != nil {
			return nil, err
		}
		for _, reply := range byParent[c.ID] {
			rdto, err := h.toCommentDTO(reply)
			if err != nil {
				return nil, err
			}
			dto.Replies = append(dto.Replies, rdto)
		}
		out = append(out, dto)
	}
	return out, nil
}

func (h *PostReadHandler) toCommentDTO(c comment.Comment) (commentDTO, error) {
	var u auth.User
	if err := h.DB.First(&u, c.UserID).Error; err != nil {
		return commentDTO{}, err
	}
	return commentDTO{
		ID:        c.ID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		Author:    toAuthorDTO(u),
		Replies:   []commentDTO{},
	}, nil
}

func toAuthorDTO(u auth.User) authorDTO {
	return authorDTO{
		ID:         u.ID,
		Name:       u.Name,
		Image:      u.Image,
		IsVerified: u.IsVerified,
		IsAdmin:    u.IsAdmin,
		TotalWaves: u.TotalWaves,
	}
}
