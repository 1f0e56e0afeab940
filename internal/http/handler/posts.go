package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"waven/internal/auth"
	"waven/internal/post"
)

type PostHandler struct {
	Svc *post.Service
}

type createPostReq struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Excerpt   string   `json:"excerpt"`
	Slug      string   `json:"slug"`
	Published bool     `json:"published"`
	Tags      []string `json:"tags"`
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req createPostReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if req.Title == "" || req.Content == "" {
		http.Error(w, "title and content required", http.StatusBadRequest)
		return
	}

	res, err := h.Svc.Create(r.Context(), uid, post.CreateInput{
		Title:     req.Title,
		Content:   req.Content,
		Excerpt:   strings.TrimSpace(req.Excerpt),
		Slug:      req.Slug,
		Published: req.Published,
		Tags:      req.Tags,
	})
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	body := map[string]any{
		"message": "post created",
		"post":    res.Post,
	}
	if len(res.NewAchievements) > 0 {
		body["new_achievements"] = res.NewAchievements
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(body)
}
