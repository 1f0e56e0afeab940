package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"waven/internal/auth"
	"waven/internal/comment"

	"github.com/go-chi/chi/v5"
)

type CommentHandler struct {
	Svc *comment.Service
}

type createCommentReq struct {
	Content  string  `json:"content"`
	ParentID *uint64 `json:"parent_id"`
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	slug := chi.URLParam(r, "slug")

	var req createCommentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		http.Error(w, "content required", http.StatusBadRequest)
		return
	}

	c, err := h.Svc.Create(r.Context(), uid, slug, comment.CreateInput{
		Content:  req.Content,
		ParentID: req.ParentID,
	})
	if err != nil {
		switch {
		case errors.Is(err, comment.ErrNotFound):
			http.Error(w, "not found", http.StatusNotFound)
		case errors.Is(err, comment.ErrInvalidParent):
			http.Error(w, "invalid parent comment", http.StatusBadRequest)
		default:
			http.Error(w, "server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}
