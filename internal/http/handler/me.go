package handler

import (
	"encoding/json"
	"net/http"

	"waven/internal/achievement"
	"waven/internal/auth"

	"gorm.io/gorm"
)

type MeHandler struct {
	DB           *gorm.DB
	Achievements *achievement.Service
}

func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var u auth.User
	if err := h.DB.First(&u, uid).Error; err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	var posts, comments, wavesGiven int64
	if err := h.DB.Table("posts").Where("author_id = ? AND published = ?", uid, true).Count(&posts).Error; err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	if err := h.DB.Table("comments").Where("user_id = ?", uid).Count(&comments).Error; err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	if err := h.DB.Table("waves").Where("user_id = ?", uid).Count(&wavesGiven).Error; err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	unlocked, err := h.Achievements.Unlocked(r.Context(), uid)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"user":           u,
		"posts":          posts,
		"comments":       comments,
		"waves_given":    wavesGiven,
		"waves_received": u.TotalWaves,
		"achievements":   unlocked,
	})
}
