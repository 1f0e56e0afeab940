package handler

import (
	"encoding/json"
	"net/http"

	"waven/internal/achievement"
	"waven/internal/auth"

	"gorm.io/gorm"
)

type AchievementHandler struct {
	DB  *gorm.DB
	Svc *achievement.Service
}

func (h *AchievementHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.Svc.List(r.Context())
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"achievements": out})
}

// Seed re-seeds the catalog. Admin only; safe to call repeatedly.
func (h *AchievementHandler) Seed(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var u auth.User
	if err := h.DB.First(&u, uid).Error; err != nil || !u.IsAdmin {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	if err := h.Svc.Seed(r.Context()); err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"message": "achievements initialized"})
}
