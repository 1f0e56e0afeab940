package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"waven/internal/auth"
	"waven/internal/wave"

	"github.com/go-chi/chi/v5"
)

type WaveHandler struct {
	Svc *wave.Service
}

func (h *WaveHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	slug := chi.URLParam(r, "slug")

	res, err := h.Svc.Toggle(r.Context(), uid, slug)
	if err != nil {
		if errors.Is(err, wave.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	msg := "Wave removed"
	if res.Waved {
		msg = "Wave added!"
	}

	body := map[string]any{
		"waved":      res.Waved,
		"wave_count": res.WaveCount,
		"message":    msg,
	}
	if len(res.NewAchievements) > 0 {
		body["new_achievements"] = res.NewAchievements
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}
