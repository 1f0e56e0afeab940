package http

import (
	"log/slog"
	"net/http"

	"waven/internal/achievement"
	"waven/internal/auth"
	"waven/internal/comment"
	"waven/internal/config"
	"waven/internal/http/handler"
	mw "waven/internal/http/middleware"
	"waven/internal/post"
	"waven/internal/wave"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

func NewRouter(cfg config.Config, db *gorm.DB, jwtSvc *auth.JWT, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ah := &handler.AuthHandler{DB: db, JWT: jwtSvc}
	r.Post("/auth/register", ah.Register)
	r.Post("/auth/login", ah.Login)

	achSvc := &achievement.Service{DB: db, Log: log}
	postSvc := &post.Service{DB: db, Achievements: achSvc, Log: log}
	waveSvc := &wave.Service{DB: db, Achievements: achSvc, Log: log}
	commentSvc := &comment.Service{DB: db}

	me := &handler.MeHandler{DB: db, Achievements: achSvc}
	r.With(auth.RequireAuth(jwtSvc)).Get("/me", me.Me)

	postH := &handler.PostHandler{Svc: postSvc}
	postRead := &handler.PostReadHandler{DB: db, Comments: commentSvc, Waves: waveSvc}
	waveH := &handler.WaveHandler{Svc: waveSvc}
	commentH := &handler.CommentHandler{Svc: commentSvc}

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", postRead.List)
		r.With(auth.OptionalAuth(jwtSvc)).Get("/{slug}", postRead.Detail)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(jwtSvc))
			r.Post("/", postH.Create)
			r.Post("/{slug}/wave", waveH.Toggle)
			r.Post("/{slug}/comments", commentH.Create)
		})
	})

	achH := &handler.AchievementHandler{DB: db, Svc: achSvc}
	r.Route("/achievements", func(r chi.Router) {
		r.Get("/", achH.List)
		r.With(auth.RequireAuth(jwtSvc)).Post("/seed", achH.Seed)
	})

	return r
}
