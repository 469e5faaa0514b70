package router

import (
	"net/http"
	"time"

	"github.com/ksbmInfotechOfficial/vscct/internal/handler"
	"github.com/ksbmInfotechOfficial/vscct/internal/middleware"
	"github.com/ksbmInfotechOfficial/vscct/pkg/response"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Admin   *handler.AdminHandler
	Content *handler.ContentHandler
	Health  *handler.HealthHandler
}

// New assembles the full route tree. rdb may be nil, in which case rate
// limiting is disabled.
func New(h Handlers, auth *middleware.AuthMiddleware, rdb *redis.Client, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if rdb != nil {
		r.Use(middleware.RateLimiter(rdb, 300, time.Minute, 5*time.Minute, "ratelimit:global"))
	}

	r.Get("/", h.Health.Root)
	r.Get("/health", h.Health.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health.Health)

		r.Route("/auth", func(r chi.Router) {
			if rdb != nil {
				r.Use(middleware.RateLimiter(rdb, 20, time.Minute, 15*time.Minute, "ratelimit:auth"))
			}
			r.Post("/send-otp", h.Auth.SendOtp)
			r.Post("/verify-otp", h.Auth.VerifyOtp)
			r.Post("/admin/login", h.Auth.AdminLogin)
			r.Post("/refresh-token", h.Auth.RefreshToken)
		})

		r.Route("/user", func(r chi.Router) {
			r.Use(auth.RequireUser)
			r.Get("/profile", h.User.GetProfile)
			r.Put("/profile", h.User.UpdateProfile)
			r.Post("/fcm-token", h.User.UpdateFcmToken)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Get("/stats", h.Admin.GetStats)
			r.Get("/users", h.Admin.GetUsers)
			r.Get("/users/{id}", h.Admin.GetUser)
			r.Post("/notifications", h.Admin.SendNotification)
			r.Get("/notifications", h.Admin.GetNotifications)
		})

		r.Route("/content", func(r chi.Router) {
			r.Use(auth.OptionalUser)
			r.Get("/posts", h.Content.GetPosts)
			r.Get("/posts/{idOrSlug}", h.Content.GetPost)
			r.Get("/categories", h.Content.GetCategories)
			r.Get("/events", h.Content.GetEvents)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusNotFound, "Route not found")
	})

	return r
}
