package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Routes builds the full HTTP handler, middleware included.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.RealIP)
	r.Use(RequestLogger(s.logger))
	r.Use(Recoverer(s.logger))
	r.Use(MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(s.config.HTTP.CORSOrigin),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/ws", s.ServeWsHandler)

	r.Get("/api/v1/health", s.handle(s.HealthCheckHandler))

	r.Route("/api/v1/users", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(s.RateLimitMiddleware)
			r.Post("/register", s.handle(s.RegisterHandler))
			r.Post("/login", s.handle(s.LoginHandler))
			r.Post("/refresh-token", s.handle(s.RefreshTokenHandler))
		})

		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware)
			r.Post("/logout", s.handle(s.LogoutHandler))
			r.Post("/change-password", s.handle(s.ChangePasswordHandler))
			r.Get("/current-user", s.handle(s.GetCurrentUserHandler))
			r.Patch("/update-account", s.handle(s.UpdateAccountDetailsHandler))
			r.Patch("/avatar", s.handle(s.UpdateAvatarHandler))
			r.Patch("/cover-image", s.handle(s.UpdateCoverImageHandler))
			r.Get("/c/{username}", s.handle(s.GetUserChannelProfileHandler))
			r.Get("/history", s.handle(s.GetWatchHistoryHandler))
			r.Get("/events", s.handle(s.GetEventsHandler))
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, NotFound("Route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, newError(http.StatusMethodNotAllowed, "Method not allowed"))
	})

	return r
}

func allowedOrigins(origin string) []string {
	var origins []string
	for _, o := range strings.Split(origin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
