package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Ronak8595/Backend/internal/api/handler"
	customMiddleware "github.com/Ronak8595/Backend/internal/api/middleware"
	"github.com/Ronak8595/Backend/internal/config"
	"github.com/Ronak8595/Backend/internal/media"
	"github.com/Ronak8595/Backend/internal/repository/mongodb"
	"github.com/Ronak8595/Backend/internal/repository/redis"
	"github.com/Ronak8595/Backend/internal/security"
	"github.com/Ronak8595/Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *mongodb.DB, redisClient *redis.Client, storage *media.Storage) (http.Handler, error) {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	jwtManager := security.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)

	// Repositories
	userRepo := mongodb.NewUserRepository(db)
	subscriptionRepo := mongodb.NewSubscriptionRepository(db)
	videoRepo := mongodb.NewVideoRepository(db)

	// Services
	tokenService := service.NewTokenService(userRepo, jwtManager)
	authService := service.NewAuthService(userRepo, tokenService, storage)
	userService := service.NewUserService(userRepo, subscriptionRepo, videoRepo, storage)

	// Handlers
	authHandler, err := handler.NewAuthHandler(authService, cfg)
	if err != nil {
		return nil, err
	}
	userHandler, err := handler.NewUserHandler(userService, cfg)
	if err != nil {
		return nil, err
	}

	// Middleware over services
	authMiddleware := customMiddleware.NewAuthMiddleware(tokenService)
	rateLimiter := redis.NewRateLimiter(
		redisClient,
		cfg.Security.RateLimit.RequestsPerMinute,
		cfg.Security.RateLimit.Burst,
	)
	rateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(rateLimiter)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthz", handler.HealthCheck)
		r.Get("/readyz", handler.ReadyCheck(db))

		r.Route("/users", func(r chi.Router) {
			// Public routes
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh-token", authHandler.Refresh)

			// Protected routes
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Use(rateLimitMiddleware.Limit)

				r.Post("/logout", authHandler.Logout)
				r.Post("/change-password", userHandler.ChangePassword)
				r.Get("/current-user", userHandler.Me)
				r.Patch("/update-account", userHandler.UpdateAccount)
				r.Patch("/avatar", userHandler.UpdateAvatar)
				r.Patch("/cover-image", userHandler.UpdateCoverImage)
				r.Get("/c/{userName}", userHandler.Channel)
				r.Get("/history", userHandler.WatchHistory)
			})
		})
	})

	return r, nil
}
