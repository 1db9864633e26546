package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mealmuse/backend/config"
	"github.com/mealmuse/backend/internal/api"
	"github.com/mealmuse/backend/internal/middleware"
	"github.com/mealmuse/backend/internal/service"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const recipeCacheTTL = 15 * time.Minute

// Server wires the store, cache, and services into the HTTP surface. All
// dependencies are injected; the server owns no global state.
type Server struct {
	router *gin.Engine
	http   *http.Server
}

// New builds the router with every handler registered. redisClient and
// s3Config may be nil; caching, rate limiting, and photo upload degrade
// gracefully.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, s3Config *config.S3Config) *Server {
	router := gin.Default()
	router.Use(middleware.CORS())

	cache := service.NewRecipeCache(redisClient, recipeCacheTTL)
	recipeService := service.NewRecipeService(db, cache)
	userService := service.NewUserService(db)
	noteService := service.NewNoteService(db)
	authService := service.NewAuthService(db, cfg.JWTSecret)
	imageService := service.NewImageService(s3Config)
	limiter := middleware.NewMutationRateLimiter(redisClient)

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to the Meal Recommendation API!")
	})

	api.NewRecipeHandler(recipeService).RegisterRoutes(router)
	api.NewAuthHandler(authService, userService).RegisterRoutes(router)
	api.NewUserHandler(userService, imageService).RegisterRoutes(router, authService, limiter)
	api.NewNoteHandler(noteService).RegisterRoutes(router, authService, limiter)

	return &Server{router: router}
}

// Router exposes the configured engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start begins serving on the given port and blocks until the listener
// fails or is shut down.
func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
