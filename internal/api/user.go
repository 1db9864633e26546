package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mealmuse/backend/internal/logger"
	"github.com/mealmuse/backend/internal/middleware"
	"github.com/mealmuse/backend/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserHandler serves profile, favorites, and profile-picture endpoints.
// The image service is optional; without it binary uploads return 503.
type UserHandler struct {
	users  *service.UserService
	images *service.ImageService
}

func NewUserHandler(users *service.UserService, images *service.ImageService) *UserHandler {
	return &UserHandler{users: users, images: images}
}

func (h *UserHandler) RegisterRoutes(router *gin.Engine, validator middleware.TokenValidator, limiter *middleware.RateLimiter) {
	authed := router.Group("")
	authed.Use(middleware.AuthMiddleware(validator))
	{
		authed.GET("/user", h.GetCurrentUser)
		authed.GET("/user/:userId", h.GetCurrentUser)
		authed.GET("/users/:userId/favorites", h.ListFavorites)

		mutations := authed.Group("")
		mutations.Use(limiter.RateLimitMiddleware())
		{
			mutations.PUT("/user/:userId/favorites", h.ToggleFavorite)
			mutations.PUT("/user/:userId/photo", h.UpdatePhoto)
			mutations.POST("/user/:userId/photo/upload", h.UploadPhoto)
		}
	}
}

// currentUserID returns the authenticated subject stored by the auth
// middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, messageBody("user not authenticated"))
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, messageBody("user not authenticated"))
		return uuid.Nil, false
	}
	return id, true
}

// requireSubject checks that the :userId path parameter names the
// authenticated subject. A valid credential for a different user is 403.
func requireSubject(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return uuid.Nil, false
	}
	if c.Param("userId") != userID.String() {
		c.JSON(http.StatusForbidden, messageBody("Forbidden"))
		return uuid.Nil, false
	}
	return userID, true
}

// GetCurrentUser returns the token subject's profile. The :userId variant
// exists for the original surface; both resolve the subject from the
// credential.
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, messageBody("User not found"))
			return
		}
		logger.Error("user lookup failed", zap.String("user_id", userID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, storeErrorBody("Error fetching user details", err))
		return
	}

	favorites, err := h.users.FavoriteIDs(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, storeErrorBody("Error fetching user details", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"_id":       user.ID,
		"email":     user.Email,
		"name":      user.Name,
		"photo":     user.Photo,
		"favorites": favorites,
	})
}

type ToggleFavoriteRequest struct {
	RecipeID int64 `json:"recipeId" binding:"required"`
}

// ToggleFavorite flips a recipe's membership in the subject's favorite
// set.
func (h *UserHandler) ToggleFavorite(c *gin.Context) {
	userID, ok := requireSubject(c)
	if !ok {
		return
	}

	var req ToggleFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, messageBody("Invalid request body"))
		return
	}

	added, err := h.users.ToggleFavorite(c.Request.Context(), userID, req.RecipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, messageBody("User not found"))
			return
		}
		logger.Error("favorite toggle failed", zap.String("user_id", userID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, storeErrorBody("Error updating favorites", err))
		return
	}

	if added {
		c.JSON(http.StatusOK, messageBody("Recipe added to favorites"))
	} else {
		c.JSON(http.StatusOK, messageBody("Recipe removed from favorites"))
	}
}

// ListFavorites resolves a user's favorite set to full recipe records.
func (h *UserHandler) ListFavorites(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, messageBody("Invalid user id"))
		return
	}

	recipes, err := h.users.FavoriteRecipes(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, messageBody("User not found"))
			return
		}
		logger.Error("favorite recipes lookup failed", zap.String("user_id", userID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, storeErrorBody("Error fetching favorite recipes", err))
		return
	}

	c.JSON(http.StatusOK, recipes)
}

type UpdatePhotoRequest struct {
	Photo string `json:"photo" binding:"required"`
}

// UpdatePhoto stores a new profile-picture URL on the subject.
func (h *UserHandler) UpdatePhoto(c *gin.Context) {
	userID, ok := requireSubject(c)
	if !ok {
		return
	}

	var req UpdatePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, messageBody("No photo URL provided."))
		return
	}

	if err := h.users.UpdatePhoto(c.Request.Context(), userID, req.Photo); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, messageBody("User not found"))
			return
		}
		logger.Error("photo update failed", zap.String("user_id", userID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, storeErrorBody("Error updating profile picture", err))
		return
	}

	c.JSON(http.StatusOK, messageBody("Profile picture updated successfully!"))
}

// UploadPhoto accepts a multipart image, stores it in S3, and persists
// the resulting URL on the subject.
func (h *UserHandler) UploadPhoto(c *gin.Context) {
	userID, ok := requireSubject(c)
	if !ok {
		return
	}

	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, messageBody("Image storage is not configured"))
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, messageBody("No photo file provided."))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, messageBody("Unable to read photo file."))
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.images.UploadProfilePicture(
		c.Request.Context(),
		userID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		logger.Error("photo upload failed", zap.String("user_id", userID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, storeErrorBody("Error uploading profile picture", err))
		return
	}

	if err := h.users.UpdatePhoto(c.Request.Context(), userID, url); err != nil {
		c.JSON(http.StatusInternalServerError, storeErrorBody("Error updating profile picture", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile picture updated successfully!",
		"photo":   url,
	})
}
