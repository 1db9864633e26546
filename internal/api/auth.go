package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mealmuse/backend/internal/logger"
	"github.com/mealmuse/backend/internal/service"
	"go.uber.org/zap"
)

type AuthHandler struct {
	auth  *service.AuthService
	users *service.UserService
}

func NewAuthHandler(auth *service.AuthService, users *service.UserService) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

func (h *AuthHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, messageBody("Invalid request body"))
		return
	}

	user, token, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			c.JSON(http.StatusBadRequest, messageBody("User already exists"))
			return
		}
		logger.Error("registration failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, storeErrorBody("Error registering user", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"_id":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, messageBody("Invalid request body"))
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, messageBody("User not found"))
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, messageBody("Invalid password"))
		default:
			logger.Error("login failed", zap.String("email", req.Email), zap.Error(err))
			c.JSON(http.StatusInternalServerError, storeErrorBody("Error logging in user", err))
		}
		return
	}

	favorites, err := h.users.FavoriteIDs(c.Request.Context(), user.ID)
	if err != nil {
		logger.Error("favorite lookup failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, storeErrorBody("Error logging in user", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"_id":       user.ID,
		"email":     user.Email,
		"name":      user.Name,
		"photo":     user.Photo,
		"favorites": favorites,
		"token":     token,
	})
}
