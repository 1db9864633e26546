package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mealmuse/backend/internal/logger"
	"github.com/mealmuse/backend/internal/middleware"
	"github.com/mealmuse/backend/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NoteHandler serves per-(user, recipe) note saves and lookups.
type NoteHandler struct {
	notes *service.NoteService
}

func NewNoteHandler(notes *service.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

func (h *NoteHandler) RegisterRoutes(router *gin.Engine, validator middleware.TokenValidator, limiter *middleware.RateLimiter) {
	authed := router.Group("")
	authed.Use(middleware.AuthMiddleware(validator))
	{
		authed.GET("/note/:recipeId", h.GetNote)
		authed.POST("/note", limiter.RateLimitMiddleware(), h.SaveNote)
	}
}

type SaveNoteRequest struct {
	RecipeID int64  `json:"recipeId" binding:"required"`
	Note     string `json:"note" binding:"required"`
}

// SaveNote upserts the subject's note for a recipe. Saving twice for the
// same recipe updates the existing note.
func (h *NoteHandler) SaveNote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req SaveNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, messageBody("Invalid request body"))
		return
	}

	if err := h.notes.Save(c.Request.Context(), userID, req.RecipeID, req.Note); err != nil {
		logger.Error("note save failed", zap.String("user_id", userID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, storeErrorBody("Error saving note", err))
		return
	}

	c.JSON(http.StatusOK, messageBody("Note saved successfully"))
}

// GetNote returns the subject's note text for a recipe, empty string when
// no note exists.
func (h *NoteHandler) GetNote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recipeID, err := strconv.ParseInt(c.Param("recipeId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, messageBody("Invalid recipe id"))
		return
	}

	note, err := h.notes.Get(c.Request.Context(), userID, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"note": ""})
			return
		}
		logger.Error("note lookup failed", zap.String("user_id", userID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, messageBody("Error retrieving note"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"note": note.Text})
}
