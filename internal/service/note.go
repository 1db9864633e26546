package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/mealmuse/backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NoteService persists per-(user, recipe) notes with upsert semantics.
type NoteService struct {
	db *gorm.DB
}

// NewNoteService creates a new NoteService instance
func NewNoteService(db *gorm.DB) *NoteService {
	return &NoteService{db: db}
}

// Save upserts the note for the (user, recipe) pair as a single
// conditional insert against the composite unique index. A second save for
// the same pair updates the text in place; two records can never exist.
func (s *NoteService) Save(ctx context.Context, userID uuid.UUID, recipeID int64, text string) error {
	note := model.Note{
		UserID:   userID,
		RecipeID: recipeID,
		Text:     text,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"text", "updated_at"}),
		}).
		Create(&note).Error
}

// Get retrieves the note for the (user, recipe) pair. Returns
// gorm.ErrRecordNotFound when no note has been saved.
func (s *NoteService) Get(ctx context.Context, userID uuid.UUID, recipeID int64) (*model.Note, error) {
	var note model.Note
	err := s.db.WithContext(ctx).
		First(&note, "user_id = ? AND recipe_id = ?", userID, recipeID).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}
