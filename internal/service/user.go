package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/mealmuse/backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserService handles user profile, favorites, and photo operations.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new UserService instance
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetByID retrieves a user by id.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ToggleFavorite flips the membership of a recipe in the user's favorite
// set and reports whether the recipe is now a favorite. The toggle is a
// delete followed by an insert-on-conflict, so concurrent calls for the
// same pair cannot produce duplicate rows.
func (s *UserService) ToggleFavorite(ctx context.Context, userID uuid.UUID, recipeID int64) (bool, error) {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return false, err
	}

	res := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&model.RecipeFavorite{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	fav := model.RecipeFavorite{UserID: userID, RecipeID: recipeID}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&fav).Error
	if err != nil {
		return false, err
	}
	return true, nil
}

// FavoriteIDs returns the recipe ids in the user's favorite set.
func (s *UserService) FavoriteIDs(ctx context.Context, userID uuid.UUID) ([]int64, error) {
	ids := make([]int64, 0)
	err := s.db.WithContext(ctx).
		Model(&model.RecipeFavorite{}).
		Where("user_id = ?", userID).
		Order("recipe_id ASC").
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// FavoriteRecipes resolves the user's favorite set to full recipe records.
func (s *UserService) FavoriteRecipes(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error) {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	recipes := make([]model.Recipe, 0)
	err := s.db.WithContext(ctx).
		Model(&model.Recipe{}).
		Joins("JOIN recipe_favorites ON recipe_favorites.recipe_id = recipes.recipe_id").
		Where("recipe_favorites.user_id = ?", userID).
		Order("recipes.recipe_id ASC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// UpdatePhoto stores a new profile picture reference on the user.
func (s *UserService) UpdatePhoto(ctx context.Context, userID uuid.UUID, photo string) error {
	res := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("photo", photo)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
