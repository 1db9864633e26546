package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mealmuse/backend/internal/model"
	"github.com/mealmuse/backend/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := model.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestToggleFavorite(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewUserService(db)
	user := createUser(t, db, "fav@example.com")
	seedRecipes(t, db, model.Recipe{RecipeID: 1, Name: "Ramen"})

	added, err := svc.ToggleFavorite(context.Background(), user.ID, 1)
	require.NoError(t, err)
	assert.True(t, added)

	ids, err := svc.FavoriteIDs(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids)

	// Second toggle removes the favorite again.
	added, err = svc.ToggleFavorite(context.Background(), user.ID, 1)
	require.NoError(t, err)
	assert.False(t, added)

	ids, err = svc.FavoriteIDs(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestToggleFavoriteUnknownUser(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewUserService(db)

	_, err := svc.ToggleFavorite(context.Background(), uuid.New(), 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFavoriteRecipes(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewUserService(db)
	user := createUser(t, db, "list@example.com")
	other := createUser(t, db, "other@example.com")

	seedRecipes(t, db,
		model.Recipe{RecipeID: 1, Name: "Ramen"},
		model.Recipe{RecipeID: 2, Name: "Pho"},
		model.Recipe{RecipeID: 3, Name: "Udon"},
	)

	for _, id := range []int64{3, 1} {
		_, err := svc.ToggleFavorite(context.Background(), user.ID, id)
		require.NoError(t, err)
	}
	_, err := svc.ToggleFavorite(context.Background(), other.ID, 2)
	require.NoError(t, err)

	recipes, err := svc.FavoriteRecipes(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, recipeIDs(recipes))
}

func TestUpdatePhoto(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewUserService(db)
	user := createUser(t, db, "photo@example.com")

	require.NoError(t, svc.UpdatePhoto(context.Background(), user.ID, "https://cdn.example.com/p.jpg"))

	updated, err := svc.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/p.jpg", updated.Photo)

	err = svc.UpdatePhoto(context.Background(), uuid.New(), "x")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
