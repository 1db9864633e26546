package service

import (
	"context"
	"testing"

	"github.com/mealmuse/backend/internal/model"
	"github.com/mealmuse/backend/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNoteUpsert(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewNoteService(db)
	user := createUser(t, db, "notes@example.com")

	require.NoError(t, svc.Save(context.Background(), user.ID, 7, "needs more salt"))
	require.NoError(t, svc.Save(context.Background(), user.ID, 7, "perfect with lime"))

	note, err := svc.Get(context.Background(), user.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, "perfect with lime", note.Text)

	// The second save replaced the first; only one row exists for the pair.
	var count int64
	require.NoError(t, db.Model(&model.Note{}).
		Where("user_id = ? AND recipe_id = ?", user.ID, 7).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestNoteIsolatedPerPair(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewNoteService(db)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")

	require.NoError(t, svc.Save(context.Background(), alice.ID, 7, "too spicy"))
	require.NoError(t, svc.Save(context.Background(), bob.ID, 7, "not spicy enough"))
	require.NoError(t, svc.Save(context.Background(), alice.ID, 8, "weeknight staple"))

	note, err := svc.Get(context.Background(), alice.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, "too spicy", note.Text)

	note, err = svc.Get(context.Background(), bob.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, "not spicy enough", note.Text)
}

func TestNoteNotFound(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewNoteService(db)
	user := createUser(t, db, "empty@example.com")

	_, err := svc.Get(context.Background(), user.ID, 99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
