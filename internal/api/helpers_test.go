package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mealmuse/backend/internal/middleware"
	"github.com/mealmuse/backend/internal/model"
	"github.com/mealmuse/backend/internal/service"
	"github.com/mealmuse/backend/internal/testdb"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter wires every handler against an in-memory store, without
// redis or object storage.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testdb.OpenSQLite(t)

	recipeService := service.NewRecipeService(db, nil)
	userService := service.NewUserService(db)
	noteService := service.NewNoteService(db)
	authService := service.NewAuthService(db, testJWTSecret)
	var limiter *middleware.RateLimiter

	router := gin.New()
	NewRecipeHandler(recipeService).RegisterRoutes(router)
	NewAuthHandler(authService, userService).RegisterRoutes(router)
	NewUserHandler(userService, nil).RegisterRoutes(router, authService, limiter)
	NewNoteHandler(noteService).RegisterRoutes(router, authService, limiter)

	return router, db
}

func seedRecipes(t *testing.T, db *gorm.DB, recipes ...model.Recipe) {
	t.Helper()
	for i := range recipes {
		require.NoError(t, db.Create(&recipes[i]).Error)
	}
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// registerTestUser creates an account through the public endpoint and
// returns its id and bearer token.
func registerTestUser(t *testing.T, router *gin.Engine, email string) (id, token string) {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/register", "", gin.H{
		"name":     "Test User",
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	id, _ = body["_id"].(string)
	token, _ = body["token"].(string)
	require.NotEmpty(t, id)
	require.NotEmpty(t, token)
	return id, token
}
