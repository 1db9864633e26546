package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/mealmuse/backend/internal/logger"
	"github.com/mealmuse/backend/internal/model"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RecipeCache is a redis-backed cache for recipe detail and related-set
// lookups. Recipes are immutable reference data, so entries only ever
// expire, never invalidate. All methods are nil-receiver safe: without a
// cache every lookup is a miss and every store is a no-op.
type RecipeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRecipeCache creates a new RecipeCache instance
func NewRecipeCache(client *redis.Client, ttl time.Duration) *RecipeCache {
	if client == nil {
		return nil
	}
	return &RecipeCache{client: client, ttl: ttl}
}

func recipeKey(id int64) string {
	return "recipe:" + strconv.FormatInt(id, 10)
}

func (c *RecipeCache) GetRecipe(ctx context.Context, id int64) (*model.Recipe, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, recipeKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var recipe model.Recipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		return nil, false
	}
	return &recipe, true
}

func (c *RecipeCache) SetRecipe(ctx context.Context, recipe *model.Recipe) {
	if c == nil {
		return
	}
	data, err := json.Marshal(recipe)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, recipeKey(recipe.RecipeID), data, c.ttl).Err(); err != nil {
		logger.Warn("recipe cache write failed", zap.Int64("recipe_id", recipe.RecipeID), zap.Error(err))
	}
}

func (c *RecipeCache) GetRelated(ctx context.Context, key string) ([]model.Recipe, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var items []model.Recipe
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (c *RecipeCache) SetRelated(ctx context.Context, key string, items []model.Recipe) {
	if c == nil {
		return
	}
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Warn("related cache write failed", zap.String("key", key), zap.Error(err))
	}
}
