package service

import (
	"context"

	"github.com/mealmuse/backend/internal/model"
	"github.com/mealmuse/backend/internal/query"
	"gorm.io/gorm"
)

// Page is a 1-based pagination window.
type Page struct {
	Number int
	Limit  int
}

// PagedRecipes is one page of results plus the total match count for the
// same predicate.
type PagedRecipes struct {
	Items      []model.Recipe
	TotalCount int64
}

// RecipeService executes recipe queries against the store. The cache is
// optional; a nil cache disables it.
type RecipeService struct {
	db    *gorm.DB
	cache *RecipeCache
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, cache *RecipeCache) *RecipeService {
	return &RecipeService{
		db:    db,
		cache: cache,
	}
}

// ListRecipes runs the filter predicate twice against the store: once for
// the total count and once for the requested window. Results are ordered
// by recipe_id ascending so page windows stay stable across requests.
func (s *RecipeService) ListRecipes(ctx context.Context, f *query.RecipeFilter, page Page) (*PagedRecipes, error) {
	q := f.Apply(s.db.WithContext(ctx).Model(&model.Recipe{})).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	items := make([]model.Recipe, 0, page.Limit)
	err := q.
		Order("recipe_id ASC").
		Offset((page.Number - 1) * page.Limit).
		Limit(page.Limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return &PagedRecipes{Items: items, TotalCount: total}, nil
}

// GetRecipe retrieves a recipe by its numeric id, cache-aside.
func (s *RecipeService) GetRecipe(ctx context.Context, id int64) (*model.Recipe, error) {
	if recipe, ok := s.cache.GetRecipe(ctx, id); ok {
		return recipe, nil
	}

	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "recipe_id = ?", id).Error; err != nil {
		return nil, err
	}

	s.cache.SetRecipe(ctx, &recipe)
	return &recipe, nil
}

// RelatedRecipes returns up to query.RelatedLimit candidates matching the
// disjunctive ingredient predicate, seed excluded. A seed with no parsed
// ingredients yields an empty set without touching the store.
func (s *RecipeService) RelatedRecipes(ctx context.Context, f *query.RelatedFilter) ([]model.Recipe, error) {
	if len(f.Ingredients) == 0 {
		return []model.Recipe{}, nil
	}

	key := f.CacheKey()
	if items, ok := s.cache.GetRelated(ctx, key); ok {
		return items, nil
	}

	items := make([]model.Recipe, 0, query.RelatedLimit)
	err := f.Apply(s.db.WithContext(ctx).Model(&model.Recipe{})).
		Order("recipe_id ASC").
		Limit(query.RelatedLimit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	s.cache.SetRelated(ctx, key, items)
	return items, nil
}
