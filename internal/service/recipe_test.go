package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/mealmuse/backend/internal/model"
	"github.com/mealmuse/backend/internal/query"
	"github.com/mealmuse/backend/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedRecipes(t *testing.T, db *gorm.DB, recipes ...model.Recipe) {
	t.Helper()
	for i := range recipes {
		require.NoError(t, db.Create(&recipes[i]).Error)
	}
}

func recipeIDs(recipes []model.Recipe) []int64 {
	ids := make([]int64, len(recipes))
	for i, r := range recipes {
		ids[i] = r.RecipeID
	}
	return ids
}

func TestListRecipesConjunctiveIngredients(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewRecipeService(db, nil)

	seedRecipes(t, db,
		model.Recipe{RecipeID: 1, Name: "Egg Fried Rice", RecipeIngredientParts: model.StringArray{"egg", "rice", "scallion"}},
		model.Recipe{RecipeID: 2, Name: "Rice and Beans", RecipeIngredientParts: model.StringArray{"rice", "beans"}},
		model.Recipe{RecipeID: 3, Name: "Egg Noodle Soup", RecipeIngredientParts: model.StringArray{"Egg Noodles", "chicken broth"}},
	)

	// Every term must match at least one ingredient part.
	result, err := svc.ListRecipes(context.Background(), &query.RecipeFilter{
		Ingredients: []string{"egg", "rice"},
	}, Page{Number: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TotalCount)
	assert.Equal(t, []int64{1}, recipeIDs(result.Items))

	// Single term matches case-insensitively as a substring.
	result, err = svc.ListRecipes(context.Background(), &query.RecipeFilter{
		Ingredients: []string{"egg"},
	}, Page{Number: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, recipeIDs(result.Items))
}

func TestListRecipesExcludedIngredients(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewRecipeService(db, nil)

	seedRecipes(t, db,
		model.Recipe{RecipeID: 1, Name: "Peanut Satay", RecipeIngredientParts: model.StringArray{"peanut butter", "chicken"}},
		model.Recipe{RecipeID: 2, Name: "Plain Chicken", RecipeIngredientParts: model.StringArray{"chicken", "salt"}},
		model.Recipe{RecipeID: 3, Name: "Shrimp Curry", RecipeIngredientParts: model.StringArray{"shrimp", "coconut milk"}},
	)

	result, err := svc.ListRecipes(context.Background(), &query.RecipeFilter{
		ExcludedIngredients: []string{"peanut", "shrimp"},
	}, Page{Number: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, recipeIDs(result.Items))
}

func TestListRecipesNumericRanges(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewRecipeService(db, nil)

	seedRecipes(t, db,
		model.Recipe{RecipeID: 1, Name: "Quick Salad", TotalTime: 10, Calories: 150},
		model.Recipe{RecipeID: 2, Name: "Slow Roast", TotalTime: 240, Calories: 800},
		model.Recipe{RecipeID: 3, Name: "Weeknight Pasta", TotalTime: 30, Calories: 550},
	)

	result, err := svc.ListRecipes(context.Background(), &query.RecipeFilter{
		TimeRange:    &query.IntRange{Min: 5, Max: 60},
		CalorieRange: &query.IntRange{Min: 100, Max: 600},
	}, Page{Number: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, recipeIDs(result.Items))
}

func TestListRecipesDietaryCategory(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewRecipeService(db, nil)

	seedRecipes(t, db,
		model.Recipe{RecipeID: 1, Name: "Chickpea Bowl", DietaryCategory: "vegan"},
		model.Recipe{RecipeID: 2, Name: "Grilled Salmon", DietaryCategory: "pescatarian"},
	)

	result, err := svc.ListRecipes(context.Background(), &query.RecipeFilter{
		DietaryCategory: "vegan",
	}, Page{Number: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, recipeIDs(result.Items))

	// A value outside the enumeration matches nothing rather than erroring.
	result, err = svc.ListRecipes(context.Background(), &query.RecipeFilter{
		DietaryCategory: "klingon",
	}, Page{Number: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.TotalCount)
	assert.Empty(t, result.Items)
}

func TestListRecipesLifestyleGoalsAnyOf(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewRecipeService(db, nil)

	seedRecipes(t, db,
		model.Recipe{RecipeID: 1, Name: "Keto Plate", LifestyleGoals: model.StringArray{"low carb", "keto"}},
		model.Recipe{RecipeID: 2, Name: "Bulking Bowl", LifestyleGoals: model.StringArray{"muscle gain"}},
		model.Recipe{RecipeID: 3, Name: "Light Soup", LifestyleGoals: model.StringArray{"weight loss", "low carb"}},
	)

	result, err := svc.ListRecipes(context.Background(), &query.RecipeFilter{
		LifestyleGoals: []string{"keto", "weight loss"},
	}, Page{Number: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, recipeIDs(result.Items))

	// Goal matching is anchored to whole entries, not substrings.
	result, err = svc.ListRecipes(context.Background(), &query.RecipeFilter{
		LifestyleGoals: []string{"carb"},
	}, Page{Number: 1, Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, result.Items)
}

func TestListRecipesSearch(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewRecipeService(db, nil)

	seedRecipes(t, db,
		model.Recipe{RecipeID: 1, Name: "Classic Margherita Pizza", RecipeCategory: "Italian"},
		model.Recipe{RecipeID: 2, Name: "Pizza Rolls", RecipeCategory: "Snacks"},
		model.Recipe{RecipeID: 3, Name: "Caesar Salad", RecipeCategory: "Italian"},
	)

	result, err := svc.ListRecipes(context.Background(), &query.RecipeFilter{
		NameQuery: "pizza",
	}, Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, recipeIDs(result.Items))

	result, err = svc.ListRecipes(context.Background(), &query.RecipeFilter{
		NameQuery:     "pizza",
		CategoryQuery: "italian",
	}, Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, recipeIDs(result.Items))
}

func TestListRecipesPagination(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewRecipeService(db, nil)

	for i := 1; i <= 5; i++ {
		seedRecipes(t, db, model.Recipe{RecipeID: int64(i), Name: fmt.Sprintf("Recipe %d", i)})
	}

	filter := &query.RecipeFilter{}

	page1, err := svc.ListRecipes(context.Background(), filter, Page{Number: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page1.TotalCount)
	assert.Equal(t, []int64{1, 2}, recipeIDs(page1.Items))

	page2, err := svc.ListRecipes(context.Background(), filter, Page{Number: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page2.TotalCount)
	assert.Equal(t, []int64{3, 4}, recipeIDs(page2.Items))

	page3, err := svc.ListRecipes(context.Background(), filter, Page{Number: 3, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, recipeIDs(page3.Items))

	// Past the last page: empty items, count unchanged.
	page4, err := svc.ListRecipes(context.Background(), filter, Page{Number: 4, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page4.TotalCount)
	assert.Empty(t, page4.Items)
}

func TestGetRecipe(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewRecipeService(db, nil)

	seedRecipes(t, db, model.Recipe{RecipeID: 42, Name: "Shakshuka"})

	recipe, err := svc.GetRecipe(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Shakshuka", recipe.Name)

	_, err = svc.GetRecipe(context.Background(), 99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRelatedRecipesDisjunctive(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewRecipeService(db, nil)

	seedRecipes(t, db,
		model.Recipe{RecipeID: 1, Name: "Caprese", RecipeIngredientParts: model.StringArray{"tomato", "mozzarella", "basil"}},
		model.Recipe{RecipeID: 2, Name: "Pesto Pasta", RecipeIngredientParts: model.StringArray{"basil", "pine nuts"}},
		model.Recipe{RecipeID: 3, Name: "Beef Stew", RecipeIngredientParts: model.StringArray{"beef", "carrot"}},
	)

	// One matching seed ingredient is enough.
	items, err := svc.RelatedRecipes(context.Background(), &query.RelatedFilter{
		Ingredients: []string{"tomato", "basil"},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, recipeIDs(items))
}

func TestRelatedRecipesExcludesSeed(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewRecipeService(db, nil)

	seedRecipes(t, db,
		model.Recipe{RecipeID: 1, Name: "Caprese", RecipeIngredientParts: model.StringArray{"tomato", "basil"}},
		model.Recipe{RecipeID: 2, Name: "Bruschetta", RecipeIngredientParts: model.StringArray{"tomato", "bread"}},
	)

	items, err := svc.RelatedRecipes(context.Background(), &query.RelatedFilter{
		ExcludeID:   1,
		Ingredients: []string{"tomato"},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, recipeIDs(items))
}

func TestRelatedRecipesNarrowingFilters(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewRecipeService(db, nil)

	seedRecipes(t, db,
		model.Recipe{RecipeID: 1, Name: "Fast Tomato Soup", RecipeIngredientParts: model.StringArray{"tomato"}, AggregatedRating: 4.5, TotalTime: 20, RecipeCategory: "Soup", DietaryCategory: "vegan", Keywords: model.StringArray{"quick", "comfort"}},
		model.Recipe{RecipeID: 2, Name: "Slow Tomato Soup", RecipeIngredientParts: model.StringArray{"tomato"}, AggregatedRating: 4.5, TotalTime: 180, RecipeCategory: "Soup", DietaryCategory: "vegan"},
		model.Recipe{RecipeID: 3, Name: "Meh Tomato Soup", RecipeIngredientParts: model.StringArray{"tomato"}, AggregatedRating: 2.0, TotalTime: 20, RecipeCategory: "Soup", DietaryCategory: "vegan"},
		model.Recipe{RecipeID: 4, Name: "Tomato Salad", RecipeIngredientParts: model.StringArray{"tomato"}, AggregatedRating: 5.0, TotalTime: 10, RecipeCategory: "Salad", DietaryCategory: "vegan"},
	)

	rating := 4.0
	maxTime := 60
	items, err := svc.RelatedRecipes(context.Background(), &query.RelatedFilter{
		Ingredients:  []string{"tomato"},
		Category:     "Soup",
		MinRating:    &rating,
		MaxTotalTime: &maxTime,
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, recipeIDs(items))

	// Keyword intersection narrows further.
	items, err = svc.RelatedRecipes(context.Background(), &query.RelatedFilter{
		Ingredients: []string{"tomato"},
		Keywords:    []string{"comfort"},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, recipeIDs(items))
}

func TestRelatedRecipesCap(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewRecipeService(db, nil)

	for i := 1; i <= 15; i++ {
		seedRecipes(t, db, model.Recipe{
			RecipeID:              int64(i),
			Name:                  fmt.Sprintf("Tomato Dish %d", i),
			RecipeIngredientParts: model.StringArray{"tomato"},
		})
	}

	items, err := svc.RelatedRecipes(context.Background(), &query.RelatedFilter{
		Ingredients: []string{"tomato"},
	})
	require.NoError(t, err)
	assert.Len(t, items, query.RelatedLimit)
}

func TestRelatedRecipesEmptySeed(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewRecipeService(db, nil)

	seedRecipes(t, db, model.Recipe{RecipeID: 1, Name: "Anything"})

	items, err := svc.RelatedRecipes(context.Background(), &query.RelatedFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)
}
