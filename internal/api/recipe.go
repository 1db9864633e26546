package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mealmuse/backend/internal/logger"
	"github.com/mealmuse/backend/internal/query"
	"github.com/mealmuse/backend/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RecipeHandler serves the filtered recipe retrieval endpoints.
type RecipeHandler struct {
	recipes *service.RecipeService
}

func NewRecipeHandler(recipes *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/recipes", h.ListRecipes)
	router.GET("/recipes-by-diet", h.ListByDiet)
	router.GET("/recipes-by-nutrition-and-diet", h.ListByNutritionAndDiet)
	router.GET("/mealtype", h.ListByMealType)
	router.GET("/search", h.Search)
	router.GET("/related-recipes", h.Related)
	router.GET("/recipe/:id", h.GetByID)
}

// ListRecipes filters by time range, calorie range, a conjunctive
// ingredient list, and a lenient dietary category.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	timeRange, err := query.ParseRange(c.Query("minTime"), c.Query("maxTime"))
	if err != nil {
		c.JSON(http.StatusBadRequest, messageBody("Invalid time range: "+err.Error()))
		return
	}
	calorieRange, err := query.ParseRange(c.Query("minCalories"), c.Query("maxCalories"))
	if err != nil {
		c.JSON(http.StatusBadRequest, messageBody("Invalid calorie range: "+err.Error()))
		return
	}
	category, _ := query.NormalizeCategory(c.Query("DietaryCategory"), query.CategoryLenient)

	filter := &query.RecipeFilter{
		TimeRange:       timeRange,
		CalorieRange:    calorieRange,
		Ingredients:     query.SplitTerms(c.Query("ingredients")),
		DietaryCategory: category,
	}

	h.respondPaged(c, filter, defaultPageLimit, "Error fetching recipes")
}

// ListByDiet is the strict endpoint variant: a dietary category outside
// the fixed enumeration is rejected instead of matching nothing.
func (h *RecipeHandler) ListByDiet(c *gin.Context) {
	category, err := query.NormalizeCategory(c.Query("DietaryCategory"), query.CategoryStrict)
	if err != nil {
		c.JSON(http.StatusBadRequest, messageBody("Invalid dietary category"))
		return
	}

	filter := &query.RecipeFilter{DietaryCategory: category}
	h.respondPaged(c, filter, defaultPageLimit, "Error fetching recipes by dietary category")
}

// ListByNutritionAndDiet filters by lifestyle-goal intersection (any-of)
// and a lenient dietary category.
func (h *RecipeHandler) ListByNutritionAndDiet(c *gin.Context) {
	category, _ := query.NormalizeCategory(c.Query("DietaryCategory"), query.CategoryLenient)

	goals := c.QueryArray("LifestyleGoals")
	if len(goals) == 1 {
		goals = query.SplitTerms(goals[0])
	}

	filter := &query.RecipeFilter{
		DietaryCategory: category,
		LifestyleGoals:  goals,
	}
	h.respondPaged(c, filter, defaultPageLimit, "Error fetching recipes by nutrition and diet")
}

// ListByMealType filters by meal type, health attributes, and an
// ingredient exclusion list.
func (h *RecipeHandler) ListByMealType(c *gin.Context) {
	category, _ := query.NormalizeCategory(c.Query("DietaryCategory"), query.CategoryLenient)

	filter := &query.RecipeFilter{
		DietaryCategory:     category,
		ExcludedIngredients: query.SplitTerms(c.Query("Ingredients_to_Avoid")),
		HealthGoals:         c.Query("HealthGoals"),
		MealType:            c.Query("MealType"),
		HealthCondition:     c.Query("HealthCondition"),
	}
	h.respondPaged(c, filter, defaultPageLimit, "Error fetching recipes")
}

// Search does free-text substring matching on recipe name and category.
func (h *RecipeHandler) Search(c *gin.Context) {
	filter := &query.RecipeFilter{
		NameQuery:     c.Query("query"),
		CategoryQuery: c.Query("category"),
	}
	h.respondPaged(c, filter, 10, "Error searching recipes")
}

// Related returns up to 11 recipes sharing at least one ingredient with
// the seed, narrowed by the optional exact filters. Not paginated.
func (h *RecipeHandler) Related(c *gin.Context) {
	filter := &query.RelatedFilter{
		Ingredients:     query.ParseIngredientList(c.Query("ingredients")),
		Category:        c.Query("category"),
		DietaryCategory: c.Query("dietaryCategory"),
		Keywords:        query.SplitTerms(c.Query("keywords")),
	}

	if raw := c.Query("recipeId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, messageBody("Invalid recipe id"))
			return
		}
		filter.ExcludeID = id
	}
	if raw := c.Query("minRating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, messageBody("Invalid minimum rating"))
			return
		}
		filter.MinRating = &rating
	}
	if raw := c.Query("maxTotalTime"); raw != "" {
		maxTime, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, messageBody("Invalid maximum total time"))
			return
		}
		filter.MaxTotalTime = &maxTime
	}

	items, err := h.recipes.RelatedRecipes(c.Request.Context(), filter)
	if err != nil {
		logger.Error("related recipes query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, storeErrorBody("Error fetching related recipes", err))
		return
	}

	c.JSON(http.StatusOK, RelatedResponse{Items: items})
}

// GetByID returns a single recipe by its numeric id.
func (h *RecipeHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, messageBody("Invalid recipe id"))
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, messageBody("Recipe not found"))
			return
		}
		logger.Error("recipe lookup failed", zap.Int64("recipe_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, storeErrorBody("Error fetching recipe details", err))
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) respondPaged(c *gin.Context, filter *query.RecipeFilter, defaultLimit int, storeMessage string) {
	page, ok := parsePagination(c, defaultLimit)
	if !ok {
		return
	}

	result, err := h.recipes.ListRecipes(c.Request.Context(), filter, page)
	if err != nil {
		logger.Error("recipe query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, storeErrorBody(storeMessage, err))
		return
	}

	c.JSON(http.StatusOK, NewPagedResponse(result.Items, result.TotalCount, page.Number, page.Limit))
}
