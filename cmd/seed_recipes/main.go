// Command seed_recipes imports the recipe dataset dump into the store.
// The dump carries R-style vector strings (`c("flour", "egg")`) for the
// list-valued columns and python-style quoted lists for lifestyle goals;
// both are normalized into plain string arrays before insert.
package main

import (
	"encoding/json"
	"flag"
	"os"
	"strings"

	"github.com/mealmuse/backend/config"
	"github.com/mealmuse/backend/internal/database"
	"github.com/mealmuse/backend/internal/logger"
	"github.com/mealmuse/backend/internal/model"
	"github.com/mealmuse/backend/internal/query"
	"go.uber.org/zap"
)

const batchSize = 500

type rawRecipe struct {
	RecipeID                   int64   `json:"RecipeId"`
	Name                       string  `json:"Name"`
	Description                string  `json:"Description"`
	TotalTime                  int     `json:"TotalTime"`
	Calories                   float64 `json:"Calories"`
	RecipeServings             float64 `json:"RecipeServings"`
	AggregatedRating           float64 `json:"AggregatedRating"`
	ReviewCount                int     `json:"ReviewCount"`
	RecipeCategory             string  `json:"RecipeCategory"`
	DietaryCategory            string  `json:"DietaryCategory"`
	HealthGoals                string  `json:"HealthGoals"`
	MealType                   string  `json:"MealType"`
	HealthCondition            string  `json:"HealthCondition"`
	FatContent                 float64 `json:"FatContent"`
	CholesterolContent         float64 `json:"CholesterolContent"`
	CarbohydrateContent        float64 `json:"CarbohydrateContent"`
	ProteinContent             float64 `json:"ProteinContent"`
	SugarContent               float64 `json:"SugarContent"`
	FiberContent               float64 `json:"FiberContent"`
	SodiumContent              float64 `json:"SodiumContent"`
	RecipeIngredientParts      string  `json:"RecipeIngredientParts"`
	RecipeIngredientQuantities string  `json:"RecipeIngredientQuantities"`
	RecipeInstructions         string  `json:"RecipeInstructions"`
	Keywords                   string  `json:"Keywords"`
	LifestyleGoals             string  `json:"LifestyleGoals"`
}

func (r *rawRecipe) toModel() model.Recipe {
	return model.Recipe{
		RecipeID:                   r.RecipeID,
		Name:                       r.Name,
		Description:                r.Description,
		TotalTime:                  r.TotalTime,
		Calories:                   r.Calories,
		RecipeServings:             r.RecipeServings,
		AggregatedRating:           r.AggregatedRating,
		ReviewCount:                r.ReviewCount,
		RecipeCategory:             r.RecipeCategory,
		DietaryCategory:            strings.ToLower(strings.TrimSpace(r.DietaryCategory)),
		HealthGoals:                r.HealthGoals,
		MealType:                   r.MealType,
		HealthCondition:            r.HealthCondition,
		FatContent:                 r.FatContent,
		CholesterolContent:         r.CholesterolContent,
		CarbohydrateContent:        r.CarbohydrateContent,
		ProteinContent:             r.ProteinContent,
		SugarContent:               r.SugarContent,
		FiberContent:               r.FiberContent,
		SodiumContent:              r.SodiumContent,
		RecipeIngredientParts:      model.StringArray(query.ParseIngredientList(r.RecipeIngredientParts)),
		RecipeIngredientQuantities: model.StringArray(query.ParseIngredientList(r.RecipeIngredientQuantities)),
		RecipeInstructions:         model.StringArray(query.ParseIngredientList(r.RecipeInstructions)),
		Keywords:                   model.StringArray(query.ParseIngredientList(r.Keywords)),
		LifestyleGoals:             model.StringArray(parseQuotedList(r.LifestyleGoals)),
	}
}

// parseQuotedList reads a python-style list string ("['low carb', 'keto']")
// into its elements.
func parseQuotedList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var goals []string
	if err := json.Unmarshal([]byte(strings.ReplaceAll(raw, "'", `"`)), &goals); err != nil {
		return query.SplitTerms(strings.Trim(raw, "[]"))
	}
	return goals
}

func main() {
	logger.Init()
	defer logger.Sync()

	path := flag.String("file", "recipes.json", "path to the recipes JSON dump")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		logger.Fatal("failed to read dataset", zap.String("file", *path), zap.Error(err))
	}

	var raw []rawRecipe
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Fatal("failed to parse dataset", zap.Error(err))
	}

	recipes := make([]model.Recipe, 0, len(raw))
	for i := range raw {
		recipes = append(recipes, raw[i].toModel())
	}

	if err := db.CreateInBatches(recipes, batchSize).Error; err != nil {
		logger.Fatal("failed to insert recipes", zap.Error(err))
	}

	logger.Info("recipes imported", zap.Int("count", len(recipes)))
}
