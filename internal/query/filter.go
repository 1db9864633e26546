// Package query builds validated gorm predicates over the recipe table
// from raw query-string filters. Parsing and validation happen before any
// store access; an invalid filter never reaches the database.
package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrRangeInvalid reports a numeric range whose lower bound exceeds
	// its upper bound.
	ErrRangeInvalid = errors.New("range lower bound exceeds upper bound")
	// ErrInvalidCategory reports a dietary category outside the fixed
	// enumeration on a strict endpoint.
	ErrInvalidCategory = errors.New("invalid dietary category")
)

// DietaryCategories is the fixed enumeration of recipe diet classes.
var DietaryCategories = []string{
	"herbivore",
	"carnivore",
	"eggitarian",
	"vegan",
	"pescatarian",
}

// CategoryMode selects how an out-of-enumeration dietary category is
// treated. Lenient endpoints keep the constraint (matching nothing);
// strict endpoints reject the request.
type CategoryMode int

const (
	CategoryLenient CategoryMode = iota
	CategoryStrict
)

// IsDietaryCategory reports whether the normalized value belongs to the
// fixed enumeration.
func IsDietaryCategory(s string) bool {
	for _, c := range DietaryCategories {
		if c == s {
			return true
		}
	}
	return false
}

// NormalizeCategory trims and lowercases a raw dietary category value.
// Under CategoryStrict a non-empty value outside the enumeration returns
// ErrInvalidCategory.
func NormalizeCategory(raw string, mode CategoryMode) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return "", nil
	}
	if mode == CategoryStrict && !IsDietaryCategory(normalized) {
		return "", ErrInvalidCategory
	}
	return normalized, nil
}

// IntRange is an inclusive numeric bound pair.
type IntRange struct {
	Min int
	Max int
}

// ParseRange parses a pair of range bounds. Both bounds must be supplied
// together for the range to activate; a one-sided range adds no
// constraint. Bounds must be non-negative integers with min <= max.
func ParseRange(minRaw, maxRaw string) (*IntRange, error) {
	minRaw = strings.TrimSpace(minRaw)
	maxRaw = strings.TrimSpace(maxRaw)
	if minRaw == "" || maxRaw == "" {
		return nil, nil
	}

	min, err := strconv.Atoi(minRaw)
	if err != nil || min < 0 {
		return nil, fmt.Errorf("invalid lower bound %q", minRaw)
	}
	max, err := strconv.Atoi(maxRaw)
	if err != nil || max < 0 {
		return nil, fmt.Errorf("invalid upper bound %q", maxRaw)
	}
	if min > max {
		return nil, ErrRangeInvalid
	}
	return &IntRange{Min: min, Max: max}, nil
}

// SplitTerms splits a comma-separated list into trimmed, non-empty terms.
func SplitTerms(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var terms []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// RecipeFilter is a normalized, request-scoped set of optional field
// constraints. A zero-value field adds no constraint.
type RecipeFilter struct {
	// TimeRange and CalorieRange bound TotalTime and Calories inclusively.
	TimeRange    *IntRange
	CalorieRange *IntRange

	// Ingredients is conjunctive: every term must substring-match at
	// least one ingredient part, case-insensitively.
	Ingredients []string

	// ExcludedIngredients is the inverse: no ingredient part may
	// substring-match any term.
	ExcludedIngredients []string

	// DietaryCategory matches anchored, case-insensitively, against the
	// recipe's dietary class.
	DietaryCategory string

	// LifestyleGoals matches when the recipe's goal set intersects the
	// requested set (any-of).
	LifestyleGoals []string

	// HealthGoals, MealType and HealthCondition match anchored,
	// case-insensitively.
	HealthGoals     string
	MealType        string
	HealthCondition string

	// NameQuery and CategoryQuery are free-text substring searches.
	NameQuery     string
	CategoryQuery string
}

// ingredientsColumn returns the ingredient-parts column expression for
// the active dialect. Postgres stores the array as jsonb and needs the
// text cast before LIKE.
func ingredientsColumn(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "recipe_ingredient_parts::text"
	}
	return "recipe_ingredient_parts"
}

func jsonArrayColumn(db *gorm.DB, name string) string {
	if db.Dialector.Name() == "postgres" {
		return name + "::text"
	}
	return name
}

// elementPattern builds a LIKE pattern that matches one exact element of
// a serialized JSON string array: elements are quoted in the stored text,
// so wrapping the term in quotes anchors the match to whole entries.
func elementPattern(term string) string {
	return `%"` + strings.ToLower(term) + `"%`
}

func substringPattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}

// Apply attaches every active constraint to the query. The receiver is
// never mutated; the same filter can be applied to both the count and the
// page query.
func (f *RecipeFilter) Apply(db *gorm.DB) *gorm.DB {
	if f.TimeRange != nil {
		db = db.Where("total_time BETWEEN ? AND ?", f.TimeRange.Min, f.TimeRange.Max)
	}
	if f.CalorieRange != nil {
		db = db.Where("calories BETWEEN ? AND ?", f.CalorieRange.Min, f.CalorieRange.Max)
	}

	ingredients := ingredientsColumn(db)
	for _, term := range f.Ingredients {
		db = db.Where("LOWER("+ingredients+") LIKE ?", substringPattern(term))
	}
	for _, term := range f.ExcludedIngredients {
		db = db.Where("LOWER("+ingredients+") NOT LIKE ?", substringPattern(term))
	}

	if f.DietaryCategory != "" {
		db = db.Where("LOWER(dietary_category) = ?", strings.ToLower(f.DietaryCategory))
	}

	if len(f.LifestyleGoals) > 0 {
		goals := jsonArrayColumn(db, "lifestyle_goals")
		clauses := make([]string, 0, len(f.LifestyleGoals))
		args := make([]interface{}, 0, len(f.LifestyleGoals))
		for _, g := range f.LifestyleGoals {
			clauses = append(clauses, "LOWER("+goals+") LIKE ?")
			args = append(args, elementPattern(g))
		}
		db = db.Where(strings.Join(clauses, " OR "), args...)
	}

	if f.HealthGoals != "" {
		db = db.Where("LOWER(health_goals) = ?", strings.ToLower(strings.TrimSpace(f.HealthGoals)))
	}
	if f.MealType != "" {
		db = db.Where("LOWER(meal_type) = ?", strings.ToLower(strings.TrimSpace(f.MealType)))
	}
	if f.HealthCondition != "" {
		db = db.Where("LOWER(health_condition) = ?", strings.ToLower(strings.TrimSpace(f.HealthCondition)))
	}

	if f.NameQuery != "" {
		db = db.Where("LOWER(name) LIKE ?", substringPattern(f.NameQuery))
	}
	if f.CategoryQuery != "" {
		db = db.Where("LOWER(recipe_category) LIKE ?", substringPattern(f.CategoryQuery))
	}

	return db
}
