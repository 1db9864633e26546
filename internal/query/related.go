package query

import (
	"regexp"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// RelatedLimit caps the candidate set returned by the related-recipe
// matcher. The original surface shows up to ten related cards plus the
// seed itself.
const RelatedLimit = 11

var rVectorSyntax = strings.NewReplacer(`c(`, "", `)`, "", `"`, "")

// ParseIngredientList tokenizes a seed recipe's ingredient list. The
// dataset carries R-style vectors (`c("flour", "egg")`), so the wrapper
// syntax is stripped before splitting on commas.
func ParseIngredientList(raw string) []string {
	return SplitTerms(rVectorSyntax.Replace(raw))
}

// RelatedFilter describes the candidate predicate for the related-recipe
// matcher: any-of ingredient matching narrowed by AND-ed exact filters.
type RelatedFilter struct {
	// ExcludeID removes the seed recipe itself from the candidate set.
	// Zero means no exclusion.
	ExcludeID int64

	// Ingredients is disjunctive: one matching term is enough.
	Ingredients []string

	// Category and DietaryCategory, when set, must match exactly.
	Category        string
	DietaryCategory string

	// MinRating keeps recipes rated at least this high.
	MinRating *float64

	// MaxTotalTime keeps recipes at most this many minutes long.
	MaxTotalTime *int

	// Keywords keeps recipes whose keyword set intersects this set.
	Keywords []string
}

// CacheKey derives a stable cache key from the filter's contents.
func (f *RelatedFilter) CacheKey() string {
	parts := []string{
		strconv.FormatInt(f.ExcludeID, 10),
		strings.ToLower(strings.Join(f.Ingredients, ",")),
		f.Category,
		f.DietaryCategory,
		strings.ToLower(strings.Join(f.Keywords, ",")),
	}
	if f.MinRating != nil {
		parts = append(parts, strconv.FormatFloat(*f.MinRating, 'f', -1, 64))
	}
	if f.MaxTotalTime != nil {
		parts = append(parts, strconv.Itoa(*f.MaxTotalTime))
	}
	return "related:" + strings.Join(parts, "|")
}

// Apply attaches the disjunctive ingredient predicate and the optional
// exact narrows. On postgres ingredient terms match on word boundaries;
// the sqlite fallback degrades to substring matching.
func (f *RelatedFilter) Apply(db *gorm.DB) *gorm.DB {
	ingredients := ingredientsColumn(db)
	postgres := db.Dialector.Name() == "postgres"

	if len(f.Ingredients) > 0 {
		clauses := make([]string, 0, len(f.Ingredients))
		args := make([]interface{}, 0, len(f.Ingredients))
		for _, term := range f.Ingredients {
			if postgres {
				clauses = append(clauses, ingredients+" ~* ?")
				args = append(args, `\y`+regexp.QuoteMeta(term)+`\y`)
			} else {
				clauses = append(clauses, "LOWER("+ingredients+") LIKE ?")
				args = append(args, substringPattern(term))
			}
		}
		db = db.Where(strings.Join(clauses, " OR "), args...)
	}

	if f.ExcludeID != 0 {
		db = db.Where("recipe_id <> ?", f.ExcludeID)
	}
	if f.Category != "" {
		db = db.Where("recipe_category = ?", f.Category)
	}
	if f.DietaryCategory != "" {
		db = db.Where("dietary_category = ?", f.DietaryCategory)
	}
	if f.MinRating != nil {
		db = db.Where("aggregated_rating >= ?", *f.MinRating)
	}
	if f.MaxTotalTime != nil {
		db = db.Where("total_time <= ?", *f.MaxTotalTime)
	}

	if len(f.Keywords) > 0 {
		keywords := jsonArrayColumn(db, "keywords")
		clauses := make([]string, 0, len(f.Keywords))
		args := make([]interface{}, 0, len(f.Keywords))
		for _, k := range f.Keywords {
			clauses = append(clauses, "LOWER("+keywords+") LIKE ?")
			args = append(args, elementPattern(k))
		}
		db = db.Where(strings.Join(clauses, " OR "), args...)
	}

	return db
}
