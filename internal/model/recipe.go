package model

import (
	"database/sql/driver"
	"encoding/json"
)

// StringArray is a custom type for handling string arrays in JSONB. On
// sqlite the same value round-trips as serialized JSON text, so LIKE
// predicates over the column work on both dialects.
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Recipe is immutable reference data: rows are created by the dataset
// importer and read-only afterwards. RecipeIngredientParts and
// RecipeIngredientQuantities are aligned by index (quantity[i] describes
// part[i]).
type Recipe struct {
	RecipeID                   int64       `gorm:"primaryKey;autoIncrement:false" json:"RecipeId"`
	Name                       string      `gorm:"size:255;not null" json:"Name"`
	Description                string      `gorm:"type:text" json:"Description"`
	TotalTime                  int         `gorm:"not null;default:0" json:"TotalTime"`
	Calories                   float64     `gorm:"type:float" json:"Calories"`
	RecipeServings             float64     `gorm:"type:float" json:"RecipeServings"`
	AggregatedRating           float64     `gorm:"type:float" json:"AggregatedRating"`
	ReviewCount                int         `json:"ReviewCount"`
	RecipeCategory             string      `gorm:"size:100;index" json:"RecipeCategory"`
	DietaryCategory            string      `gorm:"size:50;index" json:"DietaryCategory"`
	HealthGoals                string      `gorm:"size:100" json:"HealthGoals"`
	MealType                   string      `gorm:"size:50" json:"MealType"`
	HealthCondition            string      `gorm:"size:100" json:"HealthCondition"`
	FatContent                 float64     `gorm:"type:float" json:"FatContent"`
	CholesterolContent         float64     `gorm:"type:float" json:"CholesterolContent"`
	CarbohydrateContent        float64     `gorm:"type:float" json:"CarbohydrateContent"`
	ProteinContent             float64     `gorm:"type:float" json:"ProteinContent"`
	SugarContent               float64     `gorm:"type:float" json:"SugarContent"`
	FiberContent               float64     `gorm:"type:float" json:"FiberContent"`
	SodiumContent              float64     `gorm:"type:float" json:"SodiumContent"`
	RecipeIngredientParts      StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"RecipeIngredientParts"`
	RecipeIngredientQuantities StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"RecipeIngredientQuantities"`
	RecipeInstructions         StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"RecipeInstructions"`
	Keywords                   StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"Keywords"`
	LifestyleGoals             StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"LifestyleGoals"`
}

func (Recipe) TableName() string {
	return "recipes"
}
