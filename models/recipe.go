package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

type Recipe struct {
	gorm.Model
	Name        string `gorm:"not null"`
	Description string
	Steps       string `gorm:"type:text"` // JSON-encoded ordered step list
	PrepTime    string
	// stored exactly as the generator (or the user) supplied them,
	// never derived from one another
	IsVegetarian bool
	IsGlutenFree bool
	IsNutFree    bool

	Ingredients []RecipeIngredient `gorm:"constraint:OnDelete:CASCADE"`
}

// SetSteps stores the ordered instruction list on the row.
func (r *Recipe) SetSteps(steps []string) {
	b, _ := json.Marshal(steps)
	r.Steps = string(b)
}

// StepList decodes the stored instruction list, empty slice if unset.
func (r *Recipe) StepList() []string {
	if r.Steps == "" {
		return []string{}
	}
	var steps []string
	if err := json.Unmarshal([]byte(r.Steps), &steps); err != nil {
		return []string{}
	}
	return steps
}

// Junction between a recipe and the catalog, composite key per side.
type RecipeIngredient struct {
	RecipeID     uint   `gorm:"primaryKey"`
	IngredientID uint   `gorm:"primaryKey"`
	Quantity     string // free text, "to taste" style values allowed
	Unit         string

	Ingredient Ingredient
}

// Existence-only save relation between a user and a recipe.
type Favorite struct {
	UserID   uint `gorm:"primaryKey"`
	RecipeID uint `gorm:"primaryKey"`
}
