package models

// One (user, ingredient) ownership record. Quantity of nil means the user
// never specified an amount, which is different from zero.
type PantryItem struct {
	UserID       uint       `gorm:"primaryKey"`
	IngredientID uint       `gorm:"primaryKey"`
	Quantity     *float64
	Unit         string

	Ingredient Ingredient
}
