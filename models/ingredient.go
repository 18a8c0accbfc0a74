package models

import "gorm.io/gorm"

// Shared ingredient catalog. Rows are created on first reference from a
// pantry or recipe write and never deleted while referenced.
type Ingredient struct {
	gorm.Model
	Name           string `gorm:"uniqueIndex;not null"`
	ContainsNuts   bool
	ContainsGluten bool
	ContainsMeat   bool
}
