package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName    string `gorm:"not null"`
	LastName     string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	Password     string `gorm:"not null"` // bcrypt hash
	IsVegetarian bool
	IsNutFree    bool
	IsGlutenFree bool

	// owned rows go away with the user
	Pantry    []PantryItem `gorm:"constraint:OnDelete:CASCADE"`
	Favorites []Favorite   `gorm:"constraint:OnDelete:CASCADE"`
	Reviews   []Review     `gorm:"constraint:OnDelete:CASCADE"`
}
