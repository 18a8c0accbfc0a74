package models

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	UserID   uint `gorm:"index;not null"`
	RecipeID uint `gorm:"index;not null"`
	Rating   int  // 1-5
	Comment  string
}
