package services

import (
	"errors"
	"fmt"

	"github.com/rdg11/recipe-app-backend/models"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// PreferencesInput updates only the flags the client actually sent.
type PreferencesInput struct {
	IsVegetarian *bool `json:"isVegetarian"`
	IsNutFree    *bool `json:"isNutFree"`
	IsGlutenFree *bool `json:"isGlutenFree"`
}

func (s *UserService) GetProfile(userID uint) (map[string]interface{}, error) {
	user, err := s.find(userID)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"id":           user.ID,
		"firstName":    user.FirstName,
		"lastName":     user.LastName,
		"email":        user.Email,
		"isVegetarian": user.IsVegetarian,
		"isNutFree":    user.IsNutFree,
		"isGlutenFree": user.IsGlutenFree,
	}, nil
}

func (s *UserService) UpdatePreferences(userID uint, input PreferencesInput) error {
	user, err := s.find(userID)
	if err != nil {
		return err
	}

	if input.IsVegetarian != nil {
		user.IsVegetarian = *input.IsVegetarian
	}
	if input.IsNutFree != nil {
		user.IsNutFree = *input.IsNutFree
	}
	if input.IsGlutenFree != nil {
		user.IsGlutenFree = *input.IsGlutenFree
	}
	return s.db.Save(user).Error
}

func (s *UserService) find(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}
	return &user, nil
}
