package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/rdg11/recipe-app-backend/models"
	"github.com/rdg11/recipe-app-backend/utils"

	"gorm.io/gorm"
)

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

type RegisterInput struct {
	FirstName    string `json:"firstName" binding:"required"`
	LastName     string `json:"lastName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
	IsVegetarian bool   `json:"isVegetarian"`
	IsNutFree    bool   `json:"isNutFree"`
	IsGlutenFree bool   `json:"isGlutenFree"`
}

func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	var existing models.User
	if err := s.db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: an account with this email already exists", ErrValidation)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Password:     hashed,
		IsVegetarian: input.IsVegetarian,
		IsNutFree:    input.IsNutFree,
		IsGlutenFree: input.IsGlutenFree,
	}
	if err := s.db.Create(&user).Error; err != nil {
		// the unique index can still fire if two registrations race the
		// pre-check; report it the same way
		var dup models.User
		if s.db.Where("email = ?", input.Email).First(&dup).Error == nil {
			return nil, fmt.Errorf("%w: an account with this email already exists", ErrValidation)
		}
		return nil, err
	}

	// best effort, registration already succeeded
	if err := utils.SendWelcomeEmail(user.Email, user.FirstName); err != nil {
		log.Printf("welcome email to %s failed: %v", user.Email, err)
	}
	return &user, nil
}

// Authenticate checks the credentials and issues a JWT carrying the user's
// id and email.
func (s *AuthService) Authenticate(email, password string) (string, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: no account for this email", ErrNotFound)
		}
		return "", err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("incorrect password")
	}

	return utils.GenerateJWT(user.ID, user.Email)
}
