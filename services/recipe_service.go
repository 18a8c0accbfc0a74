package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rdg11/recipe-app-backend/models"

	"gorm.io/gorm"
)

type RecipeService struct {
	db     *gorm.DB
	pantry *PantryService
	gen    *GenerationService
}

func NewRecipeService(db *gorm.DB, pantry *PantryService, gen *GenerationService) *RecipeService {
	return &RecipeService{db: db, pantry: pantry, gen: gen}
}

// GenerateForUser runs the whole pipeline: pantry snapshot, prompt, external
// call, reconciliation. The returned result still carries its classification
// so the controller can report recovery or parse failure alongside recipes.
func (s *RecipeService) GenerateForUser(userID uint, preference string) (*GenerationResult, error) {
	entries, err := s.pantry.List(userID)
	if err != nil {
		return nil, err
	}

	prompt := BuildRecipePrompt(preference, entries)
	result, err := s.gen.Generate(prompt)
	if err != nil {
		return nil, err
	}

	ReconcileRecipes(result.Recipes, entries)
	return result, nil
}

// RecipeIngredientInput is one ingredient on a save request. Quantity and
// unit default to empty (unspecified) when absent.
type RecipeIngredientInput struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// SaveRecipeInput covers both user-authored recipes and AI suggestions being
// persisted; the dietary flags arrive as-given and are stored untouched.
type SaveRecipeInput struct {
	Name         string                  `json:"recipeName" binding:"required"`
	Description  string                  `json:"description"`
	Steps        []string                `json:"steps"`
	PrepTime     string                  `json:"prepTime"`
	Ingredients  []RecipeIngredientInput `json:"ingredients"`
	IsVegetarian bool                    `json:"isVegetarian"`
	IsGlutenFree bool                    `json:"isGlutenFree"`
	IsNutFree    bool                    `json:"isNutFree"`
}

// SavedRecipe is the favorites-page view of a stored recipe.
type SavedRecipe struct {
	ID           uint                    `json:"id"`
	Name         string                  `json:"recipeName"`
	Description  string                  `json:"description"`
	Steps        []string                `json:"steps"`
	PrepTime     string                  `json:"prepTime"`
	Ingredients  []RecipeIngredientInput `json:"ingredients"`
	IsVegetarian bool                    `json:"isVegetarian"`
	IsGlutenFree bool                    `json:"isGlutenFree"`
	IsNutFree    bool                    `json:"isNutFree"`
}

// Save persists a recipe and favorites it for the user. Saving is idempotent
// per (user, recipe name): if the user already has a favorited recipe with
// this name, its id comes back and nothing new is written.
func (s *RecipeService) Save(userID uint, input SaveRecipeInput) (uint, error) {
	if strings.TrimSpace(input.Name) == "" {
		return 0, fmt.Errorf("%w: recipe name is required", ErrValidation)
	}

	if id, ok, err := s.findFavoriteByName(userID, input.Name); err != nil {
		return 0, err
	} else if ok {
		return id, nil
	}

	var recipeID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		recipe := models.Recipe{
			Name:         input.Name,
			Description:  input.Description,
			PrepTime:     input.PrepTime,
			IsVegetarian: input.IsVegetarian,
			IsGlutenFree: input.IsGlutenFree,
			IsNutFree:    input.IsNutFree,
		}
		recipe.SetSteps(input.Steps)
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}

		for _, ri := range input.Ingredients {
			if strings.TrimSpace(ri.Name) == "" {
				continue
			}
			ing, err := s.pantry.lookupOrCreateIngredient(tx, ri.Name)
			if err != nil {
				return err
			}
			row := models.RecipeIngredient{
				RecipeID:     recipe.ID,
				IngredientID: ing.ID,
				Quantity:     ri.Quantity,
				Unit:         ri.Unit,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(&models.Favorite{UserID: userID, RecipeID: recipe.ID}).Error; err != nil {
			return err
		}
		recipeID = recipe.ID
		return nil
	})
	return recipeID, err
}

// SaveGenerated persists an AI suggestion. The generator's allergyFlags map
// onto the stored flags: vegetarian is taken as supplied (never inferred from
// the meat flag), the "free" flags negate the corresponding contains flag.
func (s *RecipeService) SaveGenerated(userID uint, r GeneratedRecipe) (uint, error) {
	input := SaveRecipeInput{
		Name:         r.RecipeName,
		Description:  r.Description,
		Steps:        r.Steps,
		PrepTime:     r.PrepTime,
		IsVegetarian: r.AllergyFlags.ContainsVegetarian,
		IsGlutenFree: !r.AllergyFlags.ContainsGluten,
		IsNutFree:    !r.AllergyFlags.ContainsNuts,
	}
	for _, name := range strings.Split(r.Ingredients, ",") {
		if name = strings.TrimSpace(name); name != "" {
			input.Ingredients = append(input.Ingredients, RecipeIngredientInput{Name: name})
		}
	}
	return s.Save(userID, input)
}

// ListFavorites returns the user's saved recipes with ingredient names
// joined from the catalog and the stored dietary flags.
func (s *RecipeService) ListFavorites(userID uint) ([]SavedRecipe, error) {
	var favorites []models.Favorite
	if err := s.db.Where("user_id = ?", userID).Find(&favorites).Error; err != nil {
		return nil, err
	}

	saved := make([]SavedRecipe, 0, len(favorites))
	for _, fav := range favorites {
		var recipe models.Recipe
		err := s.db.Preload("Ingredients.Ingredient").First(&recipe, fav.RecipeID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue // favorite pointing at a deleted recipe, skip it
		}
		if err != nil {
			return nil, err
		}

		sr := SavedRecipe{
			ID:           recipe.ID,
			Name:         recipe.Name,
			Description:  recipe.Description,
			Steps:        recipe.StepList(),
			PrepTime:     recipe.PrepTime,
			IsVegetarian: recipe.IsVegetarian,
			IsGlutenFree: recipe.IsGlutenFree,
			IsNutFree:    recipe.IsNutFree,
		}
		for _, ri := range recipe.Ingredients {
			sr.Ingredients = append(sr.Ingredients, RecipeIngredientInput{
				Name:     ri.Ingredient.Name,
				Quantity: ri.Quantity,
				Unit:     ri.Unit,
			})
		}
		saved = append(saved, sr)
	}
	return saved, nil
}

// RemoveFavorite unlinks a recipe from the user's favorites. A missing link
// is reported as ErrNotFound; the recipe row itself stays.
func (s *RecipeService) RemoveFavorite(userID, recipeID uint) error {
	res := s.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: recipe %d is not in favorites", ErrNotFound, recipeID)
	}
	return nil
}

// CreateReview attaches a rating and comment to a saved recipe.
func (s *RecipeService) CreateReview(userID, recipeID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	var recipe models.Recipe
	if err := s.db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: recipe %d", ErrNotFound, recipeID)
		}
		return nil, err
	}
	review := models.Review{UserID: userID, RecipeID: recipeID, Rating: rating, Comment: comment}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *RecipeService) ListReviews(recipeID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Where("recipe_id = ?", recipeID).Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

// findFavoriteByName looks for an existing favorited recipe of the same name
// for this user, the check that makes Save idempotent.
func (s *RecipeService) findFavoriteByName(userID uint, name string) (uint, bool, error) {
	var recipe models.Recipe
	err := s.db.
		Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
		Where("favorites.user_id = ? AND recipes.name = ?", userID, name).
		First(&recipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return recipe.ID, true, nil
}
