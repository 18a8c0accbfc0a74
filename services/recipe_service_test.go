package services

import (
	"testing"

	"github.com/rdg11/recipe-app-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveFavoriteIsIdempotentPerName(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	svc := NewRecipeService(db, NewPantryService(db), nil)

	input := SaveRecipeInput{
		Name:        "Fried Rice",
		Description: "quick weeknight dinner",
		Steps:       []string{"cook rice", "fry it"},
		Ingredients: []RecipeIngredientInput{{Name: "Rice"}, {Name: "Eggs", Quantity: "2"}},
	}

	first, err := svc.Save(user.ID, input)
	require.NoError(t, err)

	second, err := svc.Save(user.ID, input)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var recipeCount, favCount int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&recipeCount).Error)
	require.NoError(t, db.Model(&models.Favorite{}).Count(&favCount).Error)
	assert.EqualValues(t, 1, recipeCount)
	assert.EqualValues(t, 1, favCount)
}

func TestSaveSameNameDifferentUsersAreIndependent(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	svc := NewRecipeService(db, NewPantryService(db), nil)

	input := SaveRecipeInput{Name: "Fried Rice"}

	aliceID, err := svc.Save(alice.ID, input)
	require.NoError(t, err)
	bobID, err := svc.Save(bob.ID, input)
	require.NoError(t, err)

	assert.NotEqual(t, aliceID, bobID)
}

func TestSaveRequiresName(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	svc := NewRecipeService(db, NewPantryService(db), nil)

	_, err := svc.Save(user.ID, SaveRecipeInput{Name: "  "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSaveGeneratedMapsAllergyFlags(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	svc := NewRecipeService(db, NewPantryService(db), nil)

	id, err := svc.SaveGenerated(user.ID, GeneratedRecipe{
		RecipeName:  "Peanut Stew",
		Ingredients: "peanuts, tomatoes",
		Steps:       []string{"simmer"},
		AllergyFlags: AllergyFlags{
			ContainsVegetarian: true,
			ContainsGluten:     false,
			ContainsNuts:       true,
			ContainsMeat:       false,
		},
	})
	require.NoError(t, err)

	var recipe models.Recipe
	require.NoError(t, db.First(&recipe, id).Error)
	assert.True(t, recipe.IsVegetarian)
	assert.True(t, recipe.IsGlutenFree)
	assert.False(t, recipe.IsNutFree)

	var ingCount int64
	require.NoError(t, db.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", id).Count(&ingCount).Error)
	assert.EqualValues(t, 2, ingCount)
}

func TestListFavoritesJoinsIngredients(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	svc := NewRecipeService(db, NewPantryService(db), nil)

	_, err := svc.Save(user.ID, SaveRecipeInput{
		Name:        "Omelette",
		Steps:       []string{"whisk", "fry"},
		Ingredients: []RecipeIngredientInput{{Name: "Eggs", Quantity: "3", Unit: "count"}},
		IsNutFree:   true,
	})
	require.NoError(t, err)

	saved, err := svc.ListFavorites(user.ID)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Omelette", saved[0].Name)
	assert.Equal(t, []string{"whisk", "fry"}, saved[0].Steps)
	assert.True(t, saved[0].IsNutFree)
	require.Len(t, saved[0].Ingredients, 1)
	assert.Equal(t, "Eggs", saved[0].Ingredients[0].Name)
	assert.Equal(t, "3", saved[0].Ingredients[0].Quantity)
}

func TestRemoveFavoriteNotFoundIsReported(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	svc := NewRecipeService(db, NewPantryService(db), nil)

	err := svc.RemoveFavorite(user.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveFavoriteKeepsRecipeRow(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	svc := NewRecipeService(db, NewPantryService(db), nil)

	id, err := svc.Save(user.ID, SaveRecipeInput{Name: "Toast"})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFavorite(user.ID, id))

	var recipe models.Recipe
	assert.NoError(t, db.First(&recipe, id).Error)

	saved, err := svc.ListFavorites(user.ID)
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestReviews(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	svc := NewRecipeService(db, NewPantryService(db), nil)

	id, err := svc.Save(user.ID, SaveRecipeInput{Name: "Toast"})
	require.NoError(t, err)

	_, err = svc.CreateReview(user.ID, id, 6, "too good")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateReview(user.ID, 9999, 4, "ghost recipe")
	assert.ErrorIs(t, err, ErrNotFound)

	review, err := svc.CreateReview(user.ID, id, 5, "crunchy")
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)

	reviews, err := svc.ListReviews(id)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}
