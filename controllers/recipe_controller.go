package controllers

import (
	"net/http"
	"strconv"

	"github.com/rdg11/recipe-app-backend/services"

	"github.com/gin-gonic/gin"
)

type RecipeController struct {
	Recipes *services.RecipeService
}

func NewRecipeController(recipes *services.RecipeService) *RecipeController {
	return &RecipeController{Recipes: recipes}
}

type generateInput struct {
	Preference string `json:"preference"`
}

// Generate runs the pantry-to-recipes pipeline. A non-JSON answer from the
// generator is not a server error: the client gets an empty list plus the
// raw content for diagnostics, matching the documented contract.
func (rc *RecipeController) Generate(c *gin.Context) {
	userID := c.GetUint("userID")

	var body generateInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := rc.Recipes.GenerateForUser(userID, body.Preference)
	if err != nil {
		respondError(c, err)
		return
	}

	switch result.Kind {
	case services.KindParseFailed:
		c.JSON(http.StatusOK, gin.H{
			"recipes":     []services.GeneratedRecipe{},
			"error":       "Failed to parse the response as JSON",
			"raw_content": result.Raw,
		})
	case services.KindRecovered:
		c.JSON(http.StatusOK, gin.H{"recipes": result.Recipes, "recovery": result.Recovery})
	default:
		c.JSON(http.StatusOK, gin.H{"recipes": result.Recipes})
	}
}

// SaveRecipe persists a user-authored recipe into their favorites.
func (rc *RecipeController) SaveRecipe(c *gin.Context) {
	userID := c.GetUint("userID")

	var input services.SaveRecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := rc.Recipes.Save(userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe saved.", "recipeId": id})
}

// SaveAIRecipe persists a generated suggestion as returned by Generate.
func (rc *RecipeController) SaveAIRecipe(c *gin.Context) {
	userID := c.GetUint("userID")

	var input services.GeneratedRecipe
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := rc.Recipes.SaveGenerated(userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe saved.", "recipeId": id})
}

func (rc *RecipeController) ListFavorites(c *gin.Context) {
	userID := c.GetUint("userID")

	saved, err := rc.Recipes.ListFavorites(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": saved})
}

func (rc *RecipeController) DeleteFavorite(c *gin.Context) {
	userID := c.GetUint("userID")

	recipeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := rc.Recipes.RemoveFavorite(userID, uint(recipeID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Favorite removed."})
}

type reviewInput struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

func (rc *RecipeController) CreateReview(c *gin.Context) {
	userID := c.GetUint("userID")

	recipeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var body reviewInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := rc.Recipes.CreateReview(userID, uint(recipeID), body.Rating, body.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (rc *RecipeController) ListReviews(c *gin.Context) {
	recipeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	reviews, err := rc.Recipes.ListReviews(uint(recipeID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
