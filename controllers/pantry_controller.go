package controllers

import (
	"net/http"

	"github.com/rdg11/recipe-app-backend/services"

	"github.com/gin-gonic/gin"
)

type PantryController struct {
	Pantry *services.PantryService
	Hub    *services.PantryHub
}

func NewPantryController(pantry *services.PantryService, hub *services.PantryHub) *PantryController {
	return &PantryController{Pantry: pantry, Hub: hub}
}

// GetPantry lists the user's entries. An empty pantry is an empty list, not
// an error.
func (pc *PantryController) GetPantry(c *gin.Context) {
	userID := c.GetUint("userID")

	entries, err := pc.Pantry.List(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pantry": entries})
}

type pantryPatch struct {
	Added   []services.PantryMutation `json:"addedIngredients"`
	Updated []services.PantryMutation `json:"updatedIngredients"`
	Deleted []string                  `json:"deletedIngredients"`
}

// UpdatePantry applies a batch of adds, updates and deletes. Items fail
// individually; the response reports overall success plus whatever went
// wrong per item.
func (pc *PantryController) UpdatePantry(c *gin.Context) {
	userID := c.GetUint("userID")

	var body pantryPatch
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := pc.Pantry.ApplyBatch(userID, body.Added, body.Updated, body.Deleted)
	if pc.Hub != nil {
		pc.Hub.BroadcastPantryChange(userID, result)
	}

	resp := gin.H{"message": "Successfully updated pantry.", "applied": result.Applied}
	if len(result.Failures) > 0 {
		resp["failures"] = result.Failures
	}
	c.JSON(http.StatusOK, resp)
}
