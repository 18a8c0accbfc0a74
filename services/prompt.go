package services

import (
	"fmt"
	"strings"

	"github.com/rdg11/recipe-app-backend/utils"
)

// RecipePrompt pairs the rendered user prompt with the fixed system
// instruction the generator is called with.
type RecipePrompt struct {
	System string
	User   string
}

const generationSystemInstruction = "You are a helpful cooking assistant. You suggest recipes based on " +
	"available ingredients and return your response in JSON format. Assume salt and pepper are generally " +
	"available. Always include a 'recipes' key in your response containing an array of recipe objects."

// BuildRecipePrompt renders a pantry snapshot and the user's preference text
// into the generation request. Pure text assembly, nothing can fail here.
//
// Two views of the pantry go in: the human-readable one with quantities, and
// the normalized token list so the generator does not treat "Flour (2 cups)"
// and "flour" as different things.
func BuildRecipePrompt(preference string, entries []PantryEntry) RecipePrompt {
	display := make([]string, 0, len(entries))
	normalized := make([]string, 0, len(entries))
	for _, e := range entries {
		display = append(display, formatEntry(e))
		if tok := utils.NormalizeIngredient(e.IngredientName); tok != "" {
			normalized = append(normalized, tok)
		}
	}

	var sb strings.Builder
	sb.WriteString("I have the following ingredients:\n")
	sb.WriteString(strings.Join(display, ", "))
	sb.WriteString("\n\nFor matching purposes, treat my ingredient list as exactly: ")
	sb.WriteString(strings.Join(normalized, ", "))
	sb.WriteString("\n\n")
	if strings.TrimSpace(preference) != "" {
		sb.WriteString(preference)
		sb.WriteString("\n\n")
	}
	sb.WriteString(`Please provide three recipes:
1. The name of each recipe (recipeName)
2. A brief description (description)
3. Step-by-step cooking instructions (steps as an array)
4. Which of my ingredients will be used (ingredients as a comma-separated string)
5. Any essential ingredients I might be missing (missingIngredients as a comma-separated string) - list only ingredients that are genuinely absent from my ingredient list above
6. Estimated preparation time (prepTime)
7. Allergy and dietary flags (allergyFlags object with containsVegetarian, containsGluten, containsNuts, and containsMeat as booleans; a dish containing meat is not vegetarian)

Format your response as a JSON object with a 'recipes' key containing an array of recipe objects with the structure shown above.`)

	return RecipePrompt{
		System: generationSystemInstruction,
		User:   sb.String(),
	}
}

func formatEntry(e PantryEntry) string {
	if e.Quantity == nil {
		return e.IngredientName
	}
	if e.Unit == "" {
		return fmt.Sprintf("%s (%g)", e.IngredientName, *e.Quantity)
	}
	return fmt.Sprintf("%s (%g %s)", e.IngredientName, *e.Quantity, e.Unit)
}
