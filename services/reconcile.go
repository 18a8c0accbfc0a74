package services

import (
	"strings"

	"github.com/rdg11/recipe-app-backend/utils"
)

// ReconcileMissingIngredients cross-checks the generator's comma-separated
// "missing ingredients" claim against the pantry. A candidate is dropped when
// it and a pantry name contain each other as substrings in either direction:
// "chicken" vs "chicken breast" matches both ways, which tolerates plurals
// and loose phrasing at the cost of the occasional coincidental hit. That
// trade-off is deliberate and callers rely on it.
//
// Survivors keep their original casing and order and are rejoined with ", ".
func ReconcileMissingIngredients(missing string, pantryNames []string) string {
	if strings.TrimSpace(missing) == "" {
		return missing
	}

	lowered := make([]string, 0, len(pantryNames))
	for _, n := range pantryNames {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			lowered = append(lowered, n)
		}
	}

	var survivors []string
	for _, candidate := range strings.Split(missing, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		cl := strings.ToLower(candidate)
		present := false
		for _, name := range lowered {
			if strings.Contains(cl, name) || strings.Contains(name, cl) {
				present = true
				break
			}
		}
		if !present {
			survivors = append(survivors, candidate)
		}
	}
	return strings.Join(survivors, ", ")
}

// ReconcileRecipes rewrites every recipe's missing-ingredient list in place
// against the normalized pantry snapshot.
func ReconcileRecipes(recipes []GeneratedRecipe, entries []PantryEntry) {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if tok := utils.NormalizeIngredient(e.IngredientName); tok != "" {
			names = append(names, tok)
		}
	}
	for i := range recipes {
		recipes[i].MissingIngredients = ReconcileMissingIngredients(recipes[i].MissingIngredients, names)
	}
}
