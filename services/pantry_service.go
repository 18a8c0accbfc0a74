package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/rdg11/recipe-app-backend/models"

	"gorm.io/gorm"
)

type PantryService struct {
	db *gorm.DB
}

func NewPantryService(db *gorm.DB) *PantryService {
	return &PantryService{db: db}
}

// PantryEntry is what callers see: the display name always comes from the
// ingredient table, never from a stored copy.
type PantryEntry struct {
	IngredientName string   `json:"ingredientName"`
	Quantity       *float64 `json:"quantity"`
	Unit           string   `json:"unit"`
}

// PantryMutation is one add/update item in a batch request. Quantity stays a
// string on the wire; empty means "unspecified" and is stored as NULL.
type PantryMutation struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// BatchResult reports a batch apply. Individual failures are collected, not
// fatal: items that worked stay applied.
type BatchResult struct {
	Applied  int      `json:"applied"`
	Failures []string `json:"failures,omitempty"`
}

func (s *PantryService) List(userID uint) ([]PantryEntry, error) {
	var items []models.PantryItem
	err := s.db.
		Preload("Ingredient").
		Where("user_id = ?", userID).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	entries := make([]PantryEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, PantryEntry{
			IngredientName: it.Ingredient.Name,
			Quantity:       it.Quantity,
			Unit:           it.Unit,
		})
	}
	return entries, nil
}

// Upsert inserts or updates the (user, ingredient) row, creating the
// ingredient on first reference with all dietary flags false.
func (s *PantryService) Upsert(userID uint, name string, quantity *float64, unit string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: ingredient name is required", ErrValidation)
	}
	if quantity != nil && *quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		ing, err := s.lookupOrCreateIngredient(tx, name)
		if err != nil {
			return err
		}

		var item models.PantryItem
		err = tx.Where("user_id = ? AND ingredient_id = ?", userID, ing.ID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			item = models.PantryItem{
				UserID:       userID,
				IngredientID: ing.ID,
				Quantity:     quantity,
				Unit:         unit,
			}
			return tx.Create(&item).Error
		}
		if err != nil {
			return err
		}

		// Select forces NULL writes when quantity goes back to unspecified
		return tx.Model(&models.PantryItem{}).
			Where("user_id = ? AND ingredient_id = ?", userID, ing.ID).
			Select("quantity", "unit").
			Updates(map[string]interface{}{"quantity": quantity, "unit": unit}).Error
	})
}

// Remove deletes the entry if present. Removing something the user never
// had is fine.
func (s *PantryService) Remove(userID uint, name string) error {
	var ing models.Ingredient
	err := s.db.Where("name = ?", name).First(&ing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.db.
		Where("user_id = ? AND ingredient_id = ?", userID, ing.ID).
		Delete(&models.PantryItem{}).Error
}

// ApplyBatch walks the add/update/delete sub-lists in order. Every item gets
// its own transaction scope: one bad item rolls back alone and the rest keep
// going. That partial-failure behavior is the documented contract.
func (s *PantryService) ApplyBatch(userID uint, added, updated []PantryMutation, deleted []string) BatchResult {
	res := BatchResult{}

	apply := func(verb string, m PantryMutation) {
		qty, err := parseQuantity(m.Quantity)
		if err == nil {
			err = s.Upsert(userID, m.Name, qty, m.Unit)
		}
		if err != nil {
			log.Printf("pantry batch: %s %q failed for user %d: %v", verb, m.Name, userID, err)
			res.Failures = append(res.Failures, fmt.Sprintf("failed to %s ingredient %q: %v", verb, m.Name, err))
			return
		}
		res.Applied++
	}

	for _, m := range added {
		apply("add", m)
	}
	for _, m := range updated {
		apply("update", m)
	}
	for _, name := range deleted {
		if err := s.Remove(userID, name); err != nil {
			log.Printf("pantry batch: delete %q failed for user %d: %v", name, userID, err)
			res.Failures = append(res.Failures, fmt.Sprintf("failed to delete ingredient %q: %v", name, err))
			continue
		}
		res.Applied++
	}
	return res
}

// lookupOrCreateIngredient resolves a name to a catalog row, creating it on
// first use. A losing racer on the unique index re-reads the winner's row.
func (s *PantryService) lookupOrCreateIngredient(tx *gorm.DB, name string) (*models.Ingredient, error) {
	var ing models.Ingredient
	err := tx.Where("name = ?", name).First(&ing).Error
	if err == nil {
		return &ing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ing = models.Ingredient{Name: name}
	if err := tx.Create(&ing).Error; err != nil {
		// concurrent insert of the same name
		if err2 := tx.Where("name = ?", name).First(&ing).Error; err2 == nil {
			return &ing, nil
		}
		return nil, err
	}
	return &ing, nil
}

func parseQuantity(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	q, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: quantity %q is not a number", ErrValidation, raw)
	}
	if q < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	return &q, nil
}
