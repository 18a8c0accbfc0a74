package services

import (
	"testing"

	"github.com/rdg11/recipe-app-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestUpsertCreatesIngredientOnFirstReference(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	svc := NewPantryService(db)

	require.NoError(t, svc.Upsert(user.ID, "Eggs", floatPtr(12), "count"))

	var ing models.Ingredient
	require.NoError(t, db.Where("name = ?", "Eggs").First(&ing).Error)
	assert.False(t, ing.ContainsNuts)
	assert.False(t, ing.ContainsGluten)
	assert.False(t, ing.ContainsMeat)
}

func TestUpsertIsIdempotentPerIngredient(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	svc := NewPantryService(db)

	require.NoError(t, svc.Upsert(user.ID, "Eggs", floatPtr(12), "count"))
	require.NoError(t, svc.Upsert(user.ID, "Eggs", floatPtr(6), "count"))

	var items []models.PantryItem
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&items).Error)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Quantity)
	assert.Equal(t, 6.0, *items[0].Quantity)
}

func TestUpsertStoresUnspecifiedQuantityAsNull(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	svc := NewPantryService(db)

	require.NoError(t, svc.Upsert(user.ID, "Salt", nil, ""))
	// a later update can also clear a previously set quantity
	require.NoError(t, svc.Upsert(user.ID, "Salt", floatPtr(1), "pinch"))
	require.NoError(t, svc.Upsert(user.ID, "Salt", nil, ""))

	var item models.PantryItem
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&item).Error)
	assert.Nil(t, item.Quantity)
	assert.Equal(t, "", item.Unit)
}

func TestUpsertRejectsEmptyName(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	svc := NewPantryService(db)

	err := svc.Upsert(user.ID, "  ", nil, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListJoinsDisplayNameFromCatalog(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	svc := NewPantryService(db)

	require.NoError(t, svc.Upsert(user.ID, "Brown Rice", floatPtr(500), "g"))

	// correct the catalog name; the pantry list must pick it up
	require.NoError(t, db.Model(&models.Ingredient{}).
		Where("name = ?", "Brown Rice").
		Update("name", "Brown rice").Error)

	entries, err := svc.List(user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Brown rice", entries[0].IngredientName)
}

func TestListEmptyPantryIsEmptyNotError(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	svc := NewPantryService(db)

	entries, err := svc.List(user.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRemoveIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	svc := NewPantryService(db)

	// unknown ingredient entirely
	require.NoError(t, svc.Remove(user.ID, "Dragonfruit"))

	require.NoError(t, svc.Upsert(user.ID, "Eggs", floatPtr(12), "count"))
	require.NoError(t, svc.Remove(user.ID, "Eggs"))
	require.NoError(t, svc.Remove(user.ID, "Eggs"))

	var count int64
	require.NoError(t, db.Model(&models.PantryItem{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestApplyBatchPartialFailure(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	svc := NewPantryService(db)

	added := []PantryMutation{
		{Name: "Flour", Quantity: "2", Unit: "cups"},
		{Name: "Sugar", Quantity: "lots", Unit: "g"}, // malformed quantity
		{Name: "Butter", Quantity: "250", Unit: "g"},
	}

	res := svc.ApplyBatch(user.ID, added, nil, nil)

	assert.Equal(t, 2, res.Applied)
	require.Len(t, res.Failures, 1)
	assert.Contains(t, res.Failures[0], "Sugar")

	// items 1 and 3 stayed applied
	entries, err := svc.List(user.ID)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.IngredientName)
	}
	assert.ElementsMatch(t, []string{"Flour", "Butter"}, names)
}

func TestApplyBatchHandlesAllThreeLists(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	svc := NewPantryService(db)

	require.NoError(t, svc.Upsert(user.ID, "Milk", floatPtr(1), "l"))
	require.NoError(t, svc.Upsert(user.ID, "Eggs", floatPtr(12), "count"))

	res := svc.ApplyBatch(user.ID,
		[]PantryMutation{{Name: "Flour", Quantity: "2", Unit: "cups"}},
		[]PantryMutation{{Name: "Milk", Quantity: "2", Unit: "l"}},
		[]string{"Eggs"},
	)

	assert.Equal(t, 3, res.Applied)
	assert.Empty(t, res.Failures)

	entries, err := svc.List(user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		if e.IngredientName == "Milk" {
			require.NotNil(t, e.Quantity)
			assert.Equal(t, 2.0, *e.Quantity)
		}
	}
}
