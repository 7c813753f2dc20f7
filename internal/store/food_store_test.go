package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jason910315/gentle-gains/internal/db"
	"github.com/Jason910315/gentle-gains/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestFoodStoreInsert(t *testing.T) {
	d := openTestDB(t)
	foods := NewFoodStore(d)
	ctx := context.Background()

	result := &domain.FoodAnalysisResult{
		Calories:     650,
		Protein:      35,
		Fat:          22,
		Carbs:        70,
		Score:        4.2,
		CoachComment: "Solid protein, watch the fried coating.",
		Reasoning:    "Fried chicken leg with rice, roughly 200 g rice and 150 g chicken.",
	}

	rec, err := foods.Insert(ctx, result, "aGVsbG8=", "Chicken rice box", "lunch")
	require.NoError(t, err)
	assert.NotZero(t, rec.ID)
	assert.Equal(t, "Chicken rice box", rec.FoodName)
	assert.Equal(t, "aGVsbG8=", rec.ImageURL)
	assert.Equal(t, "lunch", rec.MealType)
	assert.Equal(t, 650, rec.Calories)
	assert.Equal(t, 35, rec.Protein)
	assert.Equal(t, 22, rec.Fat)
	assert.Equal(t, 70, rec.Carbs)
	assert.InDelta(t, 4.2, rec.Score, 0.001)
	assert.Equal(t, "Solid protein, watch the fried coating.", rec.CoachComment)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestFoodStoreGetByID_NotFound(t *testing.T) {
	d := openTestDB(t)
	foods := NewFoodStore(d)

	rec, err := foods.GetByID(context.Background(), 99999)
	require.NoError(t, err)
	assert.Nil(t, rec)
}
