package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Jason910315/gentle-gains/internal/domain"
)

type FoodStore struct {
	db *sql.DB
}

func NewFoodStore(db *sql.DB) *FoodStore {
	return &FoodStore{db: db}
}

// Insert persists one analysis verdict together with the user-supplied food
// name, image payload, and meal type, and returns the stored row.
func (s *FoodStore) Insert(ctx context.Context, result *domain.FoodAnalysisResult, imageBase64, foodName, mealType string) (*domain.FoodLogRecord, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO food_logs (food_name, image_url, meal_type, calories, protein, fat, carbs, score, coach_comment)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, foodName, imageBase64, mealType, result.Calories, result.Protein, result.Fat, result.Carbs, result.Score, result.CoachComment)
	if err != nil {
		return nil, fmt.Errorf("failed to insert food log: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *FoodStore) GetByID(ctx context.Context, id int64) (*domain.FoodLogRecord, error) {
	rec := &domain.FoodLogRecord{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, food_name, image_url, meal_type, calories, protein, fat, carbs, score, coach_comment, created_at
		FROM food_logs WHERE id = ?
	`, id).Scan(&rec.ID, &rec.FoodName, &rec.ImageURL, &rec.MealType, &rec.Calories, &rec.Protein,
		&rec.Fat, &rec.Carbs, &rec.Score, &rec.CoachComment, &rec.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get food log: %w", err)
	}

	return rec, nil
}
