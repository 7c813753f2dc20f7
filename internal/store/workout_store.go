package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Jason910315/gentle-gains/internal/domain"
)

type WorkoutStore struct {
	db *sql.DB
}

func NewWorkoutStore(db *sql.DB) *WorkoutStore {
	return &WorkoutStore{db: db}
}

func (s *WorkoutStore) Insert(ctx context.Context, req domain.WorkoutLogRequest) (*domain.WorkoutLogRecord, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO workout_logs (exercise_name, body_part, weight, sets, reps)
		VALUES (?, ?, ?, ?, ?)
	`, req.ExerciseName, req.BodyPart, req.Weight, req.Sets, req.Reps)
	if err != nil {
		return nil, fmt.Errorf("failed to insert workout log: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *WorkoutStore) GetByID(ctx context.Context, id int64) (*domain.WorkoutLogRecord, error) {
	rec := &domain.WorkoutLogRecord{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, exercise_name, body_part, weight, sets, reps, created_at
		FROM workout_logs WHERE id = ?
	`, id).Scan(&rec.ID, &rec.ExerciseName, &rec.BodyPart, &rec.Weight, &rec.Sets, &rec.Reps, &rec.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workout log: %w", err)
	}

	return rec, nil
}
