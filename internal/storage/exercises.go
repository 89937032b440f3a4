package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/meltforce/ironcycle/internal/models"
)

// InsertExercise inserts an exercise. Returns true if inserted, false if an
// exercise with that name already exists.
func (db *DB) InsertExercise(ctx context.Context, ex models.Exercise) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO exercises (id, name) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		ex.ID, ex.Name)
	if err != nil {
		return false, fmt.Errorf("inserting exercise: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetExercise retrieves a single exercise by ID.
func (db *DB) GetExercise(ctx context.Context, id uuid.UUID) (*models.Exercise, error) {
	var ex models.Exercise
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name FROM exercises WHERE id = $1`, id).
		Scan(&ex.ID, &ex.Name)
	if err != nil {
		return nil, notFound(fmt.Errorf("querying exercise: %w", err), "exercise")
	}
	return &ex, nil
}

// ListExercises retrieves all exercises ordered by name.
func (db *DB) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := db.Pool.Query(ctx, `SELECT id, name FROM exercises ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		var ex models.Exercise
		if err := rows.Scan(&ex.ID, &ex.Name); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, ex)
	}
	return result, rows.Err()
}
