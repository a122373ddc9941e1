package repository

import (
	"context"
	"database/sql"

	"taskboard/internal/model"
)

// LabelRepository manages the shared label namespace.
type LabelRepository struct {
	db *sql.DB
}

func NewLabelRepository(db *sql.DB) *LabelRepository {
	return &LabelRepository{db: db}
}

// List retrieves all known labels ordered by name.
func (r *LabelRepository) List(ctx context.Context) ([]model.Label, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT name, color FROM labels ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := []model.Label{}
	for rows.Next() {
		var l model.Label
		if err := rows.Scan(&l.Name, &l.Color); err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

// GetByName retrieves a label by its name.
func (r *LabelRepository) GetByName(ctx context.Context, name string) (*model.Label, error) {
	var l model.Label
	err := r.db.QueryRowContext(ctx, "SELECT name, color FROM labels WHERE name = ?", name).Scan(&l.Name, &l.Color)
	if err == sql.ErrNoRows {
		return nil, ErrLabelNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// GetOrCreate returns the existing label for the name, keeping its
// original color, or registers the new name with the given color.
func (r *LabelRepository) GetOrCreate(ctx context.Context, label model.Label) (model.Label, error) {
	existing, err := r.GetByName(ctx, label.Name)
	if err == nil {
		return *existing, nil
	}
	if err != ErrLabelNotFound {
		return model.Label{}, err
	}
	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO labels (name, color) VALUES (?, ?) ON CONFLICT(name) DO NOTHING",
		label.Name, label.Color,
	); err != nil {
		return model.Label{}, err
	}
	// Re-read in case a concurrent insert won the conflict.
	created, err := r.GetByName(ctx, label.Name)
	if err != nil {
		return model.Label{}, err
	}
	return *created, nil
}
