package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Model represents a locally installed pose model.
type Model struct {
	ID        string
	Name      string
	Path      string
	InputSize int
	Active    bool
	CreatedAt time.Time
}

// ModelRepository provides CRUD operations for the model registry.
type ModelRepository struct {
	db *sql.DB
}

// Models returns the model repository for this store.
func (s *Store) Models() *ModelRepository {
	return &ModelRepository{db: s.db}
}

// Create inserts a new model into the registry.
func (r *ModelRepository) Create(m *Model) error {
	m.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO models (id, name, path, input_size, active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Path, m.InputSize, m.Active, m.CreatedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a model by its ID.
func (r *ModelRepository) GetByID(id string) (*Model, error) {
	m := &Model{}

	err := r.db.QueryRow(
		`SELECT id, name, path, input_size, active, created_at
		 FROM models WHERE id = ?`,
		id,
	).Scan(&m.ID, &m.Name, &m.Path, &m.InputSize, &m.Active, &m.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return m, nil
}

// List retrieves all registered models.
func (r *ModelRepository) List() ([]*Model, error) {
	rows, err := r.db.Query(
		`SELECT id, name, path, input_size, active, created_at
		 FROM models ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var models []*Model
	for rows.Next() {
		m := &Model{}
		if err := rows.Scan(&m.ID, &m.Name, &m.Path, &m.InputSize, &m.Active, &m.CreatedAt); err != nil {
			return nil, err
		}
		models = append(models, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return models, nil
}

// Active retrieves the currently active model.
func (r *ModelRepository) Active() (*Model, error) {
	m := &Model{}

	err := r.db.QueryRow(
		`SELECT id, name, path, input_size, active, created_at
		 FROM models WHERE active = 1`,
	).Scan(&m.ID, &m.Name, &m.Path, &m.InputSize, &m.Active, &m.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return m, nil
}

// SetActive marks the given model as active and deactivates every other.
// At most one model is active at any time.
func (r *ModelRepository) SetActive(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE models SET active = 0 WHERE active = 1`); err != nil {
		return err
	}

	result, err := tx.Exec(`UPDATE models SET active = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// Delete removes a model from the registry by its ID.
func (r *ModelRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM models WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
