package storage

import (
	"context"
	"fmt"

	"github.com/Varun5711/bookmarkd/internal/models"
	"github.com/jackc/pgx/v5"
)

const carColumns = `id, attributes, created_at, updated_at`

func scanCar(row pgx.Row) (*models.Car, error) {
	var c models.Car
	if err := row.Scan(&c.ID, &c.Attributes, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if c.Attributes == nil {
		c.Attributes = map[string]interface{}{}
	}
	return &c, nil
}

func (s *PostgresStorage) CreateCar(ctx context.Context, attrs map[string]interface{}) (*models.Car, error) {
	query := `INSERT INTO cars (attributes) VALUES ($1) RETURNING ` + carColumns

	c, err := scanCar(s.db.Write().QueryRow(ctx, query, attrs))
	if err != nil {
		return nil, fmt.Errorf("failed to create car: %w", err)
	}

	return c, nil
}

// ListCars returns one page ordered by id together with the total row count.
// Both run in one read-only transaction so the count matches the page.
func (s *PostgresStorage) ListCars(ctx context.Context, skip, limit int) ([]models.Car, int64, error) {
	if skip < 0 || limit < 1 {
		return nil, 0, fmt.Errorf("%w: skip=%d limit=%d", ErrInvalidWindow, skip, limit)
	}

	tx, err := s.db.Read().BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly, IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var total int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM cars`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count cars: %w", err)
	}

	rows, err := tx.Query(ctx, `SELECT `+carColumns+` FROM cars ORDER BY id LIMIT $1 OFFSET $2`, limit, skip)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cars: %w", err)
	}
	defer rows.Close()

	cars := make([]models.Car, 0, limit)
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan car: %w", err)
		}
		cars = append(cars, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating cars: %w", err)
	}

	return cars, total, nil
}

// GetCar reads from the primary so a car is visible as soon as it is created.
// Hits are cached above the store, so replicas only carry the catalogue pages.
func (s *PostgresStorage) GetCar(ctx context.Context, id int64) (*models.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`

	c, err := scanCar(s.db.Write().QueryRow(ctx, query, id))
	if isNoRows(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get car: %w", err)
	}

	return c, nil
}
