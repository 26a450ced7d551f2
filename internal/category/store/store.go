package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/fintra/fintra/internal/apperror"
	"github.com/fintra/fintra/internal/category"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectCategoryColumns = `id, name, type, created_at, updated_at`

func scanCategory(s scanner) (*category.Category, error) {
	var c category.Category

	var polarity string

	if err := s.Scan(&c.ID, &c.Name, &polarity, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}

	c.Polarity = category.Polarity(polarity)

	return &c, nil
}

func (s *Store) CreateCategory(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (name, type, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, c.Name, c.Polarity).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}

func (s *Store) GetCategory(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	query := `SELECT ` + selectCategoryColumns + ` FROM categories WHERE id = $1`

	c, err := scanCategory(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("category not found")
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	return c, nil
}

// GetCategoryByName matches by exact name. When several categories share a
// name the most recently created one wins.
func (s *Store) GetCategoryByName(ctx context.Context, name string) (*category.Category, error) {
	query := `SELECT ` + selectCategoryColumns + `
		FROM categories
		WHERE name = $1
		ORDER BY created_at DESC
		LIMIT 1`

	c, err := scanCategory(s.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("category not found: %s", name)
		}

		return nil, fmt.Errorf("getting category by name: %w", err)
	}

	return c, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]*category.Category, error) {
	query := `SELECT ` + selectCategoryColumns + ` FROM categories ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*category.Category

	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (s *Store) UpdateCategory(ctx context.Context, c *category.Category) error {
	query := `
		UPDATE categories
		SET name = $1, type = $2, updated_at = NOW()
		WHERE id = $3
	`

	res, err := s.db.ExecContext(ctx, query, c.Name, c.Polarity, c.ID)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperror.NotFound("category not found")
	}

	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperror.NotFound("category not found")
	}

	return nil
}

func (s *Store) CountCategories(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting categories: %w", err)
	}

	return count, nil
}
