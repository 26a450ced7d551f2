package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/fintra/fintra/internal/account"
	"github.com/fintra/fintra/internal/apperror"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectAccountColumns = `id, name, balance, description, created_at, updated_at`

func scanAccount(s scanner) (*account.Account, error) {
	var a account.Account

	var desc sql.NullString

	if err := s.Scan(&a.ID, &a.Name, &a.Balance, &desc, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}

	a.Description = desc.String

	return &a, nil
}

func (s *Store) CreateAccount(ctx context.Context, a *account.Account) error {
	query := `
		INSERT INTO accounts (name, balance, description, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, a.Name, a.Balance, a.Description).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

func (s *Store) GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts WHERE id = $1`

	a, err := scanAccount(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("account not found")
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return a, nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		accounts = append(accounts, a)
	}

	return accounts, rows.Err()
}

func (s *Store) UpdateAccount(ctx context.Context, a *account.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, balance = $2, description = $3, updated_at = NOW()
		WHERE id = $4
	`

	res, err := s.db.ExecContext(ctx, query, a.Name, a.Balance, a.Description, a.ID)
	if err != nil {
		return fmt.Errorf("updating account: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperror.NotFound("account not found")
	}

	return nil
}

func (s *Store) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperror.NotFound("account not found")
	}

	return nil
}
