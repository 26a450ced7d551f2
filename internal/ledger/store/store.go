package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintra/fintra/internal/account"
	"github.com/fintra/fintra/internal/apperror"
	"github.com/fintra/fintra/internal/ledger"
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

const selectTransactionColumns = `
	t.id, t.date, t.amount, t.type, t.category_id, c.name AS category_name,
	t.account_id, a.name AS account_name, t.note, t.import_batch_id,
	t.created_at, t.updated_at
`

const transactionJoins = `
	FROM transactions t
	LEFT JOIN categories c ON t.category_id = c.id
	LEFT JOIN accounts a ON t.account_id = a.id
`

func scanTransaction(s scanner) (*ledger.Transaction, error) {
	var t ledger.Transaction

	var typeStr string

	var categoryName, accountName, note sql.NullString

	if err := s.Scan(
		&t.ID, &t.Date, &t.Amount, &typeStr, &t.CategoryID, &categoryName,
		&t.AccountID, &accountName, &note, &t.ImportBatchID,
		&t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}

	t.Type = ledger.Type(typeStr)
	t.CategoryName = categoryName.String
	t.AccountName = accountName.String
	t.Note = note.String

	return &t, nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + transactionJoins + ` WHERE t.id = $1`

	t, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("transaction not found")
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return t, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + transactionJoins + ` WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.AccountID != nil {
		query += fmt.Sprintf(" AND t.account_id = $%d", argIdx)

		args = append(args, *filter.AccountID)
		argIdx++
	}

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND t.category_id = $%d", argIdx)

		args = append(args, *filter.CategoryID)
		argIdx++
	}

	if filter.Type != nil {
		query += fmt.Sprintf(" AND t.type = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND t.date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND t.date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY t.date DESC, t.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*ledger.Transaction

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, t)
	}

	return txs, rows.Err()
}

func (s *Store) FindByAttributes(ctx context.Context, date time.Time, amount decimal.Decimal, txType ledger.Type) (*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + transactionJoins + `
		WHERE t.date = $1 AND t.amount = $2 AND t.type = $3
		LIMIT 1`

	t, err := scanTransaction(s.db.QueryRowContext(ctx, query, date, amount, txType))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("transaction not found")
		}

		return nil, fmt.Errorf("finding transaction by attributes: %w", err)
	}

	return t, nil
}

func (s *Store) CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var count int64

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE account_id = $1`, accountID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting transactions by account: %w", err)
	}

	return count, nil
}

func (s *Store) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE category_id = $1`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting transactions by category: %w", err)
	}

	return count, nil
}

type ledgerTx struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (ledger.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning ledger tx: %w", err)
	}

	return &ledgerTx{tx: tx}, nil
}

func (l *ledgerTx) Commit() error   { return l.tx.Commit() }
func (l *ledgerTx) Rollback() error { return l.tx.Rollback() }

// LockAccount takes a row lock on the account so the balance
// read-modify-write cannot race with another writer.
func (l *ledgerTx) LockAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	query := `
		SELECT id, name, balance, description, created_at, updated_at
		FROM accounts
		WHERE id = $1
		FOR UPDATE
	`

	var a account.Account

	var desc sql.NullString

	err := l.tx.QueryRowContext(ctx, query, id).
		Scan(&a.ID, &a.Name, &a.Balance, &desc, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("account not found")
		}

		return nil, fmt.Errorf("locking account: %w", err)
	}

	a.Description = desc.String

	return &a, nil
}

func (l *ledgerTx) AdjustBalance(ctx context.Context, accountID uuid.UUID, delta decimal.Decimal) error {
	query := `
		UPDATE accounts
		SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2
	`

	if _, err := l.tx.ExecContext(ctx, query, delta, accountID); err != nil {
		return fmt.Errorf("adjusting balance: %w", err)
	}

	return nil
}

const insertTransactionQuery = `
	INSERT INTO transactions (date, amount, type, category_id, account_id, note, import_batch_id, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	RETURNING id, created_at
`

func (l *ledgerTx) InsertTransaction(ctx context.Context, t *ledger.Transaction) error {
	err := l.tx.QueryRowContext(ctx, insertTransactionQuery,
		t.Date, t.Amount, t.Type, t.CategoryID, t.AccountID, t.Note, t.ImportBatchID,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}

	return nil
}

func (l *ledgerTx) UpdateTransaction(ctx context.Context, t *ledger.Transaction) error {
	query := `
		UPDATE transactions
		SET date = $1, amount = $2, type = $3, category_id = $4, account_id = $5, note = $6, updated_at = NOW()
		WHERE id = $7
	`

	res, err := l.tx.ExecContext(ctx, query,
		t.Date, t.Amount, t.Type, t.CategoryID, t.AccountID, t.Note, t.ID)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperror.NotFound("transaction not found")
	}

	return nil
}

func (l *ledgerTx) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	if _, err := l.tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return nil
}

func (l *ledgerTx) InsertBatch(ctx context.Context, txs []*ledger.Transaction) error {
	for _, t := range txs {
		err := l.tx.QueryRowContext(ctx, insertTransactionQuery,
			t.Date, t.Amount, t.Type, t.CategoryID, t.AccountID, t.Note, t.ImportBatchID,
		).Scan(&t.ID, &t.CreatedAt)
		if err != nil {
			return fmt.Errorf("inserting batch transaction: %w", err)
		}
	}

	return nil
}
