package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintra/fintra/internal/account"
	"github.com/fintra/fintra/internal/apperror"
	"github.com/fintra/fintra/internal/category"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=ledger
type Repository interface {
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)

	// FindByAttributes returns a transaction with the exact (date, amount, type)
	// tuple, or NotFound. Used for duplicate detection during import.
	FindByAttributes(ctx context.Context, date time.Time, amount decimal.Decimal, txType Type) (*Transaction, error)

	Begin(ctx context.Context) (Tx, error)
}

// Tx is one storage transaction. Each ledger operation runs its reads and
// writes inside a single Tx so the balance read-modify-write cannot interleave
// with another writer on the same account.
type Tx interface {
	// LockAccount loads the account row and holds a write lock on it until
	// Commit or Rollback.
	LockAccount(ctx context.Context, id uuid.UUID) (*account.Account, error)
	AdjustBalance(ctx context.Context, accountID uuid.UUID, delta decimal.Decimal) error
	InsertTransaction(ctx context.Context, t *Transaction) error
	UpdateTransaction(ctx context.Context, t *Transaction) error
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	InsertBatch(ctx context.Context, txs []*Transaction) error
	Commit() error
	Rollback() error
}

// CategoryCatalog is the slice of the category service the ledger needs.
type CategoryCatalog interface {
	Get(ctx context.Context, id uuid.UUID) (*category.Category, error)
}

type Service struct {
	repo       Repository
	categories CategoryCatalog
}

func NewService(repo Repository, categories CategoryCatalog) *Service {
	return &Service{repo: repo, categories: categories}
}

type Params struct {
	Date       time.Time
	Amount     decimal.Decimal
	Type       Type
	CategoryID uuid.UUID
	AccountID  uuid.UUID
	Note       string
}

func validateParams(p Params) error {
	if !p.Type.Valid() {
		return apperror.InvalidInput("transaction type must be income or expense")
	}

	if !p.Amount.IsPositive() {
		return apperror.InvalidInput("amount must be greater than 0")
	}

	if len(p.Note) > 500 {
		return apperror.InvalidInput("note cannot exceed 500 characters")
	}

	return nil
}

// checkCategory resolves the category and enforces the polarity gate.
func (s *Service) checkCategory(ctx context.Context, id uuid.UUID, txType Type) (*category.Category, error) {
	cat, err := s.categories.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !cat.Polarity.Allows(string(txType)) {
		return nil, apperror.InvalidInput("category %q does not accept %s transactions", cat.Name, txType)
	}

	return cat, nil
}

// Create validates the referenced account and category, persists the
// transaction, and adjusts the account balance by the transaction's signed
// amount, all inside one storage transaction.
func (s *Service) Create(ctx context.Context, p Params) (*Transaction, error) {
	if err := validateParams(p); err != nil {
		return nil, err
	}

	if p.Date.IsZero() {
		p.Date = time.Now()
	}

	cat, err := s.checkCategory(ctx, p.CategoryID, p.Type)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	acct, err := tx.LockAccount(ctx, p.AccountID)
	if err != nil {
		return nil, err
	}

	t := &Transaction{
		Date:       p.Date,
		Amount:     p.Amount,
		Type:       p.Type,
		CategoryID: p.CategoryID,
		AccountID:  p.AccountID,
		Note:       p.Note,
	}

	if err := tx.InsertTransaction(ctx, t); err != nil {
		return nil, err
	}

	if err := tx.AdjustBalance(ctx, p.AccountID, Signed(p.Amount, p.Type)); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	t.CategoryName = cat.Name
	t.AccountName = acct.Name

	return t, nil
}

// Update replaces a transaction's fields, reversing its prior effect on the
// old account and applying the new effect on the new account.
//
// The reversal is committed before the new values are validated, matching the
// historical behavior: if the new category or account reference turns out to
// be invalid, the old account's balance has already been put back and the
// transaction record is left unchanged. Callers see InvalidInput and must
// retry or delete the transaction.
func (s *Service) Update(ctx context.Context, id uuid.UUID, p Params) (*Transaction, error) {
	old, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.reverseEffect(ctx, old); err != nil {
		return nil, err
	}

	if err := validateParams(p); err != nil {
		return nil, err
	}

	if p.Date.IsZero() {
		p.Date = old.Date
	}

	cat, err := s.checkCategory(ctx, p.CategoryID, p.Type)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindNotFound {
			return nil, apperror.InvalidInput("category not found")
		}

		return nil, err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	acct, err := tx.LockAccount(ctx, p.AccountID)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindNotFound {
			return nil, apperror.InvalidInput("account not found")
		}

		return nil, err
	}

	updated := &Transaction{
		ID:            id,
		Date:          p.Date,
		Amount:        p.Amount,
		Type:          p.Type,
		CategoryID:    p.CategoryID,
		AccountID:     p.AccountID,
		Note:          p.Note,
		ImportBatchID: old.ImportBatchID,
		CreatedAt:     old.CreatedAt,
	}

	if err := tx.UpdateTransaction(ctx, updated); err != nil {
		return nil, err
	}

	if err := tx.AdjustBalance(ctx, p.AccountID, Signed(p.Amount, p.Type)); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	updated.CategoryName = cat.Name
	updated.AccountName = acct.Name

	return updated, nil
}

// Delete reverses the transaction's effect on its account and removes the
// record, in one storage transaction.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	old, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.LockAccount(ctx, old.AccountID)
	switch {
	case err == nil:
		if err := tx.AdjustBalance(ctx, old.AccountID, Signed(old.Amount, old.Type).Neg()); err != nil {
			return err
		}
	case apperror.KindOf(err) == apperror.KindNotFound:
		// Account already gone; nothing to reverse.
	default:
		return err
	}

	if err := tx.DeleteTransaction(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

// reverseEffect undoes a transaction's contribution to its account's balance
// and commits. A missing account is tolerated: there is nothing to reverse.
func (s *Service) reverseEffect(ctx context.Context, t *Transaction) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.LockAccount(ctx, t.AccountID)
	switch {
	case err == nil:
	case apperror.KindOf(err) == apperror.KindNotFound:
		return nil
	default:
		return err
	}

	if err := tx.AdjustBalance(ctx, t.AccountID, Signed(t.Amount, t.Type).Neg()); err != nil {
		return err
	}

	return tx.Commit()
}

// BatchEntry is one transaction to be committed as part of an import batch.
// Category references have already been resolved to ids by the import
// pipeline.
type BatchEntry struct {
	Date       time.Time
	Amount     decimal.Decimal
	Type       Type
	CategoryID uuid.UUID
	Note       string
}

type BatchResult struct {
	BatchID      uuid.UUID
	Transactions []*Transaction
}

// ApplyBatch inserts all entries tagged with a fresh batch id and adjusts the
// target account's balance by the batch's net effect in a single step.
// Every entry is validated against its category before anything is persisted;
// one bad entry rejects the whole batch.
func (s *Service) ApplyBatch(ctx context.Context, entries []BatchEntry, accountID uuid.UUID) (*BatchResult, error) {
	if len(entries) == 0 {
		return nil, apperror.InvalidInput("no transactions to import")
	}

	names := make([]string, len(entries))

	var offenders []string

	for i, e := range entries {
		if !e.Type.Valid() || !e.Amount.IsPositive() {
			offenders = append(offenders, offenderLabel(i, e))
			continue
		}

		cat, err := s.categories.Get(ctx, e.CategoryID)
		if err != nil {
			if apperror.KindOf(err) == apperror.KindNotFound {
				offenders = append(offenders, offenderLabel(i, e))
				continue
			}

			return nil, err
		}

		if !cat.Polarity.Allows(string(e.Type)) {
			offenders = append(offenders, offenderLabel(i, e))
			continue
		}

		names[i] = cat.Name
	}

	if len(offenders) > 0 {
		return nil, apperror.InvalidInput("batch rejected, invalid entries: %s", strings.Join(offenders, "; "))
	}

	batchID := uuid.New()
	txs := make([]*Transaction, len(entries))
	net := decimal.Zero

	for i, e := range entries {
		txs[i] = &Transaction{
			Date:          e.Date,
			Amount:        e.Amount,
			Type:          e.Type,
			CategoryID:    e.CategoryID,
			CategoryName:  names[i],
			AccountID:     accountID,
			Note:          e.Note,
			ImportBatchID: &batchID,
		}
		net = net.Add(Signed(e.Amount, e.Type))
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	acct, err := tx.LockAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if err := tx.InsertBatch(ctx, txs); err != nil {
		return nil, err
	}

	if err := tx.AdjustBalance(ctx, accountID, net); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	for _, t := range txs {
		t.AccountName = acct.Name
	}

	return &BatchResult{BatchID: batchID, Transactions: txs}, nil
}

// offenderLabel identifies a rejected batch entry even when its note is
// empty: the 1-based position plus date and amount.
func offenderLabel(i int, e BatchEntry) string {
	label := fmt.Sprintf("entry %d (%s, %s)", i+1, e.Date.Format(time.DateOnly), e.Amount)

	if e.Note != "" {
		label += ": " + e.Note
	}

	return label
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}
