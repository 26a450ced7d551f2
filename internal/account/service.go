package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintra/fintra/internal/apperror"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=account
type Repository interface {
	CreateAccount(ctx context.Context, a *Account) error
	GetAccount(ctx context.Context, id uuid.UUID) (*Account, error)
	ListAccounts(ctx context.Context) ([]*Account, error)
	UpdateAccount(ctx context.Context, a *Account) error
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}

// ReferenceCounter reports how many transactions still reference an account.
// Satisfied by the ledger store.
type ReferenceCounter interface {
	CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
}

type Service struct {
	repo Repository
	refs ReferenceCounter
}

func NewService(repo Repository, refs ReferenceCounter) *Service {
	return &Service{repo: repo, refs: refs}
}

type Params struct {
	Name        string
	Balance     decimal.Decimal
	Description string
}

func validateParams(p Params) error {
	if len(p.Name) < 2 || len(p.Name) > 50 {
		return apperror.InvalidInput("account name must be between 2 and 50 characters")
	}

	if len(p.Description) > 200 {
		return apperror.InvalidInput("account description cannot exceed 200 characters")
	}

	return nil
}

func (s *Service) Create(ctx context.Context, p Params) (*Account, error) {
	if err := validateParams(p); err != nil {
		return nil, err
	}

	a := &Account{
		Name:        p.Name,
		Balance:     p.Balance,
		Description: p.Description,
	}
	if err := s.repo.CreateAccount(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.repo.GetAccount(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Account, error) {
	return s.repo.ListAccounts(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, p Params) (*Account, error) {
	if err := validateParams(p); err != nil {
		return nil, err
	}

	a, err := s.repo.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	a.Name = p.Name
	a.Balance = p.Balance
	a.Description = p.Description

	if err := s.repo.UpdateAccount(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// Delete removes an account. Accounts that still have transactions posted
// against them cannot be deleted.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	count, err := s.refs.CountByAccount(ctx, id)
	if err != nil {
		return err
	}

	if count > 0 {
		return apperror.Conflict("cannot delete account with existing transactions")
	}

	return s.repo.DeleteAccount(ctx, id)
}

// TotalBalance sums the balances of all accounts.
func (s *Service) TotalBalance(ctx context.Context) (decimal.Decimal, error) {
	accounts, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}

	return total, nil
}
