package category

import (
	"context"

	"github.com/google/uuid"

	"github.com/fintra/fintra/internal/apperror"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=category
type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	GetCategoryByName(ctx context.Context, name string) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	CountCategories(ctx context.Context) (int64, error)
}

// ReferenceCounter reports how many transactions still reference a category.
// Satisfied by the ledger store.
type ReferenceCounter interface {
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}

type Service struct {
	repo Repository
	refs ReferenceCounter
}

func NewService(repo Repository, refs ReferenceCounter) *Service {
	return &Service{repo: repo, refs: refs}
}

type Params struct {
	Name     string
	Polarity Polarity
}

func validateParams(p Params) error {
	if len(p.Name) < 2 || len(p.Name) > 50 {
		return apperror.InvalidInput("category name must be between 2 and 50 characters")
	}

	if !p.Polarity.Valid() {
		return apperror.InvalidInput("category type must be income, expense, or both")
	}

	return nil
}

func (s *Service) Create(ctx context.Context, p Params) (*Category, error) {
	if p.Polarity == "" {
		p.Polarity = PolarityBoth
	}

	if err := validateParams(p); err != nil {
		return nil, err
	}

	c := &Category{Name: p.Name, Polarity: p.Polarity}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, p Params) (*Category, error) {
	if err := validateParams(p); err != nil {
		return nil, err
	}

	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Name = p.Name
	c.Polarity = p.Polarity

	if err := s.repo.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Delete removes a category. Categories still referenced by transactions
// cannot be deleted; the transactions must be reassigned first.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	count, err := s.refs.CountByCategory(ctx, id)
	if err != nil {
		return err
	}

	if count > 0 {
		return apperror.Conflict("cannot delete category with existing transactions, reassign them first")
	}

	return s.repo.DeleteCategory(ctx, id)
}

// ResolveName looks a category up by its human-readable name. Categories are
// canonically identified by id; name resolution is the one explicit exception,
// used when committing an import where rows carry category names.
func (s *Service) ResolveName(ctx context.Context, name string) (*Category, error) {
	return s.repo.GetCategoryByName(ctx, name)
}

var defaults = []Category{
	{Name: "Food", Polarity: PolarityExpense},
	{Name: "Rent", Polarity: PolarityExpense},
	{Name: "Travel", Polarity: PolarityExpense},
	{Name: "Shopping", Polarity: PolarityExpense},
	{Name: "Bills", Polarity: PolarityExpense},
	{Name: "Salary", Polarity: PolarityIncome},
	{Name: "Freelance", Polarity: PolarityIncome},
	{Name: "Other Income", Polarity: PolarityIncome},
	{Name: "Others", Polarity: PolarityBoth},
}

// SeedDefaults creates the starter category set. It is a no-op once any
// category exists.
func (s *Service) SeedDefaults(ctx context.Context) (bool, error) {
	count, err := s.repo.CountCategories(ctx)
	if err != nil {
		return false, err
	}

	if count > 0 {
		return false, nil
	}

	for _, d := range defaults {
		c := d
		if err := s.repo.CreateCategory(ctx, &c); err != nil {
			return false, err
		}
	}

	return true, nil
}
