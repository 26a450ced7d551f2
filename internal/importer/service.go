package importer

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/fintra/fintra/internal/apperror"
	"github.com/fintra/fintra/internal/category"
	"github.com/fintra/fintra/internal/classifier"
	"github.com/fintra/fintra/internal/ledger"
)

// MaxUploadSize is the statement upload ceiling, enforced before parsing.
const MaxUploadSize = 10 << 20

// fanOutLimit bounds concurrent classifier and duplicate-detection calls.
const fanOutLimit = 8

//go:generate mockgen -source=service.go -destination=service_mock.go -package=importer

// Categories is the slice of the category service the pipeline needs.
type Categories interface {
	List(ctx context.Context) ([]*category.Category, error)
	ResolveName(ctx context.Context, name string) (*category.Category, error)
}

// DuplicateFinder looks up an existing transaction by exact
// (date, amount, type) tuple. Satisfied by the ledger store.
type DuplicateFinder interface {
	FindByAttributes(ctx context.Context, date time.Time, amount decimal.Decimal, txType ledger.Type) (*ledger.Transaction, error)
}

// BatchApplier commits a reviewed batch through the ledger. Satisfied by the
// ledger service.
type BatchApplier interface {
	ApplyBatch(ctx context.Context, entries []ledger.BatchEntry, accountID uuid.UUID) (*ledger.BatchResult, error)
}

type Service struct {
	classifier classifier.Classifier
	categories Categories
	finder     DuplicateFinder
	ledger     BatchApplier
}

func NewService(cl classifier.Classifier, categories Categories, finder DuplicateFinder, applier BatchApplier) *Service {
	return &Service{
		classifier: cl,
		categories: categories,
		finder:     finder,
		ledger:     applier,
	}
}

// Parse normalizes the uploaded file to row-oriented text and extracts
// candidate transactions via the classifier. Candidates come back with no
// category assigned yet.
//
// A classifier failure and an empty statement are both surfaced as classifier
// errors, with distinguishable messages: the first is transient and worth
// retrying, the second means the user should check the file.
func (s *Service) Parse(ctx context.Context, data []byte, filename, mimeType string) ([]Candidate, error) {
	if len(data) == 0 {
		return nil, apperror.InvalidInput("no file uploaded")
	}

	if len(data) > MaxUploadSize {
		return nil, apperror.InvalidInput("file exceeds the %d MiB upload limit", MaxUploadSize>>20)
	}

	text, err := normalizeStatement(data, filename, mimeType)
	if err != nil {
		return nil, err
	}

	extracted, err := s.classifier.ClassifyStatement(ctx, text, filename)
	if err != nil {
		return nil, apperror.WrapClassifier(err, "classifier call failed")
	}

	if len(extracted) == 0 {
		return nil, apperror.Classifier("no transactions found in the file, please check the file format")
	}

	candidates := make([]Candidate, len(extracted))
	for i, e := range extracted {
		candidates[i] = Candidate{
			Date:        e.Date,
			Description: e.Description,
			Amount:      e.Amount,
			Type:        e.Type,
		}
	}

	return candidates, nil
}

// Suggest asks the classifier for a category per candidate, restricted to the
// categories whose polarity matches the candidate's type. Suggestions run
// concurrently and merge back positionally. A failed or out-of-set suggestion
// degrades to the default category for that one row; it never aborts the
// batch.
func (s *Service) Suggest(ctx context.Context, candidates []Candidate) ([]Candidate, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	byType := map[ledger.Type][]string{
		ledger.TypeIncome:  categoryNames(cats, ledger.TypeIncome),
		ledger.TypeExpense: categoryNames(cats, ledger.TypeExpense),
	}

	out := make([]Candidate, len(candidates))
	copy(out, candidates)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)

	for i := range out {
		g.Go(func() error {
			c := &out[i]
			names := byType[c.Type]

			suggested, err := s.classifier.SuggestCategory(ctx, c.Description, c.Amount, c.Type, names)
			if err != nil || !contains(names, suggested) {
				c.SuggestedCategory = defaultCategory(c.Type)
				return nil
			}

			c.SuggestedCategory = suggested

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// DetectDuplicates flags candidates whose exact (date, amount, type) tuple
// already exists in the ledger. Deliberately conservative: description text
// is ignored, so re-imports are caught even when the bank rewords the line.
func (s *Service) DetectDuplicates(ctx context.Context, candidates []Candidate) ([]Candidate, error) {
	out := make([]Candidate, len(candidates))
	copy(out, candidates)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)

	for i := range out {
		g.Go(func() error {
			c := &out[i]

			existing, err := s.finder.FindByAttributes(ctx, c.Date, c.Amount, c.Type)
			if err != nil {
				if apperror.KindOf(err) == apperror.KindNotFound {
					return nil
				}

				return err
			}

			c.IsDuplicate = true
			c.DuplicateID = &existing.ID

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// Commit filters the reviewed rows to the selected ones (duplicates are
// excluded unless force-imported), resolves category names to ids, and
// applies the batch through the ledger. All-or-nothing: any unresolved
// category name rejects the whole commit.
func (s *Service) Commit(ctx context.Context, rows []ReviewedRow, accountID uuid.UUID) (*CommitResult, error) {
	if len(rows) == 0 {
		return nil, apperror.InvalidInput("no transactions to save")
	}

	var eligible []ReviewedRow

	for _, row := range rows {
		if !row.Selected {
			continue
		}

		if row.IsDuplicate && !row.ForceImport {
			continue
		}

		eligible = append(eligible, row)
	}

	if len(eligible) == 0 {
		return nil, apperror.InvalidInput("no transactions to import, all rows are duplicates or deselected")
	}

	resolved := make(map[string]*category.Category)

	var unresolved []string

	for _, row := range eligible {
		if _, ok := resolved[row.Category]; ok {
			continue
		}

		cat, err := s.categories.ResolveName(ctx, row.Category)
		if err != nil {
			if apperror.KindOf(err) == apperror.KindNotFound {
				unresolved = append(unresolved, row.Category)
				continue
			}

			return nil, err
		}

		resolved[row.Category] = cat
	}

	if len(unresolved) > 0 {
		return nil, apperror.InvalidInput("category not found: %s", strings.Join(unresolved, ", "))
	}

	entries := make([]ledger.BatchEntry, len(eligible))
	for i, row := range eligible {
		entries[i] = ledger.BatchEntry{
			Date:       row.Date,
			Amount:     row.Amount,
			Type:       row.Type,
			CategoryID: resolved[row.Category].ID,
			Note:       row.Description,
		}
	}

	result, err := s.ledger.ApplyBatch(ctx, entries, accountID)
	if err != nil {
		return nil, err
	}

	return &CommitResult{
		ImportedCount: len(entries),
		SkippedCount:  len(rows) - len(entries),
		BatchID:       result.BatchID,
	}, nil
}

func categoryNames(cats []*category.Category, t ledger.Type) []string {
	var names []string

	for _, c := range cats {
		if c.Polarity.Allows(string(t)) {
			names = append(names, c.Name)
		}
	}

	return names
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}

	return false
}

// defaultCategory is the fallback when no usable suggestion comes back.
func defaultCategory(t ledger.Type) string {
	if t == ledger.TypeIncome {
		return "Other Income"
	}

	return "Others"
}
