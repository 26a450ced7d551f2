// Package classifier wraps the external text-classification capability used
// by statement import: extracting candidate transactions from raw statement
// text, and suggesting a category for a transaction description.
package classifier

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintra/fintra/internal/ledger"
)

// Candidate is a transaction extracted from a statement, not yet persisted
// or reviewed.
type Candidate struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // always positive
	Type        ledger.Type
}

//go:generate mockgen -source=classifier.go -destination=classifier_mock.go -package=classifier
type Classifier interface {
	// ClassifyStatement extracts candidate transactions from row-oriented
	// statement text. An empty result is not an error at this layer; the
	// import pipeline decides how to surface it.
	ClassifyStatement(ctx context.Context, text, filename string) ([]Candidate, error)

	// SuggestCategory picks the best-fitting name from categories for the
	// given transaction. The returned name is not guaranteed to be a member
	// of the list; callers must validate.
	SuggestCategory(ctx context.Context, description string, amount decimal.Decimal, txType ledger.Type, categories []string) (string, error)
}
