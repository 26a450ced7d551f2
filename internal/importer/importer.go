// Package importer turns an uploaded bank statement into a reviewed,
// deduplicated set of transactions and commits them through the ledger as one
// batch. Stages: Parse -> Suggest -> DetectDuplicates -> (external review) ->
// Commit. Only Commit writes; an abandoned run leaves no side effects.
package importer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintra/fintra/internal/ledger"
)

// Candidate is one transaction extracted from a statement, carrying the
// pipeline's accumulated annotations.
type Candidate struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // always positive
	Type        ledger.Type

	// Set by Suggest.
	SuggestedCategory string

	// Set by DetectDuplicates.
	IsDuplicate bool
	DuplicateID *uuid.UUID
}

// ReviewedRow is the shape a candidate must have after human review to be
// valid input to Commit.
type ReviewedRow struct {
	Selected    bool
	ForceImport bool // import even though flagged duplicate
	IsDuplicate bool

	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        ledger.Type
	Category    string // category name, resolved to an id at commit time
}

type CommitResult struct {
	ImportedCount int
	SkippedCount  int
	BatchID       uuid.UUID
}
