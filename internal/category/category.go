package category

import (
	"time"

	"github.com/google/uuid"
)

// Polarity says whether a category applies to income, expense, or both.
type Polarity string

const (
	PolarityIncome  Polarity = "income"
	PolarityExpense Polarity = "expense"
	PolarityBoth    Polarity = "both"
)

func (p Polarity) Valid() bool {
	switch p {
	case PolarityIncome, PolarityExpense, PolarityBoth:
		return true
	}

	return false
}

// Allows reports whether a transaction of the given type ("income" or
// "expense") may be filed under a category with this polarity.
func (p Polarity) Allows(txType string) bool {
	return p == PolarityBoth || string(p) == txType
}

type Category struct {
	ID        uuid.UUID
	Name      string
	Polarity  Polarity
	CreatedAt time.Time
	UpdatedAt *time.Time
}
