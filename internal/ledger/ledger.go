// Package ledger maintains the balance-consistency invariant between
// accounts and their transactions. Every transaction mutation, single or
// batched, goes through the Service so that the paired account balance
// adjustment is never skipped.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type is the polarity a transaction carries. The amount field is always
// positive; the sign lives here.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Signed returns the effect of a transaction on its account's balance:
// positive for income, negative for expense.
func Signed(amount decimal.Decimal, t Type) decimal.Decimal {
	if t == TypeExpense {
		return amount.Neg()
	}

	return amount
}

type Transaction struct {
	ID     uuid.UUID
	Date   time.Time
	Amount decimal.Decimal // always positive, sign carried by Type
	Type   Type

	CategoryID   uuid.UUID
	CategoryName string // resolved display field
	AccountID    uuid.UUID
	AccountName  string // resolved display field

	Note string

	// ImportBatchID groups transactions committed from one import run.
	// Nil for manually entered transactions.
	ImportBatchID *uuid.UUID

	CreatedAt time.Time
	UpdatedAt *time.Time
}

type ListFilter struct {
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	Type       *Type
	StartDate  *time.Time
	EndDate    *time.Time
}
