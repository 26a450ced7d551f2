package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is the balance-of-record for a set of transactions.
// Balance is a maintained aggregate: it always equals the signed sum of the
// transactions posted against the account, and is only ever changed through
// the ledger service or by direct user edit.
type Account struct {
	ID          uuid.UUID
	Name        string
	Balance     decimal.Decimal
	Description string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
