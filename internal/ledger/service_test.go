package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fintra/fintra/internal/account"
	"github.com/fintra/fintra/internal/apperror"
	"github.com/fintra/fintra/internal/category"
	"github.com/fintra/fintra/internal/ledger"
)

func TestService_Create_Validation(t *testing.T) {
	type testCase struct {
		name      string
		params    ledger.Params
		setupMock func(cats *ledger.MockCategoryCatalog)
		wantKind  apperror.Kind
	}

	catID := uuid.New()

	tests := []testCase{
		{
			name: "InvalidType",
			params: ledger.Params{
				Amount: decimal.NewFromInt(10),
				Type:   ledger.Type("transfer"),
			},
			wantKind: apperror.KindInvalidInput,
		},
		{
			name: "ZeroAmount",
			params: ledger.Params{
				Amount: decimal.Zero,
				Type:   ledger.TypeExpense,
			},
			wantKind: apperror.KindInvalidInput,
		},
		{
			name: "NegativeAmount",
			params: ledger.Params{
				Amount: decimal.NewFromInt(-5),
				Type:   ledger.TypeIncome,
			},
			wantKind: apperror.KindInvalidInput,
		},
		{
			name: "PolarityMismatch",
			params: ledger.Params{
				Amount:     decimal.NewFromInt(10),
				Type:       ledger.TypeIncome,
				CategoryID: catID,
			},
			setupMock: func(cats *ledger.MockCategoryCatalog) {
				cats.EXPECT().
					Get(gomock.Any(), catID).
					Return(&category.Category{ID: catID, Name: "Rent", Polarity: category.PolarityExpense}, nil)
			},
			wantKind: apperror.KindInvalidInput,
		},
		{
			name: "CategoryNotFound",
			params: ledger.Params{
				Amount:     decimal.NewFromInt(10),
				Type:       ledger.TypeExpense,
				CategoryID: catID,
			},
			setupMock: func(cats *ledger.MockCategoryCatalog) {
				cats.EXPECT().
					Get(gomock.Any(), catID).
					Return(nil, apperror.NotFound("category not found"))
			},
			wantKind: apperror.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// No repo expectations: a rejected create must not touch storage.
			repo := ledger.NewMockRepository(ctrl)
			cats := ledger.NewMockCategoryCatalog(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(cats)
			}

			svc := ledger.NewService(repo, cats)
			got, err := svc.Create(context.Background(), tt.params)

			assert.Nil(t, got)
			assert.Equal(t, tt.wantKind, apperror.KindOf(err))
		})
	}
}

func TestService_Create_AdjustsBalance(t *testing.T) {
	type testCase struct {
		name      string
		txType    ledger.Type
		wantDelta decimal.Decimal
	}

	tests := []testCase{
		{name: "Income", txType: ledger.TypeIncome, wantDelta: decimal.NewFromInt(100)},
		{name: "Expense", txType: ledger.TypeExpense, wantDelta: decimal.NewFromInt(-100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			tx := ledger.NewMockTx(ctrl)
			cats := ledger.NewMockCategoryCatalog(ctrl)

			catID := uuid.New()
			acctID := uuid.New()

			cats.EXPECT().
				Get(gomock.Any(), catID).
				Return(&category.Category{ID: catID, Name: "Others", Polarity: category.PolarityBoth}, nil)

			repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
			tx.EXPECT().
				LockAccount(gomock.Any(), acctID).
				Return(&account.Account{ID: acctID, Name: "Checking"}, nil)
			tx.EXPECT().
				InsertTransaction(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, tr *ledger.Transaction) error {
					tr.ID = uuid.New()
					tr.CreatedAt = time.Now()
					return nil
				})
			tx.EXPECT().
				AdjustBalance(gomock.Any(), acctID, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ uuid.UUID, delta decimal.Decimal) error {
					assert.True(t, delta.Equal(tt.wantDelta), "delta = %s, want %s", delta, tt.wantDelta)
					return nil
				})
			tx.EXPECT().Commit().Return(nil)
			tx.EXPECT().Rollback().Return(nil)

			svc := ledger.NewService(repo, cats)
			got, err := svc.Create(context.Background(), ledger.Params{
				Date:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
				Amount:     decimal.NewFromInt(100),
				Type:       tt.txType,
				CategoryID: catID,
				AccountID:  acctID,
			})

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, "Others", got.CategoryName)
			assert.Equal(t, "Checking", got.AccountName)
		})
	}
}

// An expense of 30 on a balance of 70 is rewritten to an income of 50:
// the reversal puts the balance back to 100, the new effect lands it on 150.
func TestService_Update_ReappliesEffect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockTx(ctrl)
	cats := ledger.NewMockCategoryCatalog(ctrl)

	txID := uuid.New()
	catID := uuid.New()
	acctID := uuid.New()

	old := &ledger.Transaction{
		ID:         txID,
		Date:       time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Amount:     decimal.NewFromInt(30),
		Type:       ledger.TypeExpense,
		CategoryID: catID,
		AccountID:  acctID,
		CreatedAt:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	balance := decimal.NewFromInt(70)

	var deltas []decimal.Decimal

	repo.EXPECT().GetTransaction(gomock.Any(), txID).Return(old, nil)
	cats.EXPECT().
		Get(gomock.Any(), catID).
		Return(&category.Category{ID: catID, Name: "Others", Polarity: category.PolarityBoth}, nil)

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil).Times(2)
	tx.EXPECT().
		LockAccount(gomock.Any(), acctID).
		Return(&account.Account{ID: acctID, Name: "Checking"}, nil).
		Times(2)
	tx.EXPECT().
		AdjustBalance(gomock.Any(), acctID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, delta decimal.Decimal) error {
			deltas = append(deltas, delta)
			balance = balance.Add(delta)
			return nil
		}).
		Times(2)
	tx.EXPECT().UpdateTransaction(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().Commit().Return(nil).Times(2)
	tx.EXPECT().Rollback().Return(nil).Times(2)

	svc := ledger.NewService(repo, cats)
	got, err := svc.Update(context.Background(), txID, ledger.Params{
		Date:       old.Date,
		Amount:     decimal.NewFromInt(50),
		Type:       ledger.TypeIncome,
		CategoryID: catID,
		AccountID:  acctID,
	})

	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, deltas, 2)
	assert.True(t, deltas[0].Equal(decimal.NewFromInt(30)), "reversal delta = %s", deltas[0])
	assert.True(t, deltas[1].Equal(decimal.NewFromInt(50)), "new-effect delta = %s", deltas[1])
	assert.True(t, balance.Equal(decimal.NewFromInt(150)), "balance = %s", balance)
	assert.Equal(t, ledger.TypeIncome, got.Type)
	assert.Equal(t, old.CreatedAt, got.CreatedAt)
}

// When the replacement values are invalid the reversal has already been
// committed: the old effect is gone and the record is untouched.
func TestService_Update_InvalidAfterReversal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockTx(ctrl)
	cats := ledger.NewMockCategoryCatalog(ctrl)

	txID := uuid.New()
	acctID := uuid.New()

	old := &ledger.Transaction{
		ID:        txID,
		Amount:    decimal.NewFromInt(30),
		Type:      ledger.TypeExpense,
		AccountID: acctID,
	}

	balance := decimal.NewFromInt(70)

	repo.EXPECT().GetTransaction(gomock.Any(), txID).Return(old, nil)
	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().
		LockAccount(gomock.Any(), acctID).
		Return(&account.Account{ID: acctID}, nil)
	tx.EXPECT().
		AdjustBalance(gomock.Any(), acctID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, delta decimal.Decimal) error {
			balance = balance.Add(delta)
			return nil
		})
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	svc := ledger.NewService(repo, cats)
	got, err := svc.Update(context.Background(), txID, ledger.Params{
		Amount: decimal.Zero,
		Type:   ledger.TypeIncome,
	})

	assert.Nil(t, got)
	assert.Equal(t, apperror.KindInvalidInput, apperror.KindOf(err))
	assert.True(t, balance.Equal(decimal.NewFromInt(100)), "balance = %s", balance)
}

func TestService_Update_MissingReferencesBecomeInvalidInput(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(repo *ledger.MockRepository, tx *ledger.MockTx, cats *ledger.MockCategoryCatalog, catID, acctID uuid.UUID)
	}

	tests := []testCase{
		{
			name: "CategoryGone",
			setupMock: func(repo *ledger.MockRepository, tx *ledger.MockTx, cats *ledger.MockCategoryCatalog, catID, acctID uuid.UUID) {
				cats.EXPECT().
					Get(gomock.Any(), catID).
					Return(nil, apperror.NotFound("category not found"))
			},
		},
		{
			name: "AccountGone",
			setupMock: func(repo *ledger.MockRepository, tx *ledger.MockTx, cats *ledger.MockCategoryCatalog, catID, acctID uuid.UUID) {
				cats.EXPECT().
					Get(gomock.Any(), catID).
					Return(&category.Category{ID: catID, Name: "Others", Polarity: category.PolarityBoth}, nil)
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().
					LockAccount(gomock.Any(), acctID).
					Return(nil, apperror.NotFound("account not found"))
				tx.EXPECT().Rollback().Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			reversalTx := ledger.NewMockTx(ctrl)
			mainTx := ledger.NewMockTx(ctrl)
			cats := ledger.NewMockCategoryCatalog(ctrl)

			txID := uuid.New()
			catID := uuid.New()
			acctID := uuid.New()

			old := &ledger.Transaction{
				ID:        txID,
				Amount:    decimal.NewFromInt(10),
				Type:      ledger.TypeExpense,
				AccountID: acctID,
			}

			repo.EXPECT().GetTransaction(gomock.Any(), txID).Return(old, nil)
			repo.EXPECT().Begin(gomock.Any()).Return(reversalTx, nil)
			reversalTx.EXPECT().
				LockAccount(gomock.Any(), acctID).
				Return(&account.Account{ID: acctID}, nil)
			reversalTx.EXPECT().AdjustBalance(gomock.Any(), acctID, gomock.Any()).Return(nil)
			reversalTx.EXPECT().Commit().Return(nil)
			reversalTx.EXPECT().Rollback().Return(nil)

			tt.setupMock(repo, mainTx, cats, catID, acctID)

			svc := ledger.NewService(repo, cats)
			got, err := svc.Update(context.Background(), txID, ledger.Params{
				Amount:     decimal.NewFromInt(25),
				Type:       ledger.TypeExpense,
				CategoryID: catID,
				AccountID:  acctID,
			})

			assert.Nil(t, got)
			assert.Equal(t, apperror.KindInvalidInput, apperror.KindOf(err))
		})
	}
}

func TestService_Delete_ReversesEffect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockTx(ctrl)
	cats := ledger.NewMockCategoryCatalog(ctrl)

	txID := uuid.New()
	acctID := uuid.New()

	old := &ledger.Transaction{
		ID:        txID,
		Amount:    decimal.NewFromInt(40),
		Type:      ledger.TypeIncome,
		AccountID: acctID,
	}

	balance := decimal.NewFromInt(40)

	repo.EXPECT().GetTransaction(gomock.Any(), txID).Return(old, nil)
	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().
		LockAccount(gomock.Any(), acctID).
		Return(&account.Account{ID: acctID}, nil)
	tx.EXPECT().
		AdjustBalance(gomock.Any(), acctID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, delta decimal.Decimal) error {
			balance = balance.Add(delta)
			return nil
		})
	tx.EXPECT().DeleteTransaction(gomock.Any(), txID).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	svc := ledger.NewService(repo, cats)
	require.NoError(t, svc.Delete(context.Background(), txID))
	assert.True(t, balance.Equal(decimal.Zero), "balance = %s", balance)
}

func TestService_Delete_AccountAlreadyGone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockTx(ctrl)
	cats := ledger.NewMockCategoryCatalog(ctrl)

	txID := uuid.New()
	acctID := uuid.New()

	old := &ledger.Transaction{
		ID:        txID,
		Amount:    decimal.NewFromInt(40),
		Type:      ledger.TypeExpense,
		AccountID: acctID,
	}

	repo.EXPECT().GetTransaction(gomock.Any(), txID).Return(old, nil)
	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().
		LockAccount(gomock.Any(), acctID).
		Return(nil, apperror.NotFound("account not found"))
	tx.EXPECT().DeleteTransaction(gomock.Any(), txID).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	svc := ledger.NewService(repo, cats)
	assert.NoError(t, svc.Delete(context.Background(), txID))
}

func TestService_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	cats := ledger.NewMockCategoryCatalog(ctrl)

	txID := uuid.New()

	repo.EXPECT().
		GetTransaction(gomock.Any(), txID).
		Return(nil, apperror.NotFound("transaction not found"))

	svc := ledger.NewService(repo, cats)
	err := svc.Delete(context.Background(), txID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestService_ApplyBatch_NetAdjustment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockTx(ctrl)
	cats := ledger.NewMockCategoryCatalog(ctrl)

	incomeCat := uuid.New()
	expenseCat := uuid.New()
	acctID := uuid.New()

	cats.EXPECT().
		Get(gomock.Any(), incomeCat).
		Return(&category.Category{ID: incomeCat, Name: "Salary", Polarity: category.PolarityIncome}, nil)
	cats.EXPECT().
		Get(gomock.Any(), expenseCat).
		Return(&category.Category{ID: expenseCat, Name: "Food", Polarity: category.PolarityExpense}, nil).
		Times(2)

	entries := []ledger.BatchEntry{
		{Date: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(100), Type: ledger.TypeIncome, CategoryID: incomeCat, Note: "Payroll"},
		{Date: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(30), Type: ledger.TypeExpense, CategoryID: expenseCat, Note: "Groceries"},
		{Date: time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(20), Type: ledger.TypeExpense, CategoryID: expenseCat, Note: "Lunch"},
	}

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().
		LockAccount(gomock.Any(), acctID).
		Return(&account.Account{ID: acctID, Name: "Checking"}, nil)
	tx.EXPECT().
		InsertBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, txs []*ledger.Transaction) error {
			require.Len(t, txs, 3)
			for _, tr := range txs {
				require.NotNil(t, tr.ImportBatchID)
				assert.Equal(t, *txs[0].ImportBatchID, *tr.ImportBatchID)
				assert.Equal(t, acctID, tr.AccountID)
			}
			return nil
		})
	tx.EXPECT().
		AdjustBalance(gomock.Any(), acctID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, delta decimal.Decimal) error {
			assert.True(t, delta.Equal(decimal.NewFromInt(50)), "net delta = %s", delta)
			return nil
		})
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	svc := ledger.NewService(repo, cats)
	result, err := svc.ApplyBatch(context.Background(), entries, acctID)

	require.NoError(t, err)
	require.Len(t, result.Transactions, 3)
	assert.NotEqual(t, uuid.Nil, result.BatchID)
	assert.Equal(t, "Salary", result.Transactions[0].CategoryName)
	assert.Equal(t, "Checking", result.Transactions[0].AccountName)
}

// One bad entry rejects the whole batch before anything is written.
func TestService_ApplyBatch_RejectsBadEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	cats := ledger.NewMockCategoryCatalog(ctrl)

	incomeCat := uuid.New()
	acctID := uuid.New()

	cats.EXPECT().
		Get(gomock.Any(), incomeCat).
		Return(&category.Category{ID: incomeCat, Name: "Salary", Polarity: category.PolarityIncome}, nil).
		Times(3)

	entries := []ledger.BatchEntry{
		{Date: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(100), Type: ledger.TypeIncome, CategoryID: incomeCat, Note: "Payroll"},
		{Date: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(30), Type: ledger.TypeExpense, CategoryID: incomeCat, Note: "Miscoded"},
		{Date: time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(12), Type: ledger.TypeExpense, CategoryID: incomeCat},
	}

	svc := ledger.NewService(repo, cats)
	result, err := svc.ApplyBatch(context.Background(), entries, acctID)

	assert.Nil(t, result)
	assert.Equal(t, apperror.KindInvalidInput, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "Miscoded")
	// Rows without a note stay identifiable by position, date, and amount.
	assert.Contains(t, err.Error(), "entry 3 (2025-04-03, 12)")
}

func TestService_ApplyBatch_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	cats := ledger.NewMockCategoryCatalog(ctrl)

	svc := ledger.NewService(repo, cats)
	result, err := svc.ApplyBatch(context.Background(), nil, uuid.New())

	assert.Nil(t, result)
	assert.Equal(t, apperror.KindInvalidInput, apperror.KindOf(err))
}
