package account_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fintra/fintra/internal/account"
	"github.com/fintra/fintra/internal/apperror"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    account.Params
		setupMock func(m *account.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: account.Params{
				Name:        "Checking",
				Balance:     decimal.NewFromInt(1000),
				Description: "Daily spending",
			},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().
					CreateAccount(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, a *account.Account) error {
						a.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:    "NameTooShort",
			params:  account.Params{Name: "A"},
			wantErr: true,
		},
		{
			name:    "NameTooLong",
			params:  account.Params{Name: strings.Repeat("a", 51)},
			wantErr: true,
		},
		{
			name: "DescriptionTooLong",
			params: account.Params{
				Name:        "Checking",
				Description: strings.Repeat("a", 201),
			},
			wantErr: true,
		},
		{
			name:   "RepoError",
			params: account.Params{Name: "Checking"},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().
					CreateAccount(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := account.NewMockRepository(ctrl)
			refs := account.NewMockReferenceCounter(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := account.NewService(repo, refs)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
			assert.True(t, got.Balance.Equal(tt.params.Balance))
		})
	}
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	refs := account.NewMockReferenceCounter(ctrl)

	id := uuid.New()

	repo.EXPECT().
		GetAccount(gomock.Any(), id).
		Return(&account.Account{ID: id, Name: "Old Name", Balance: decimal.NewFromInt(10)}, nil)
	repo.EXPECT().UpdateAccount(gomock.Any(), gomock.Any()).Return(nil)

	svc := account.NewService(repo, refs)
	got, err := svc.Update(context.Background(), id, account.Params{
		Name:    "New Name",
		Balance: decimal.NewFromInt(25),
	})

	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(25)))
}

func TestService_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	refs := account.NewMockReferenceCounter(ctrl)

	id := uuid.New()

	repo.EXPECT().
		GetAccount(gomock.Any(), id).
		Return(nil, apperror.NotFound("account not found"))

	svc := account.NewService(repo, refs)
	got, err := svc.Update(context.Background(), id, account.Params{Name: "New Name"})

	assert.Nil(t, got)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestService_Delete(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(repo *account.MockRepository, refs *account.MockReferenceCounter, id uuid.UUID)
		wantKind  apperror.Kind
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(repo *account.MockRepository, refs *account.MockReferenceCounter, id uuid.UUID) {
				refs.EXPECT().CountByAccount(gomock.Any(), id).Return(int64(0), nil)
				repo.EXPECT().DeleteAccount(gomock.Any(), id).Return(nil)
			},
		},
		{
			name: "StillReferenced",
			setupMock: func(repo *account.MockRepository, refs *account.MockReferenceCounter, id uuid.UUID) {
				refs.EXPECT().CountByAccount(gomock.Any(), id).Return(int64(3), nil)
			},
			wantKind: apperror.KindConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := account.NewMockRepository(ctrl)
			refs := account.NewMockReferenceCounter(ctrl)

			id := uuid.New()
			tt.setupMock(repo, refs, id)

			svc := account.NewService(repo, refs)
			err := svc.Delete(context.Background(), id)

			if tt.wantKind != apperror.KindUnknown {
				assert.Equal(t, tt.wantKind, apperror.KindOf(err))
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_TotalBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	refs := account.NewMockReferenceCounter(ctrl)

	repo.EXPECT().ListAccounts(gomock.Any()).Return([]*account.Account{
		{Balance: decimal.RequireFromString("100.50")},
		{Balance: decimal.RequireFromString("-20.25")},
		{Balance: decimal.Zero},
	}, nil)

	svc := account.NewService(repo, refs)
	total, err := svc.TotalBalance(context.Background())

	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("80.25")), "total = %s", total)
}
