package services

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/atm-ledger/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportFixture struct {
	accounts *MockAccountReader
	branches *MockBranchReader
	txns     *MockTransactionReader
	cache    *MockReportCache
}

func newReportFixture(t *testing.T) *reportFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	return &reportFixture{
		accounts: NewMockAccountReader(ctrl),
		branches: NewMockBranchReader(ctrl),
		txns:     NewMockTransactionReader(ctrl),
		cache:    NewMockReportCache(ctrl),
	}
}

func (f *reportFixture) service() *ReportService {
	return NewReportService(f.accounts, f.branches, f.txns, f.cache)
}

func (f *reportFixture) serviceWithoutCache() *ReportService {
	return NewReportService(f.accounts, f.branches, f.txns, nil)
}

func TestReportService_ListBranches(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		branches []models.BranchDB
		err      error
		wantErr  error
	}{
		{
			name:     "success",
			branches: []models.BranchDB{{BranchID: 1111, Location: "Avadi", Cash: 60000}},
		},
		{name: "empty", wantErr: ErrNoData},
		{name: "storage error", err: errors.New("db down"), wantErr: ErrStorageFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReportFixture(t)
			f.branches.EXPECT().List(ctx).Return(tt.branches, tt.err)

			got, err := f.service().ListBranches(ctx)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.branches, got)
		})
	}
}

func TestReportService_GetBranch(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture(t)
	svc := f.service()

	f.branches.EXPECT().GetByID(ctx, int64(1111)).Return(&models.BranchDB{BranchID: 1111, Cash: 10}, nil)
	branch, err := svc.GetBranch(ctx, 1111)
	require.NoError(t, err)
	assert.Equal(t, int64(10), branch.Cash)

	f.branches.EXPECT().GetByID(ctx, int64(2222)).Return(nil, nil)
	_, err = svc.GetBranch(ctx, 2222)
	assert.ErrorIs(t, err, ErrBranchNotFound)

	f.branches.EXPECT().GetByID(ctx, int64(3333)).Return(nil, errors.New("timeout"))
	_, err = svc.GetBranch(ctx, 3333)
	assert.ErrorIs(t, err, ErrStorageFailure)
}

func TestReportService_GetAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("with branch", func(t *testing.T) {
		f := newReportFixture(t)
		branchID := int64(1111)

		f.accounts.EXPECT().GetByID(ctx, int64(1)).Return(&models.AccountDB{AccountID: 1, Name: "alice", BranchID: &branchID}, nil)
		f.branches.EXPECT().GetByID(ctx, branchID).Return(&models.BranchDB{BranchID: branchID, Location: "Avadi"}, nil)

		view, err := f.service().GetAccount(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "alice", view.Account.Name)
		require.NotNil(t, view.Branch)
		assert.Equal(t, "Avadi", view.Branch.Location)
	})

	t.Run("unassigned", func(t *testing.T) {
		f := newReportFixture(t)

		f.accounts.EXPECT().GetByID(ctx, int64(2)).Return(&models.AccountDB{AccountID: 2, Name: "bob"}, nil)

		view, err := f.service().GetAccount(ctx, 2)
		require.NoError(t, err)
		assert.Nil(t, view.Branch)
	})

	t.Run("not found", func(t *testing.T) {
		f := newReportFixture(t)

		f.accounts.EXPECT().GetByID(ctx, int64(3)).Return(nil, nil)

		_, err := f.service().GetAccount(ctx, 3)
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("missing branch row", func(t *testing.T) {
		f := newReportFixture(t)
		branchID := int64(1111)

		f.accounts.EXPECT().GetByID(ctx, int64(5)).Return(&models.AccountDB{AccountID: 5, Name: "eve", BranchID: &branchID}, nil)
		f.branches.EXPECT().GetByID(ctx, branchID).Return(nil, nil)

		view, err := f.service().GetAccount(ctx, 5)
		require.NoError(t, err)
		assert.Nil(t, view.Branch)
		assert.True(t, view.Account.HasBranch())
	})

	t.Run("branch lookup failure", func(t *testing.T) {
		f := newReportFixture(t)
		branchID := int64(1111)

		f.accounts.EXPECT().GetByID(ctx, int64(4)).Return(&models.AccountDB{AccountID: 4, BranchID: &branchID}, nil)
		f.branches.EXPECT().GetByID(ctx, branchID).Return(nil, errors.New("timeout"))

		_, err := f.service().GetAccount(ctx, 4)
		assert.ErrorIs(t, err, ErrStorageFailure)
	})
}

func TestReportService_History(t *testing.T) {
	ctx := context.Background()
	records := []models.TransactionDB{
		{TxnID: 2, AccountID: 1, Type: models.TransactionWithdraw, Amount: 5},
		{TxnID: 1, AccountID: 1, Type: models.TransactionDeposit, Amount: 10},
	}

	f := newReportFixture(t)
	svc := f.service()

	f.txns.EXPECT().ListByAccount(ctx, int64(1), 10).Return(records, nil)
	got, err := svc.AccountHistory(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, records, got)

	f.txns.EXPECT().ListByAccount(ctx, int64(2), 0).Return(nil, nil)
	_, err = svc.AccountHistory(ctx, 2, 0)
	assert.ErrorIs(t, err, ErrNoData)

	f.txns.EXPECT().ListByAccount(ctx, int64(3), 0).Return(nil, errors.New("bad conn"))
	_, err = svc.AccountHistory(ctx, 3, 0)
	assert.ErrorIs(t, err, ErrStorageFailure)
	assert.NotErrorIs(t, err, ErrNoData)

	f.txns.EXPECT().ListByBranch(ctx, int64(1111), 5).Return(records, nil)
	got, err = svc.BranchHistory(ctx, 1111, 5)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	f.txns.EXPECT().ListByBranch(ctx, int64(2222), 5).Return([]models.TransactionDB{}, nil)
	_, err = svc.BranchHistory(ctx, 2222, 5)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestReportService_BranchTransactionCount(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss loads and stores", func(t *testing.T) {
		f := newReportFixture(t)

		f.cache.EXPECT().Get(ctx, "count:1111", gomock.Any()).Return(false, nil)
		f.txns.EXPECT().CountByBranch(ctx, int64(1111)).Return(int64(4), nil)
		f.cache.EXPECT().Set(ctx, "count:1111", int64(4)).Return(nil)

		count, err := f.service().BranchTransactionCount(ctx, 1111)
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
	})

	t.Run("cache hit", func(t *testing.T) {
		f := newReportFixture(t)

		f.cache.EXPECT().Get(ctx, "count:1111", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, dest any) (bool, error) {
				*dest.(*int64) = 9
				return true, nil
			})

		count, err := f.service().BranchTransactionCount(ctx, 1111)
		require.NoError(t, err)
		assert.Equal(t, int64(9), count)
	})

	t.Run("zero is a valid count", func(t *testing.T) {
		f := newReportFixture(t)

		f.txns.EXPECT().CountByBranch(ctx, int64(2222)).Return(int64(0), nil)

		count, err := f.serviceWithoutCache().BranchTransactionCount(ctx, 2222)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("storage error is not cached", func(t *testing.T) {
		f := newReportFixture(t)

		f.cache.EXPECT().Get(ctx, "count:3333", gomock.Any()).Return(false, nil)
		f.txns.EXPECT().CountByBranch(ctx, int64(3333)).Return(int64(0), errors.New("db down"))

		_, err := f.service().BranchTransactionCount(ctx, 3333)
		assert.ErrorIs(t, err, ErrStorageFailure)
	})
}

func TestReportService_TopAccounts(t *testing.T) {
	ctx := context.Background()
	rows := []models.AccountActivity{
		{AccountID: 1, Name: "alice", Count: 3},
		{AccountID: 2, Name: "Unknown", Count: 3},
	}

	t.Run("default limit, all branches", func(t *testing.T) {
		f := newReportFixture(t)

		f.cache.EXPECT().Get(ctx, "top:all:5", gomock.Any()).Return(false, nil)
		f.txns.EXPECT().TopAccounts(ctx, (*int64)(nil), DefaultTopLimit).Return(rows, nil)
		f.cache.EXPECT().Set(ctx, "top:all:5", rows).Return(nil)

		got, err := f.service().TopAccounts(ctx, nil, 0)
		require.NoError(t, err)
		assert.Equal(t, rows, got)
	})

	t.Run("branch scope", func(t *testing.T) {
		f := newReportFixture(t)
		branchID := int64(1111)

		f.cache.EXPECT().Get(ctx, "top:1111:3", gomock.Any()).Return(false, nil)
		f.txns.EXPECT().TopAccounts(ctx, &branchID, 3).Return(rows[:1], nil)
		f.cache.EXPECT().Set(ctx, "top:1111:3", rows[:1]).Return(nil)

		got, err := f.service().TopAccounts(ctx, &branchID, 3)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("cache failures fall back to the store", func(t *testing.T) {
		f := newReportFixture(t)

		f.cache.EXPECT().Get(ctx, "top:all:5", gomock.Any()).Return(false, errors.New("redis down"))
		f.txns.EXPECT().TopAccounts(ctx, (*int64)(nil), 5).Return(rows, nil)
		f.cache.EXPECT().Set(ctx, "top:all:5", rows).Return(errors.New("redis down"))

		got, err := f.service().TopAccounts(ctx, nil, -1)
		require.NoError(t, err)
		assert.Equal(t, rows, got)
	})

	t.Run("no records", func(t *testing.T) {
		f := newReportFixture(t)

		f.txns.EXPECT().TopAccounts(ctx, (*int64)(nil), 5).Return(nil, nil)

		_, err := f.serviceWithoutCache().TopAccounts(ctx, nil, 5)
		assert.ErrorIs(t, err, ErrNoData)
	})
}

func TestReportService_Summary(t *testing.T) {
	ctx := context.Background()
	branchID := int64(1111)
	rows := []models.SummaryRow{
		{BranchID: nil, Type: models.TransactionTransfer, Count: 1, Total: 50},
		{BranchID: &branchID, Type: models.TransactionDeposit, Count: 2, Total: 300},
	}

	f := newReportFixture(t)
	svc := f.service()

	f.cache.EXPECT().Get(ctx, "summary", gomock.Any()).Return(false, nil)
	f.txns.EXPECT().Summary(ctx).Return(rows, nil)
	f.cache.EXPECT().Set(ctx, "summary", rows).Return(nil)

	got, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	f.cache.EXPECT().Get(ctx, "summary", gomock.Any()).Return(false, nil)
	f.txns.EXPECT().Summary(ctx).Return(nil, nil)
	f.cache.EXPECT().Set(ctx, "summary", gomock.Any()).Return(nil)

	_, err = svc.Summary(ctx)
	assert.ErrorIs(t, err, ErrNoData)
}
