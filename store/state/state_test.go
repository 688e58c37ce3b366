package state

import (
	"context"
	"errors"
	"testing"

	"loans/core"
	"loans/pkg/compound"
	"loans/pkg/fixed"
	"loans/store/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	dot core.CurrencyID = 101
	ksm core.CurrencyID = 100
)

func TestMarkets(t *testing.T) {
	ctx := context.Background()
	s := New(kv.NewMemory())

	_, err := s.FindMarket(ctx, dot)
	assert.ErrorIs(t, err, core.ErrMarketDoesNotExist)

	market := &core.Market{
		CollateralFactor:     fixed.FromPercent(50),
		ReserveFactor:        fixed.FromPercent(15),
		CloseFactor:          fixed.FromPercent(50),
		LiquidationIncentive: fixed.MustFromString("1.1"),
		RateModel:            compound.DefaultRateModel(),
		State:                core.MarketStateActive,
		Cap:                  fixed.MustBalance("1000000000000000000000"),
		PTokenID:             1101,
	}

	require.NoError(t, s.SaveMarket(ctx, dot, market))
	require.NoError(t, s.SaveMarket(ctx, ksm, market))

	found, err := s.FindMarket(ctx, dot)
	require.NoError(t, err)
	assert.Equal(t, market, found)

	currencies, err := s.ListCurrencies(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.CurrencyID{ksm, dot}, currencies)

	require.NoError(t, s.SaveLedger(ctx, dot, core.NewMarketLedger()))
	ledger, err := s.FindLedger(ctx, dot)
	require.NoError(t, err)
	assert.Equal(t, compound.InitialExchangeRate, ledger.ExchangeRate)
	assert.True(t, ledger.BorrowIndex.IsOne())
}

func TestPositions(t *testing.T) {
	ctx := context.Background()
	s := New(kv.NewMemory())

	// missing records read as zero
	snapshot, err := s.FindBorrowSnapshot(ctx, dot, "alice")
	require.NoError(t, err)
	assert.True(t, snapshot.IsZero())

	require.NoError(t, s.SaveBorrowSnapshot(ctx, dot, "alice", &core.BorrowSnapshot{
		Principal:   fixed.NewBalance(100),
		BorrowIndex: fixed.One(),
	}))
	require.NoError(t, s.SaveBorrowSnapshot(ctx, dot, "bob", &core.BorrowSnapshot{
		BorrowIndex: fixed.One(),
	}))
	require.NoError(t, s.SaveBorrowSnapshot(ctx, ksm, "carol", &core.BorrowSnapshot{
		Principal:   fixed.NewBalance(1),
		BorrowIndex: fixed.One(),
	}))

	borrowers, err := s.ListBorrowers(ctx, dot)
	require.NoError(t, err)
	assert.Equal(t, []core.AccountID{"alice"}, borrowers)

	require.NoError(t, s.SaveDeposits(ctx, dot, "alice", &core.Deposits{
		VoucherBalance: fixed.NewBalance(5000),
		IsCollateral:   true,
	}))

	deposits, err := s.FindDeposits(ctx, dot, "alice")
	require.NoError(t, err)
	assert.True(t, deposits.IsCollateral)
	assert.Equal(t, fixed.NewBalance(5000), deposits.VoucherBalance)

	// an empty deposit is removed
	require.NoError(t, s.SaveDeposits(ctx, dot, "alice", &core.Deposits{IsCollateral: true}))
	deposits, err = s.FindDeposits(ctx, dot, "alice")
	require.NoError(t, err)
	assert.False(t, deposits.IsCollateral)

	ts, err := s.LastAccruedTimestamp(ctx)
	require.NoError(t, err)
	assert.Zero(t, ts)

	require.NoError(t, s.SetLastAccruedTimestamp(ctx, 6000))
	ts, err = s.LastAccruedTimestamp(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 6000, ts)
}

func TestTransactRollback(t *testing.T) {
	ctx := context.Background()
	s := New(kv.NewMemory())

	errAbort := errors.New("abort")
	err := s.Transact(ctx, func(ctx context.Context) error {
		require.NoError(t, s.SaveLedger(ctx, dot, core.NewMarketLedger()))
		_, err := s.FindLedger(ctx, dot)
		require.NoError(t, err)
		return errAbort
	})
	assert.ErrorIs(t, err, errAbort)

	_, err = s.FindLedger(ctx, dot)
	assert.ErrorIs(t, err, core.ErrMarketDoesNotExist)

	require.NoError(t, s.Transact(ctx, func(ctx context.Context) error {
		return s.SaveLedger(ctx, dot, core.NewMarketLedger())
	}))

	_, err = s.FindLedger(ctx, dot)
	assert.NoError(t, err)
}
