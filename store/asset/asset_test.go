package asset

import (
	"context"
	"errors"
	"testing"

	"loans/core"
	"loans/pkg/fixed"
	"loans/store/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger(t *testing.T) {
	ctx := context.Background()
	l := New(kv.NewMemory())

	const dot core.CurrencyID = 101

	require.NoError(t, l.MintInto(ctx, dot, "alice", fixed.NewBalance(1000)))
	require.NoError(t, l.Transfer(ctx, dot, "alice", "bob", fixed.NewBalance(400), true))

	err := l.Transfer(ctx, dot, "alice", "bob", fixed.NewBalance(601), true)
	assert.ErrorIs(t, err, core.ErrInsufficientBalance)

	balance, err := l.BalanceOf(ctx, dot, "alice")
	require.NoError(t, err)
	assert.Equal(t, fixed.NewBalance(600), balance)

	balance, err = l.BalanceOf(ctx, dot, "bob")
	require.NoError(t, err)
	assert.Equal(t, fixed.NewBalance(400), balance)

	require.NoError(t, l.BurnFrom(ctx, dot, "bob", fixed.NewBalance(100)))
	issuance, err := l.TotalIssuance(ctx, dot)
	require.NoError(t, err)
	assert.Equal(t, fixed.NewBalance(900), issuance)

	assert.ErrorIs(t, l.BurnFrom(ctx, dot, "bob", fixed.NewBalance(301)), core.ErrInsufficientBalance)
}

func TestLedgerRollback(t *testing.T) {
	ctx := context.Background()
	base := kv.NewMemory()
	l := New(base)

	const ksm core.CurrencyID = 100
	require.NoError(t, l.MintInto(ctx, ksm, "alice", fixed.NewBalance(10)))

	errAbort := errors.New("abort")
	err := kv.Transact(ctx, base, func(ctx context.Context) error {
		require.NoError(t, l.Transfer(ctx, ksm, "alice", "bob", fixed.NewBalance(10), false))
		return errAbort
	})
	assert.ErrorIs(t, err, errAbort)

	balance, err := l.BalanceOf(ctx, ksm, "alice")
	require.NoError(t, err)
	assert.Equal(t, fixed.NewBalance(10), balance)
}
