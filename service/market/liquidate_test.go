package market

import (
	"testing"

	"loans/core"
	"loans/pkg/fixed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// alice borrows 100 KSM against 200 DOT, then KSM doubles
func liquidationEnv(t *testing.T) *testEnv {
	env := setup(t)

	require.NoError(t, env.svc.Mint(env.ctx, bob, ksm, unit(500)))
	env.supplyCollateral(t, alice, dot, unit(200))
	require.NoError(t, env.svc.Borrow(env.ctx, alice, ksm, unit(100)))

	assert.ErrorIs(t, env.svc.LiquidateBorrow(env.ctx, bob, alice, ksm, unit(10), dot), core.ErrInsufficientShortfall)

	env.oracle.set(ksm, "2")
	env.events.events = nil
	return env
}

func TestLiquidateBorrow(t *testing.T) {
	env := liquidationEnv(t)

	liquidity, err := env.svc.GetAccountLiquidity(env.ctx, alice)
	require.NoError(t, err)
	assert.True(t, liquidity.Liquidatable())
	assert.Equal(t, fixed.FromInner(unit(100)), liquidity.Shortfall)

	require.NoError(t, env.svc.LiquidateBorrow(env.ctx, bob, alice, ksm, unit(50), dot))

	debt, err := env.svc.CurrentBorrowBalance(env.ctx, alice, ksm)
	require.NoError(t, err)
	assert.Equal(t, unit(50), debt)
	assert.Equal(t, unit(50), env.ledger(t, ksm).TotalBorrows)

	// 50 KSM at 2 with 10% incentive seizes 110 DOT
	assert.Equal(t, unit(5500), env.vouchers(t, dot, bob))
	assert.Equal(t, unit(4500), env.vouchers(t, dot, alice))
	assert.Equal(t, unit(450), env.balance(t, ksm, bob))
	assert.Equal(t, unit(10000), env.ledger(t, dot).TotalSupply)

	// seized vouchers are plain deposits of the liquidator
	d, err := env.svc.GetDeposits(env.ctx, bob, dot)
	require.NoError(t, err)
	assert.False(t, d.IsCollateral)

	liquidity, err = env.svc.GetAccountLiquidity(env.ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, fixed.FromInner(unit(55)), liquidity.Shortfall)

	assert.Equal(t, []core.EventKind{core.EventRepaidBorrow, core.EventLiquidatedBorrow}, env.events.kinds())
}

func TestLiquidateBorrowErrors(t *testing.T) {
	env := liquidationEnv(t)

	cases := map[string]struct {
		liquidator core.AccountID
		repay      fixed.Balance
		collateral core.CurrencyID
		err        error
	}{
		"self": {
			liquidator: alice,
			repay:      unit(10),
			collateral: dot,
			err:        core.ErrLiquidatorIsBorrower,
		},
		"zero": {
			liquidator: bob,
			repay:      fixed.Balance{},
			collateral: dot,
			err:        core.ErrInvalidAmount,
		},
		"over close factor": {
			liquidator: bob,
			repay:      unit(51),
			collateral: dot,
			err:        core.ErrTooMuchRepay,
		},
		"not collateral": {
			liquidator: bob,
			repay:      unit(10),
			collateral: usdt,
			err:        core.ErrDepositsAreNotCollateral,
		},
		"unknown collateral": {
			liquidator: bob,
			repay:      unit(10),
			collateral: 404,
			err:        core.ErrCurrencyNotEnabled,
		},
		"liquidator without funds": {
			liquidator: "dave",
			repay:      unit(10),
			collateral: dot,
			err:        core.ErrInsufficientBalance,
		},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			err := env.svc.LiquidateBorrow(env.ctx, c.liquidator, alice, ksm, c.repay, c.collateral)
			assert.ErrorIs(t, err, c.err)
		})
	}

	t.Run("collateral worth too little", func(t *testing.T) {
		env.oracle.set(dot, "0.1")
		defer env.oracle.set(dot, "1")

		assert.ErrorIs(t, env.svc.LiquidateBorrow(env.ctx, bob, alice, ksm, unit(50), dot), core.ErrInsufficientCollateral)
	})

	// nothing moved
	debt, err := env.svc.CurrentBorrowBalance(env.ctx, alice, ksm)
	require.NoError(t, err)
	assert.Equal(t, unit(100), debt)
	assert.Equal(t, unit(10000), env.vouchers(t, dot, alice))
	assert.Empty(t, env.events.kinds())
}
