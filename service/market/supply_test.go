package market

import (
	"testing"

	"loans/core"
	"loans/pkg/fixed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintRedeem(t *testing.T) {
	env := setup(t)

	require.NoError(t, env.svc.Mint(env.ctx, alice, dot, unit(100)))
	assert.Equal(t, unit(5000), env.vouchers(t, dot, alice))
	assert.Equal(t, unit(900), env.balance(t, dot, alice))
	assert.Equal(t, unit(100), env.balance(t, dot, pool))
	assert.Equal(t, unit(5000), env.ledger(t, dot).TotalSupply)

	require.NoError(t, env.svc.Redeem(env.ctx, alice, dot, unit(40)))
	assert.Equal(t, unit(3000), env.vouchers(t, dot, alice))
	assert.Equal(t, unit(940), env.balance(t, dot, alice))

	assert.ErrorIs(t, env.svc.Redeem(env.ctx, alice, dot, unit(61)), core.ErrInsufficientDeposit)

	require.NoError(t, env.svc.RedeemAll(env.ctx, alice, dot))
	assert.True(t, env.vouchers(t, dot, alice).IsZero())
	assert.Equal(t, unit(1000), env.balance(t, dot, alice))
	assert.True(t, env.ledger(t, dot).TotalSupply.IsZero())

	assert.ErrorIs(t, env.svc.RedeemAll(env.ctx, alice, dot), core.ErrNoDeposit)
	assert.ErrorIs(t, env.svc.Redeem(env.ctx, bob, dot, unit(1)), core.ErrInsufficientDeposit)

	t.Run("invalid amount", func(t *testing.T) {
		assert.ErrorIs(t, env.svc.Mint(env.ctx, alice, dot, fixed.Balance{}), core.ErrInvalidAmount)
		assert.ErrorIs(t, env.svc.Redeem(env.ctx, alice, dot, fixed.Balance{}), core.ErrInvalidAmount)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		assert.ErrorIs(t, env.svc.Mint(env.ctx, charlie, dot, unit(1001)), core.ErrInsufficientBalance)
		assert.True(t, env.vouchers(t, dot, charlie).IsZero())
		assert.Equal(t, unit(1000), env.balance(t, dot, charlie))
	})

	t.Run("unknown currency", func(t *testing.T) {
		assert.ErrorIs(t, env.svc.Mint(env.ctx, alice, 404, unit(1)), core.ErrCurrencyNotEnabled)
		assert.ErrorIs(t, env.svc.Redeem(env.ctx, alice, 404, unit(1)), core.ErrCurrencyNotEnabled)
	})
}

func TestRedeemUnevenExchangeRate(t *testing.T) {
	env := setup(t)

	require.NoError(t, env.svc.Mint(env.ctx, bob, dot, unit(100)))

	l := env.ledger(t, dot)
	l.ExchangeRate = fixed.MustFromString("0.03")
	require.NoError(t, env.states.SaveLedger(env.ctx, dot, l))

	vouchers := env.vouchers(t, dot, bob)
	balance := env.balance(t, dot, bob)

	// 10 / 0.03 burns 333 vouchers which are worth 9.99, paid floored
	require.NoError(t, env.svc.Redeem(env.ctx, bob, dot, fixed.NewBalance(10)))

	burned, err := vouchers.Sub(env.vouchers(t, dot, bob))
	require.NoError(t, err)
	assert.Equal(t, fixed.NewBalance(333), burned)

	received, err := env.balance(t, dot, bob).Sub(balance)
	require.NoError(t, err)
	assert.Equal(t, fixed.NewBalance(9), received)

	// 33 vouchers are worth nothing once floored
	assert.ErrorIs(t, env.svc.Redeem(env.ctx, bob, dot, fixed.NewBalance(1)), core.ErrInvalidAmount)
	assert.Equal(t, vouchers.SaturatingSub(fixed.NewBalance(333)), env.vouchers(t, dot, bob))
}

func TestMintCap(t *testing.T) {
	env := setup(t)

	capacity := unit(150)
	require.NoError(t, env.svc.UpdateMarket(env.ctx, root, ksm, core.MarketUpdate{Cap: &capacity}))

	require.NoError(t, env.svc.Mint(env.ctx, alice, ksm, unit(100)))
	assert.ErrorIs(t, env.svc.Mint(env.ctx, bob, ksm, unit(51)), core.ErrExceededMarketCapacity)
	require.NoError(t, env.svc.Mint(env.ctx, bob, ksm, unit(50)))
	assert.ErrorIs(t, env.svc.Mint(env.ctx, bob, ksm, fixed.NewBalance(1)), core.ErrExceededMarketCapacity)
}

func TestCollateralAsset(t *testing.T) {
	env := setup(t)

	assert.ErrorIs(t, env.svc.CollateralAsset(env.ctx, alice, dot, true), core.ErrNoDeposit)

	require.NoError(t, env.svc.Mint(env.ctx, alice, dot, unit(100)))
	require.NoError(t, env.svc.CollateralAsset(env.ctx, alice, dot, true))
	assert.ErrorIs(t, env.svc.CollateralAsset(env.ctx, alice, dot, true), core.ErrDuplicateOperation)

	liquidity, err := env.svc.GetAccountLiquidity(env.ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, fixed.FromInner(unit(50)), liquidity.Liquidity)
	assert.True(t, liquidity.Shortfall.IsZero())

	require.NoError(t, env.svc.Mint(env.ctx, bob, ksm, unit(100)))
	require.NoError(t, env.svc.Borrow(env.ctx, alice, ksm, unit(50)))

	assert.ErrorIs(t, env.svc.CollateralAsset(env.ctx, alice, dot, false), core.ErrInsufficientLiquidity)
	// a collateral deposit can not be redeemed below the debt either
	assert.ErrorIs(t, env.svc.Redeem(env.ctx, alice, dot, unit(1)), core.ErrInsufficientLiquidity)

	require.NoError(t, env.svc.RepayBorrowAll(env.ctx, alice, ksm))
	require.NoError(t, env.svc.CollateralAsset(env.ctx, alice, dot, false))
	assert.ErrorIs(t, env.svc.CollateralAsset(env.ctx, alice, dot, false), core.ErrDuplicateOperation)

	d, err := env.svc.GetDeposits(env.ctx, alice, dot)
	require.NoError(t, err)
	assert.False(t, d.IsCollateral)

	assert.Equal(t, []core.EventKind{
		core.EventDeposited,
		core.EventCollateralAssetAdded,
		core.EventDeposited,
		core.EventBorrowed,
		core.EventRepaidBorrow,
		core.EventCollateralAssetRemoved,
	}, env.events.kinds())
}

func TestTransferVouchers(t *testing.T) {
	env := setup(t)

	require.NoError(t, env.svc.Mint(env.ctx, alice, dot, unit(100)))
	require.NoError(t, env.svc.TransferVouchers(env.ctx, alice, bob, dot, unit(1000)))
	assert.Equal(t, unit(4000), env.vouchers(t, dot, alice))
	assert.Equal(t, unit(1000), env.vouchers(t, dot, bob))
	assert.Equal(t, unit(5000), env.ledger(t, dot).TotalSupply)

	assert.ErrorIs(t, env.svc.TransferVouchers(env.ctx, alice, bob, dot, unit(4001)), core.ErrInsufficientDeposit)
	assert.ErrorIs(t, env.svc.TransferVouchers(env.ctx, alice, bob, dot, fixed.Balance{}), core.ErrInvalidAmount)

	// the receiver gets plain deposits, not collateral
	d, err := env.svc.GetDeposits(env.ctx, bob, dot)
	require.NoError(t, err)
	assert.False(t, d.IsCollateral)

	t.Run("to self", func(t *testing.T) {
		require.NoError(t, env.svc.TransferVouchers(env.ctx, bob, bob, dot, unit(1000)))
		assert.Equal(t, unit(1000), env.vouchers(t, dot, bob))
	})

	t.Run("collateral", func(t *testing.T) {
		// 4000 vouchers are 80 DOT, 40 of borrowing power
		require.NoError(t, env.svc.CollateralAsset(env.ctx, alice, dot, true))
		require.NoError(t, env.svc.Mint(env.ctx, charlie, ksm, unit(100)))
		require.NoError(t, env.svc.Borrow(env.ctx, alice, ksm, unit(30)))

		// 1000 vouchers carry exactly the 10 of liquidity left
		require.NoError(t, env.svc.TransferVouchers(env.ctx, alice, bob, dot, unit(1000)))
		assert.ErrorIs(t, env.svc.TransferVouchers(env.ctx, alice, bob, dot, unit(1)), core.ErrInsufficientLiquidity)

		assert.Equal(t, unit(3000), env.vouchers(t, dot, alice))
		assert.Equal(t, unit(2000), env.vouchers(t, dot, bob))
	})
}

func TestEarnedSnapshot(t *testing.T) {
	env := setup(t)

	require.NoError(t, env.svc.Mint(env.ctx, bob, ksm, unit(100)))

	snapshot, err := env.states.FindEarnedSnapshot(env.ctx, ksm, bob)
	require.NoError(t, err)
	assert.True(t, snapshot.TotalEarnedPrior.IsZero())
	assert.Equal(t, fixed.MustFromString("0.02"), snapshot.ExchangeRatePrior)

	// bump the exchange rate by hand and mint again
	l := env.ledger(t, ksm)
	l.ExchangeRate = fixed.MustFromString("0.021")
	require.NoError(t, env.states.SaveLedger(env.ctx, ksm, l))
	require.NoError(t, env.svc.Mint(env.ctx, bob, ksm, unit(21)))

	snapshot, err = env.states.FindEarnedSnapshot(env.ctx, ksm, bob)
	require.NoError(t, err)
	// 5000 vouchers earned 0.001 each
	assert.Equal(t, unit(5), snapshot.TotalEarnedPrior)
	assert.Equal(t, fixed.MustFromString("0.021"), snapshot.ExchangeRatePrior)
	assert.Equal(t, unit(6000), env.vouchers(t, ksm, bob))
}
