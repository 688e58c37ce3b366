package market

import (
	"testing"

	"loans/core"

	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationLogs(t *testing.T) {
	env := setup(t)

	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	ctx := logger.WithContext(env.ctx, logrus.NewEntry(log))

	operations := func() map[string][]string {
		ops := map[string][]string{}
		for _, e := range hook.AllEntries() {
			op, _ := e.Data["operation"].(string)
			ops[op] = append(ops[op], e.Message)
		}

		hook.Reset()
		return ops
	}

	require.NoError(t, env.svc.Mint(ctx, alice, dot, unit(100)))
	assert.Contains(t, operations()["mint"], "alice supplied 100000000000000 of 101 for 5000000000000000 vouchers")

	assert.ErrorIs(t, env.svc.Borrow(ctx, bob, ksm, unit(1)), core.ErrInsufficientLiquidity)
	assert.Contains(t, operations()["borrow"], "borrow exceeds liquidity 100 bob 1000000000000")

	require.NoError(t, env.svc.CollateralAsset(ctx, alice, dot, true))
	require.NoError(t, env.svc.Borrow(ctx, alice, dot, unit(10)))
	assert.Len(t, operations()["borrow"], 1)

	require.NoError(t, env.svc.RepayBorrowAll(ctx, alice, dot))
	assert.Len(t, operations()["repay_borrow"], 1)

	require.NoError(t, env.svc.Redeem(ctx, alice, dot, unit(10)))
	assert.Len(t, operations()["redeem"], 1)

	assert.ErrorIs(t, env.svc.LiquidateBorrow(ctx, bob, alice, dot, unit(1), dot), core.ErrInsufficientShortfall)
	assert.Contains(t, operations()["liquidate_borrow"], "borrower has no shortfall")
}
