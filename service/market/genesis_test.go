package market

import (
	"testing"

	"loans/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrap(t *testing.T) {
	env := setup(t)

	markets := []*core.GenesisMarket{
		{
			Currency:             200,
			PTokenID:             1200,
			CollateralFactor:     "0.5",
			ReserveFactor:        "0.15",
			CloseFactor:          "0.5",
			LiquidationIncentive: "1.1",
			Cap:                  "1000000000000000",
			State:                "Active",
		},
		{
			Currency:             201,
			PTokenID:             1201,
			CollateralFactor:     "0.6",
			ReserveFactor:        "0.1",
			CloseFactor:          "1",
			LiquidationIncentive: "1.05",
			Cap:                  "1000",
			BaseRate:             "0.01",
			JumpRate:             "0.1",
			FullRate:             "0.3",
			JumpUtilization:      "0.9",
		},
		// already listed
		{
			Currency:             uint32(ksm),
			CollateralFactor:     "0.1",
			ReserveFactor:        "0.1",
			CloseFactor:          "1",
			LiquidationIncentive: "1",
			Cap:                  "1",
		},
	}

	require.NoError(t, Bootstrap(env.ctx, env.svc, root, markets, nil))
	// idempotent
	require.NoError(t, Bootstrap(env.ctx, env.svc, root, markets, nil))

	status, err := env.svc.GetMarketStatus(env.ctx, 200)
	require.NoError(t, err)
	assert.Equal(t, core.MarketStateActive, status.Market.State)
	assert.Equal(t, core.CurrencyID(1200), status.Market.PTokenID)

	status, err = env.svc.GetMarketStatus(env.ctx, 201)
	require.NoError(t, err)
	assert.Equal(t, core.MarketStatePending, status.Market.State)
	require.NotNil(t, status.Market.RateModel.Jump)

	status, err = env.svc.GetMarketStatus(env.ctx, ksm)
	require.NoError(t, err)
	assert.Equal(t, testMarket().CollateralFactor, status.Market.CollateralFactor)

	bad := []*core.GenesisMarket{{Currency: 300, CollateralFactor: "x"}}
	assert.Error(t, Bootstrap(env.ctx, env.svc, root, bad, nil))

	assert.ErrorIs(t, Bootstrap(env.ctx, env.svc, alice, []*core.GenesisMarket{{
		Currency:             301,
		CollateralFactor:     "0.5",
		ReserveFactor:        "0.1",
		CloseFactor:          "1",
		LiquidationIncentive: "1",
		Cap:                  "1",
	}}, nil), core.ErrBadOrigin)
}

func TestBootstrapBalances(t *testing.T) {
	env := setup(t)

	const kar core.CurrencyID = 200

	balances := []*core.GenesisBalance{
		{Account: string(charlie), Currency: uint32(kar), Amount: "5000"},
		{Account: string(bob), Currency: uint32(kar), Amount: "700"},
	}

	require.NoError(t, Bootstrap(env.ctx, env.svc, root, nil, balances))
	// currencies already issued are left alone on restart
	require.NoError(t, Bootstrap(env.ctx, env.svc, root, nil, balances))

	assert.Equal(t, "5000", env.balance(t, kar, charlie).String())
	assert.Equal(t, "700", env.balance(t, kar, bob).String())

	total, err := env.svc.TotalIssuance(env.ctx, kar)
	require.NoError(t, err)
	assert.Equal(t, "5700", total.String())

	// ksm was funded by setup
	before := env.balance(t, ksm, charlie)
	require.NoError(t, Bootstrap(env.ctx, env.svc, root, nil, []*core.GenesisBalance{
		{Account: string(charlie), Currency: uint32(ksm), Amount: "1"},
	}))
	assert.Equal(t, before.String(), env.balance(t, ksm, charlie).String())

	assert.Error(t, Bootstrap(env.ctx, env.svc, root, nil, []*core.GenesisBalance{
		{Account: string(charlie), Currency: 300, Amount: "x"},
	}))

	assert.ErrorIs(t, Bootstrap(env.ctx, env.svc, alice, nil, []*core.GenesisBalance{
		{Account: string(charlie), Currency: 301, Amount: "1"},
	}), core.ErrBadOrigin)
}
