package liquidity

import (
	"context"
	"testing"

	"loans/core"
	"loans/pkg/compound"
	"loans/pkg/fixed"
	"loans/service/market"
	"loans/service/oracle"
	"loans/store/asset"
	"loans/store/kv"
	"loans/store/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	ctx := context.Background()

	base := kv.NewMemory()
	states := state.New(base)
	assets := asset.New(base)
	prices, err := oracle.New(core.PriceOracleConfig{Static: map[string]string{"1": "1", "2": "1"}})
	require.NoError(t, err)

	svc := market.New(&core.System{Admins: []string{"root"}, PoolAccount: "pool"}, states, assets, prices, nil)
	for _, currency := range []core.CurrencyID{1, 2} {
		require.NoError(t, svc.AddMarket(ctx, "root", currency, core.Market{
			CollateralFactor:     fixed.FromPercent(50),
			ReserveFactor:        fixed.FromPercent(10),
			CloseFactor:          fixed.FromPercent(50),
			LiquidationIncentive: fixed.MustFromString("1.1"),
			RateModel:            compound.DefaultRateModel(),
			State:                core.MarketStatePending,
			Cap:                  fixed.NewBalance(1_000_000),
			PTokenID:             currency + 1000,
		}))
		require.NoError(t, svc.ActivateMarket(ctx, "root", currency))
	}

	require.NoError(t, assets.MintInto(ctx, 1, "alice", fixed.NewBalance(1000)))
	require.NoError(t, assets.MintInto(ctx, 2, "bob", fixed.NewBalance(1000)))

	require.NoError(t, svc.Mint(ctx, "bob", 2, fixed.NewBalance(1000)))
	require.NoError(t, svc.Mint(ctx, "alice", 1, fixed.NewBalance(1000)))
	require.NoError(t, svc.CollateralAsset(ctx, "alice", 1, true))
	require.NoError(t, svc.Borrow(ctx, "alice", 2, fixed.NewBalance(400)))

	w := &Worker{StateStore: states, MarketService: svc}

	n, err := w.Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, prices.FeedPrice(ctx, 2, fixed.FromInteger(2)))

	n, err = w.Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
