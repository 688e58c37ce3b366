package block

import (
	"context"
	"testing"
	"time"

	"loans/core"
	"loans/service/market"
	"loans/store/asset"
	"loans/store/kv"
	"loans/store/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	block *core.Block
}

func (c *fixedClock) GetBlock(_ context.Context, _ time.Time) (*core.Block, error) {
	return c.block, nil
}

func (c *fixedClock) CurrentBlock(_ context.Context) (*core.Block, error) {
	return c.block, nil
}

type noPrices struct{}

func (noPrices) GetPrice(context.Context, core.CurrencyID) (*core.PriceDetail, bool) {
	return nil, false
}

func TestOnWork(t *testing.T) {
	ctx := context.Background()
	base := kv.NewMemory()
	states := state.New(base)
	svc := market.New(&core.System{PoolAccount: "pool"}, states, asset.New(base), noPrices{}, nil)

	clock := &fixedClock{block: &core.Block{Number: 10, Timestamp: time.Unix(1_600_000_060, 0)}}
	w, err := New(&core.Config{App: core.App{SecondsPerBlock: 6, Location: "UTC"}}, clock, svc)
	require.NoError(t, err)

	require.NoError(t, w.onWork(ctx))
	last, err := states.LastAccruedTimestamp(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_600_000_060), last)

	clock.block = &core.Block{Number: 11, Timestamp: time.Unix(1_600_000_066, 0)}
	require.NoError(t, w.onWork(ctx))
	last, err = states.LastAccruedTimestamp(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_600_000_066), last)
}
