package market

import (
	"context"
	"sync"
	"testing"

	"loans/core"
	"loans/pkg/compound"
	"loans/pkg/fixed"
	"loans/store/asset"
	"loans/store/kv"
	"loans/store/state"

	"github.com/stretchr/testify/require"
)

const (
	ksm  core.CurrencyID = 100
	dot  core.CurrencyID = 101
	usdt core.CurrencyID = 102

	root    core.AccountID = "root"
	pool    core.AccountID = "loans-pool"
	alice   core.AccountID = "alice"
	bob     core.AccountID = "bob"
	charlie core.AccountID = "charlie"
)

// unit n whole tokens of 12 decimals
func unit(n uint64) fixed.Balance {
	b, err := fixed.NewBalance(n).MulUint64(1_000_000_000_000)
	if err != nil {
		panic(err)
	}

	return b
}

type testOracle struct {
	mu     sync.Mutex
	prices map[core.CurrencyID]fixed.Price
}

func (o *testOracle) GetPrice(_ context.Context, currency core.CurrencyID) (*core.PriceDetail, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	p, ok := o.prices[currency]
	if !ok {
		return nil, false
	}

	return &core.PriceDetail{Price: p}, true
}

func (o *testOracle) set(currency core.CurrencyID, price string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.prices[currency] = fixed.MustFromString(price)
}

type memEvents struct {
	events []*core.Event
}

func (m *memEvents) Create(_ context.Context, events []*core.Event) error {
	m.events = append(m.events, events...)
	return nil
}

func (m *memEvents) List(_ context.Context, fromID int64, limit int) ([]*core.Event, error) {
	return m.events, nil
}

func (m *memEvents) kinds() []core.EventKind {
	kinds := make([]core.EventKind, 0, len(m.events))
	for _, e := range m.events {
		kinds = append(kinds, e.Kind)
	}

	return kinds
}

type testEnv struct {
	ctx    context.Context
	svc    core.IMarketService
	states core.IStateStore
	assets core.AssetLedger
	oracle *testOracle
	events *memEvents
}

func testMarket() core.Market {
	return core.Market{
		CollateralFactor:     fixed.FromPercent(50),
		ReserveFactor:        fixed.FromPercent(15),
		CloseFactor:          fixed.FromPercent(50),
		LiquidationIncentive: fixed.MustFromString("1.1"),
		RateModel: compound.NewJumpModel(
			fixed.FromPercent(5),
			fixed.FromPercent(15),
			fixed.FromPercent(35),
			fixed.FromPercent(80),
		),
		State:    core.MarketStatePending,
		Cap:      unit(1_000_000),
		PTokenID: 1200,
	}
}

func setup(t *testing.T) *testEnv {
	base := kv.NewMemory()
	env := &testEnv{
		ctx:    context.Background(),
		states: state.New(base),
		assets: asset.New(base),
		oracle: &testOracle{prices: map[core.CurrencyID]fixed.Price{}},
		events: &memEvents{},
	}

	env.svc = New(&core.System{
		Admins:      []string{string(root)},
		PoolAccount: pool,
	}, env.states, env.assets, env.oracle, env.events)

	for _, currency := range []core.CurrencyID{ksm, dot, usdt} {
		market := testMarket()
		market.PTokenID = currency + 1000
		require.NoError(t, env.svc.AddMarket(env.ctx, root, currency, market))
		require.NoError(t, env.svc.ActivateMarket(env.ctx, root, currency))
		env.oracle.set(currency, "1")

		for _, who := range []core.AccountID{root, alice, bob, charlie} {
			require.NoError(t, env.assets.MintInto(env.ctx, currency, who, unit(1000)))
		}
	}

	env.events.events = nil
	return env
}

func (e *testEnv) balance(t *testing.T, currency core.CurrencyID, who core.AccountID) fixed.Balance {
	b, err := e.assets.BalanceOf(e.ctx, currency, who)
	require.NoError(t, err)
	return b
}

func (e *testEnv) vouchers(t *testing.T, currency core.CurrencyID, who core.AccountID) fixed.Balance {
	d, err := e.svc.GetDeposits(e.ctx, who, currency)
	require.NoError(t, err)
	return d.VoucherBalance
}

func (e *testEnv) ledger(t *testing.T, currency core.CurrencyID) *core.MarketLedger {
	l, err := e.states.FindLedger(e.ctx, currency)
	require.NoError(t, err)
	return l
}

// supplyCollateral mints amount and enables it as collateral
func (e *testEnv) supplyCollateral(t *testing.T, who core.AccountID, currency core.CurrencyID, amount fixed.Balance) {
	require.NoError(t, e.svc.Mint(e.ctx, who, currency, amount))
	require.NoError(t, e.svc.CollateralAsset(e.ctx, who, currency, true))
}
