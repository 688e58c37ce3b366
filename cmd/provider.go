package cmd

import (
	"loans/core"
	"loans/service/block"
	marketservice "loans/service/market"
	"loans/service/oracle"
	"loans/service/session"
	"loans/store/asset"
	"loans/store/event"
	"loans/store/kv"
	"loans/store/state"

	"github.com/fox-one/pkg/store/db"
	"github.com/sirupsen/logrus"
)

func provideConfig() *core.Config {
	return &cfg
}

func provideSystem() *core.System {
	return &core.System{
		Admins:      cfg.Admins,
		PoolAccount: core.AccountID(cfg.PoolAccount),
		Version:     rootCmd.Version,
	}
}

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideKV() kv.Store {
	store, err := kv.Open(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		panic(err)
	}

	return store
}

// ---------------store-----------------------------------------

func provideStateStore(base kv.Store) core.IStateStore {
	return state.New(base)
}

func provideAssetLedger(base kv.Store) core.AssetLedger {
	return asset.New(base)
}

func provideEventStore(db *db.DB) core.IEventStore {
	return event.New(db)
}

// ------------------service------------------------------------

func provideBlockService() core.IBlockService {
	return block.New(cfg.App)
}

func providePriceService() core.IPriceOracleService {
	s, err := oracle.New(cfg.PriceOracle)
	if err != nil {
		panic(err)
	}

	return s
}

func provideSession() core.Session {
	s, err := session.New(cfg.Auth, 1024)
	if err != nil {
		panic(err)
	}

	return s
}

func provideMarketService(
	system *core.System,
	states core.IStateStore,
	assets core.AssetLedger,
	prices core.IPriceOracleService,
	events core.IEventStore,
) core.IMarketService {
	return marketservice.New(system, states, assets, prices, events)
}

// engine everything a command needs to drive the markets
type engine struct {
	system  *core.System
	base    kv.Store
	db      *db.DB
	states  core.IStateStore
	events  core.IEventStore
	blocks  core.IBlockService
	prices  core.IPriceOracleService
	markets core.IMarketService
}

func provideEngine() *engine {
	e := &engine{
		system: provideSystem(),
		base:   provideKV(),
		db:     provideDatabase(),
		blocks: provideBlockService(),
		prices: providePriceService(),
	}

	e.states = provideStateStore(e.base)
	e.events = provideEventStore(e.db)
	e.markets = provideMarketService(e.system, e.states, provideAssetLedger(e.base), e.prices, e.events)
	return e
}

func (e *engine) Close() {
	if err := e.base.Close(); err != nil {
		logrus.WithError(err).Errorln("close kv store")
	}

	e.db.Close()
}
