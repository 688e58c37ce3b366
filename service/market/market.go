package market

import (
	"context"
	"errors"
	"sync"

	"loans/core"
	"loans/internal/metrics"
	"loans/pkg/compound"
	"loans/pkg/fixed"
	"loans/pkg/id"

	"github.com/fox-one/pkg/logger"
)

type service struct {
	system *core.System
	states core.IStateStore
	assets core.AssetLedger
	oracle core.PriceOracle
	events core.IEventStore

	// linearises every entry point, like extrinsics inside a block
	mu sync.Mutex
}

// New new market engine, events may be nil
func New(
	system *core.System,
	states core.IStateStore,
	assets core.AssetLedger,
	oracle core.PriceOracle,
	events core.IEventStore,
) core.IMarketService {
	return &service{
		system: system,
		states: states,
		assets: assets,
		oracle: oracle,
		events: events,
	}
}

// recorder events emitted inside one scope
type recorder struct {
	events []*core.Event
}

func (r *recorder) emit(kind core.EventKind, currency core.CurrencyID, who core.AccountID, data core.EventData) {
	r.events = append(r.events, core.NewEvent(kind, currency, who, data))
}

func (r *recorder) merge(o *recorder) {
	r.events = append(r.events, o.events...)
}

// run fn in a fresh transactional scope, events are archived after commit
func (s *service) run(ctx context.Context, operation string, fn func(ctx context.Context, r *recorder) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := &recorder{}
	err := s.states.Transact(ctx, func(ctx context.Context) error {
		return fn(ctx, r)
	})
	metrics.ObserveOperation(operation, err)

	if err != nil {
		logger.FromContext(ctx).WithError(err).WithField("operation", operation).Debugln("operation rolled back")
		return err
	}

	s.archive(ctx, r.events)
	return nil
}

// view read only access, serialised with the writers
func (s *service) view(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(ctx)
}

func (s *service) archive(ctx context.Context, events []*core.Event) {
	if len(events) == 0 || s.events == nil {
		return
	}

	trace := id.GenTraceID()
	for idx, e := range events {
		e.TraceID = id.SubTraceID(trace, idx)
	}

	if err := s.events.Create(ctx, events); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("archive events")
	}
}

func (s *service) pool() core.AccountID {
	return s.system.PoolAccount
}

func (s *service) ensureAdmin(origin core.AccountID) error {
	if !s.system.IsAdmin(string(origin)) {
		return core.ErrBadOrigin
	}

	return nil
}

// activeMarket market of a listed currency open for user operations
func (s *service) activeMarket(ctx context.Context, currency core.CurrencyID) (*core.Market, error) {
	market, err := s.states.FindMarket(ctx, currency)
	if errors.Is(err, core.ErrMarketDoesNotExist) {
		return nil, core.ErrCurrencyNotEnabled
	} else if err != nil {
		return nil, err
	}

	if market.State != core.MarketStateActive {
		return nil, core.ErrMarketNotActivated
	}

	return market, nil
}

func (s *service) price(ctx context.Context, currency core.CurrencyID) (fixed.Price, error) {
	detail, ok := s.oracle.GetPrice(ctx, currency)
	if !ok || detail.Price.IsZero() {
		return fixed.Zero(), core.ErrPriceOracleNotReady
	}

	return detail.Price, nil
}

// value of amount underlying at price, in price units
func value(price fixed.Price, amount fixed.Balance) (fixed.Fixed, error) {
	return price.Mul(fixed.FromInner(amount))
}

func (s *service) totalCash(ctx context.Context, currency core.CurrencyID) (fixed.Balance, error) {
	return s.assets.BalanceOf(ctx, currency, s.pool())
}

func (s *service) ensureCash(ctx context.Context, currency core.CurrencyID, amount fixed.Balance) error {
	cash, err := s.totalCash(ctx, currency)
	if err != nil {
		return err
	}

	if cash.LessThan(amount) {
		return core.ErrInsufficientCash
	}

	return nil
}

func (s *service) currentBorrowBalance(ctx context.Context, who core.AccountID, currency core.CurrencyID, ledger *core.MarketLedger) (fixed.Balance, error) {
	snapshot, err := s.states.FindBorrowSnapshot(ctx, currency, who)
	if err != nil {
		return fixed.Balance{}, err
	}

	return compound.BorrowBalance(snapshot.Principal, snapshot.BorrowIndex, ledger.BorrowIndex)
}
