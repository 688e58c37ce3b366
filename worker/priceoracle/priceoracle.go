package priceoracle

import (
	"context"
	"errors"
	"time"

	"loans/core"
	"loans/pkg/fixed"
	"loans/service/oracle"
	"loans/worker"

	"github.com/fox-one/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Worker pulls tickers of the listed markets and feeds the oracle
type Worker struct {
	*worker.BaseJob
	MarketService      core.IMarketService
	PriceOracleService core.IPriceOracleService
}

// New new price oracle worker
func New(cfg *core.Config, marketService core.IMarketService, priceSrv core.IPriceOracleService) (*Worker, error) {
	w := &Worker{
		MarketService:      marketService,
		PriceOracleService: priceSrv,
	}

	job, err := worker.NewBaseJob("priceoracle", cfg.App.Location, 10*time.Second, w.onWork)
	if err != nil {
		return nil, err
	}

	w.BaseJob = job
	return w, nil
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "priceoracle")

	markets, err := w.MarketService.ListMarkets(ctx)
	if err != nil {
		log.WithError(err).Errorln("list markets")
		return err
	}

	var g errgroup.Group
	for _, m := range markets {
		currency := m.Currency
		g.Go(func() error {
			ticker, err := w.PriceOracleService.PullPriceTicker(ctx, currency)
			if errors.Is(err, oracle.ErrNoSymbol) {
				return nil
			} else if err != nil {
				log.WithError(err).WithField("currency", currency).Errorln("pull price ticker")
				return nil
			}

			price, err := fixed.FromDecimal(ticker.Price)
			if err != nil || price.IsZero() {
				log.WithField("currency", currency).Errorln("invalid ticker price:", ticker.Symbol, ":", ticker.Price)
				return nil
			}

			return w.PriceOracleService.FeedPrice(ctx, currency, price)
		})
	}

	return g.Wait()
}
