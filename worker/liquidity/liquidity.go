package liquidity

import (
	"context"
	"sync/atomic"
	"time"

	"loans/core"
	"loans/internal/metrics"
	"loans/worker"

	"github.com/fox-one/pkg/logger"
	"golang.org/x/sync/errgroup"
)

const concurrency = 16

// Worker scans borrowers and reports accounts in shortfall
type Worker struct {
	*worker.BaseJob
	StateStore    core.IStateStore
	MarketService core.IMarketService
}

// New new liquidity worker
func New(cfg *core.Config, stateStore core.IStateStore, marketService core.IMarketService) (*Worker, error) {
	w := &Worker{
		StateStore:    stateStore,
		MarketService: marketService,
	}

	job, err := worker.NewBaseJob("liquidity", cfg.App.Location, time.Minute, func(ctx context.Context) error {
		_, err := w.Scan(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	w.BaseJob = job
	return w, nil
}

// Scan count the borrowers whose debt exceeds their borrowing power
func (w *Worker) Scan(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx).WithField("worker", "liquidity")

	borrowers, err := w.borrowers(ctx)
	if err != nil {
		return 0, err
	}

	var shortfalls int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, who := range borrowers {
		who := who
		g.Go(func() error {
			liquidity, err := w.MarketService.GetAccountLiquidity(ctx, who)
			if err != nil {
				log.WithError(err).WithField("account", who).Errorln("account liquidity")
				return nil
			}

			if liquidity.Liquidatable() {
				atomic.AddInt64(&shortfalls, 1)
				log.WithField("account", who).Infoln("shortfall", liquidity.Shortfall)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	metrics.SetShortfalls(int(shortfalls))
	return int(shortfalls), nil
}

func (w *Worker) borrowers(ctx context.Context) ([]core.AccountID, error) {
	currencies, err := w.StateStore.ListCurrencies(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[core.AccountID]bool)
	var borrowers []core.AccountID
	for _, currency := range currencies {
		accounts, err := w.StateStore.ListBorrowers(ctx, currency)
		if err != nil {
			return nil, err
		}

		for _, who := range accounts {
			if !seen[who] {
				seen[who] = true
				borrowers = append(borrowers, who)
			}
		}
	}

	return borrowers, nil
}
