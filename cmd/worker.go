package cmd

import (
	"context"
	"errors"
	"time"

	"loans/core"
	marketservice "loans/service/market"
	"loans/worker"
	"loans/worker/block"
	"loans/worker/liquidity"
	"loans/worker/priceoracle"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "run block, price and liquidity workers",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		e := provideEngine()
		defer e.Close()

		jobs, err := startWorkers(ctx, e)
		if err != nil {
			log.WithError(err).Fatalln("start workers")
		}

		ctx = signal.WithContext(ctx)
		<-ctx.Done()

		stopWorkers(jobs)
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func bootstrap(ctx context.Context, e *engine) error {
	if len(cfg.Markets) == 0 && len(cfg.Balances) == 0 {
		return nil
	}

	if len(cfg.Admins) == 0 {
		return errors.New("genesis markets and balances need at least one admin")
	}

	return marketservice.Bootstrap(ctx, e.markets, core.AccountID(cfg.Admins[0]), cfg.Markets, cfg.Balances)
}

func startWorkers(ctx context.Context, e *engine) ([]worker.IJob, error) {
	if err := bootstrap(ctx, e); err != nil {
		return nil, err
	}

	blockWorker, err := block.New(provideConfig(), e.blocks, e.markets)
	if err != nil {
		return nil, err
	}

	priceWorker, err := priceoracle.New(provideConfig(), e.markets, e.prices)
	if err != nil {
		return nil, err
	}

	liquidityWorker, err := liquidity.New(provideConfig(), e.states, e.markets)
	if err != nil {
		return nil, err
	}

	jobs := []worker.IJob{blockWorker, priceWorker, liquidityWorker}
	for _, job := range jobs {
		if err := job.Start(); err != nil {
			return nil, err
		}
	}

	logger.FromContext(ctx).Infoln("workers started", len(jobs))
	return jobs, nil
}

func stopWorkers(jobs []worker.IJob) {
	done := make(chan struct{})
	go func() {
		for _, job := range jobs {
			_ = job.Stop()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
	}
}
