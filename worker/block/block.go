package block

import (
	"context"
	"time"

	"loans/core"
	"loans/worker"

	"github.com/fox-one/pkg/logger"
)

// Worker block worker, drives interest accrual once per block
type Worker struct {
	*worker.BaseJob
	BlockService  core.IBlockService
	MarketService core.IMarketService

	last int64
}

// New new block worker
func New(cfg *core.Config, blockService core.IBlockService, marketService core.IMarketService) (*Worker, error) {
	w := &Worker{
		BlockService:  blockService,
		MarketService: marketService,
		last:          -1,
	}

	interval := time.Duration(cfg.App.SecondsPerBlock) * time.Second
	job, err := worker.NewBaseJob("block", cfg.App.Location, interval, w.onWork)
	if err != nil {
		return nil, err
	}

	w.BaseJob = job
	return w, nil
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "block")

	block, err := w.BlockService.CurrentBlock(ctx)
	if err != nil {
		log.WithError(err).Errorln("current block")
		return err
	}

	if block.Number == w.last {
		return nil
	}

	if err := w.MarketService.OnNewBlock(ctx, uint64(block.Timestamp.Unix())); err != nil {
		log.WithError(err).WithField("block", block.Number).Errorln("on new block")
		return err
	}

	log.Debugln("new block", block.Number)
	w.last = block.Number
	return nil
}
