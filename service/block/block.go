package block

import (
	"context"
	"time"

	"loans/core"
	"loans/internal/compound"
)

type service struct {
	genesis         int64
	secondsPerBlock int64
}

// New new block service
func New(app core.App) core.IBlockService {
	return &service{
		genesis:         app.Genesis,
		secondsPerBlock: app.SecondsPerBlock,
	}
}

// CurrentBlock current block
func (s *service) CurrentBlock(ctx context.Context) (*core.Block, error) {
	return s.GetBlock(ctx, time.Now())
}

// GetBlock get block by time
func (s *service) GetBlock(_ context.Context, t time.Time) (*core.Block, error) {
	number, err := compound.GetBlockByTime(s.secondsPerBlock, s.genesis, t)
	if err != nil {
		return nil, err
	}

	return &core.Block{
		Number:    number,
		Timestamp: compound.BlockTime(s.secondsPerBlock, s.genesis, number),
	}, nil
}
