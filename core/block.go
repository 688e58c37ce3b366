package core

import (
	"context"
	"time"
)

// Block a block of the host chain, every block has one timestamp
type Block struct {
	Number    int64     `json:"number"`
	Timestamp time.Time `json:"timestamp"`
}

// IBlockService block clock, maps wall clock time to blocks
type IBlockService interface {
	GetBlock(ctx context.Context, t time.Time) (*Block, error)
	CurrentBlock(ctx context.Context) (*Block, error)
}
