package compound

import (
	"errors"
	"time"
)

var (
	// ErrInvalidBlockTime block time should be positive
	ErrInvalidBlockTime = errors.New("secondsPerBlock should not be less than or equal zero")
	// ErrBeforeGenesis time before the genesis block
	ErrBeforeGenesis = errors.New("invalid blocks")
)

// CurrentBlock current block
func CurrentBlock(secondsPerBlock, genesis int64) (int64, error) {
	return GetBlockByTime(secondsPerBlock, genesis, time.Now())
}

// GetBlockByTime block number of t, block 0 starts at genesis
func GetBlockByTime(secondsPerBlock, genesis int64, t time.Time) (int64, error) {
	if secondsPerBlock <= 0 {
		return 0, ErrInvalidBlockTime
	}

	seconds := t.UTC().Unix() - genesis
	if seconds < 0 {
		return 0, ErrBeforeGenesis
	}

	return seconds / secondsPerBlock, nil
}

// BlockTime timestamp of block
func BlockTime(secondsPerBlock, genesis, block int64) time.Time {
	return time.Unix(genesis+block*secondsPerBlock, 0).UTC()
}
