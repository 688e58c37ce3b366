package core

import (
	"context"
)

// IStateStore asset ledger and account positions of the engine
//
// reads and writes go to the transactional scope carried by ctx, if any
type IStateStore interface {
	// Transact runs fn in a new scope, writes made with the ctx passed to fn
	// are committed if fn returns nil and discarded otherwise
	Transact(ctx context.Context, fn func(ctx context.Context) error) error

	ListCurrencies(ctx context.Context) ([]CurrencyID, error)
	// FindMarket returns ErrMarketDoesNotExist if not found
	FindMarket(ctx context.Context, currency CurrencyID) (*Market, error)
	SaveMarket(ctx context.Context, currency CurrencyID, market *Market) error

	FindLedger(ctx context.Context, currency CurrencyID) (*MarketLedger, error)
	SaveLedger(ctx context.Context, currency CurrencyID, ledger *MarketLedger) error

	// FindBorrowSnapshot returns a zero snapshot if not found
	FindBorrowSnapshot(ctx context.Context, currency CurrencyID, who AccountID) (*BorrowSnapshot, error)
	SaveBorrowSnapshot(ctx context.Context, currency CurrencyID, who AccountID, snapshot *BorrowSnapshot) error
	ListBorrowers(ctx context.Context, currency CurrencyID) ([]AccountID, error)

	// FindDeposits returns a zero record if not found
	FindDeposits(ctx context.Context, currency CurrencyID, who AccountID) (*Deposits, error)
	// SaveDeposits removes the record when the voucher balance is zero
	SaveDeposits(ctx context.Context, currency CurrencyID, who AccountID, deposits *Deposits) error

	FindEarnedSnapshot(ctx context.Context, currency CurrencyID, who AccountID) (*EarnedSnapshot, error)
	SaveEarnedSnapshot(ctx context.Context, currency CurrencyID, who AccountID, snapshot *EarnedSnapshot) error

	LastAccruedTimestamp(ctx context.Context) (uint64, error)
	SetLastAccruedTimestamp(ctx context.Context, ts uint64) error
}
