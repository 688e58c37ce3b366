package core

import (
	"context"

	"loans/pkg/fixed"
)

// AssetLedger fungible asset transfer capability
type AssetLedger interface {
	Transfer(ctx context.Context, currency CurrencyID, from, to AccountID, amount fixed.Balance, keepAlive bool) error
	MintInto(ctx context.Context, currency CurrencyID, to AccountID, amount fixed.Balance) error
	BurnFrom(ctx context.Context, currency CurrencyID, from AccountID, amount fixed.Balance) error
	BalanceOf(ctx context.Context, currency CurrencyID, who AccountID) (fixed.Balance, error)
	TotalIssuance(ctx context.Context, currency CurrencyID) (fixed.Balance, error)
}
