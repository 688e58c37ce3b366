package core

import (
	"context"

	"loans/pkg/fixed"

	"github.com/shopspring/decimal"
)

// PriceDetail price and the unix time it was fed
type PriceDetail struct {
	Price     fixed.Price `json:"price"`
	Timestamp int64       `json:"timestamp"`
}

// PriceTicker price ticker pulled from the price endpoint
type PriceTicker struct {
	Provider string          `json:"provider,omitempty"`
	Symbol   string          `json:"symbol,omitempty"`
	Price    decimal.Decimal `json:"price,omitempty"`
}

// PriceOracle price feed consumed by the engine
type PriceOracle interface {
	// GetPrice returns false if the currency has no price yet
	GetPrice(ctx context.Context, currency CurrencyID) (*PriceDetail, bool)
}

// IPriceOracleService price oracle that can be fed
type IPriceOracleService interface {
	PriceOracle
	FeedPrice(ctx context.Context, currency CurrencyID, price fixed.Price) error
	ListPrices(ctx context.Context) (map[CurrencyID]*PriceDetail, error)
	// PullPriceTicker pull the latest ticker of currency from the price endpoint
	PullPriceTicker(ctx context.Context, currency CurrencyID) (*PriceTicker, error)
}
