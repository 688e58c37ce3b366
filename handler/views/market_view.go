package views

import (
	"loans/core"
	"loans/pkg/fixed"
)

// Market market view
type Market struct {
	*core.MarketStatus
	Price *fixed.Price `json:"price,omitempty"`
}

// MarketView status and, when the oracle has one, the current price of a market
func MarketView(status *core.MarketStatus, price *core.PriceDetail) *Market {
	view := &Market{MarketStatus: status}
	if price != nil {
		view.Price = &price.Price
	}

	return view
}
