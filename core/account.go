package core

import (
	"loans/pkg/fixed"
)

// AccountLiquidity borrowing power left or missing, in price units
//
// at most one of the two is non zero
type AccountLiquidity struct {
	Liquidity fixed.Fixed `json:"liquidity"`
	Shortfall fixed.Fixed `json:"shortfall"`
}

// Liquidatable an account is liquidatable iff it has a shortfall
func (a *AccountLiquidity) Liquidatable() bool {
	return !a.Shortfall.IsZero()
}
