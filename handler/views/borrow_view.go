package views

import (
	"loans/core"
	"loans/pkg/fixed"
)

// Borrow borrow view
type Borrow struct {
	Account  core.AccountID  `json:"account"`
	Currency core.CurrencyID `json:"currency"`
	Balance  fixed.Balance   `json:"balance"`
}

// Liquidity account liquidity view
type Liquidity struct {
	*core.AccountLiquidity
	Account      core.AccountID `json:"account"`
	Liquidatable bool           `json:"liquidatable"`
}
