package core

import (
	"loans/pkg/fixed"
)

// Deposits voucher balance of an account in one market
type Deposits struct {
	VoucherBalance fixed.Balance `json:"voucher_balance" msgpack:"voucher_balance"`
	IsCollateral   bool          `json:"is_collateral" msgpack:"is_collateral"`
}

// EarnedSnapshot interest earned by a depositor up to ExchangeRatePrior
type EarnedSnapshot struct {
	TotalEarnedPrior  fixed.Balance `json:"total_earned_prior" msgpack:"total_earned_prior"`
	ExchangeRatePrior fixed.Rate    `json:"exchange_rate_prior" msgpack:"exchange_rate_prior"`
}
