package compound

import (
	"loans/pkg/fixed"
)

// VoucherAmount vouchers = underlying / exchange_rate, floored
func VoucherAmount(underlying fixed.Balance, exchangeRate fixed.Rate) (fixed.Balance, error) {
	v, err := fixed.FromInner(underlying).Div(exchangeRate)
	if err != nil {
		return fixed.Balance{}, err
	}

	return v.Inner(), nil
}

// UnderlyingAmount underlying = vouchers * exchange_rate, floored
func UnderlyingAmount(vouchers fixed.Balance, exchangeRate fixed.Rate) (fixed.Balance, error) {
	return exchangeRate.MulInt(vouchers)
}
