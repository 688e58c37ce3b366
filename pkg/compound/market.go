package compound

import (
	"loans/pkg/fixed"
)

const (
	// SecondsPerYear 365 days
	SecondsPerYear uint64 = 365 * 24 * 60 * 60
)

var (
	// InitialExchangeRate exchange rate of a market without any voucher
	InitialExchangeRate = fixed.MustFromString("0.02")
	// InitialBorrowIndex borrow index of a new market
	InitialBorrowIndex = fixed.One()
)

// UtilizationRatio utilization = borrows / (cash + borrows - reserves), zero without borrows
func UtilizationRatio(cash, borrows, reserves fixed.Balance) (fixed.Ratio, error) {
	if borrows.IsZero() {
		return fixed.Zero(), nil
	}

	total, err := cash.Add(borrows)
	if err != nil {
		return fixed.Zero(), err
	}

	if total, err = total.Sub(reserves); err != nil {
		return fixed.Zero(), err
	}

	return fixed.CheckedFromRational(borrows, total)
}

// ExchangeRate exchange_rate = (cash + borrows - reserves) / total_supply
func ExchangeRate(cash, borrows, reserves, totalSupply fixed.Balance) (fixed.Rate, error) {
	total, err := cash.Add(borrows)
	if err != nil {
		return fixed.Zero(), err
	}

	if total, err = total.Sub(reserves); err != nil {
		return fixed.Zero(), err
	}

	return fixed.CheckedFromRational(total, totalSupply)
}

// AccruedInterest interest = borrow_rate * amount * delta_time / SecondsPerYear
func AccruedInterest(borrowRate fixed.Rate, amount fixed.Balance, deltaTime uint64) (fixed.Balance, error) {
	v, err := borrowRate.MulInt(amount)
	if err != nil {
		return fixed.Balance{}, err
	}

	if v, err = v.MulUint64(deltaTime); err != nil {
		return fixed.Balance{}, err
	}

	return v.DivUint64(SecondsPerYear)
}

// IncrementIndex increment = borrow_rate * index * delta_time / SecondsPerYear
func IncrementIndex(borrowRate, index fixed.Rate, deltaTime uint64) (fixed.Rate, error) {
	v, err := borrowRate.Mul(index)
	if err != nil {
		return fixed.Zero(), err
	}

	if v, err = v.Mul(fixed.FromInteger(deltaTime)); err != nil {
		return fixed.Zero(), err
	}

	return v.Div(fixed.FromInteger(SecondsPerYear))
}
