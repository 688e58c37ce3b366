package views

import (
	"loans/core"
	"loans/pkg/compound"
	"loans/pkg/fixed"
)

// Supply supply view
type Supply struct {
	core.Deposits
	Account    core.AccountID  `json:"account"`
	Currency   core.CurrencyID `json:"currency"`
	Underlying fixed.Balance   `json:"underlying"`
}

// SupplyView deposits with the underlying they redeem for at exchangeRate
func SupplyView(who core.AccountID, currency core.CurrencyID, deposits *core.Deposits, exchangeRate fixed.Rate) (*Supply, error) {
	underlying, err := compound.UnderlyingAmount(deposits.VoucherBalance, exchangeRate)
	if err != nil {
		return nil, err
	}

	return &Supply{
		Deposits:   *deposits,
		Account:    who,
		Currency:   currency,
		Underlying: underlying,
	}, nil
}
