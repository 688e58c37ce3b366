package rest

import (
	"net/http"

	"loans/core"
	"loans/handler/param"
	"loans/handler/render"
	"loans/pkg/fixed"
)

func liquidateHandler(marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Borrower           string          `json:"borrower" valid:"required"`
			LiquidateCurrency  core.CurrencyID `json:"liquidate_currency"`
			RepayAmount        fixed.Balance   `json:"repay_amount"`
			CollateralCurrency core.CurrencyID `json:"collateral_currency"`
		}
		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		err := marketSrv.LiquidateBorrow(
			r.Context(),
			accountParam(r),
			core.AccountID(body.Borrower),
			body.LiquidateCurrency,
			body.RepayAmount,
			body.CollateralCurrency,
		)
		done(w, err)
	}
}
