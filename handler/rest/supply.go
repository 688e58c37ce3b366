package rest

import (
	"net/http"

	"loans/core"
	"loans/handler/param"
	"loans/handler/render"
	"loans/pkg/fixed"
)

type amountRequest struct {
	Currency core.CurrencyID `json:"currency"`
	Amount   fixed.Balance   `json:"amount"`
}

type currencyRequest struct {
	Currency core.CurrencyID `json:"currency"`
}

func mintHandler(marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body amountRequest
		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		done(w, marketSrv.Mint(r.Context(), accountParam(r), body.Currency, body.Amount))
	}
}

func redeemHandler(marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body amountRequest
		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		done(w, marketSrv.Redeem(r.Context(), accountParam(r), body.Currency, body.Amount))
	}
}

func redeemAllHandler(marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body currencyRequest
		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		done(w, marketSrv.RedeemAll(r.Context(), accountParam(r), body.Currency))
	}
}

func collateralHandler(marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Currency core.CurrencyID `json:"currency"`
			Enable   bool            `json:"enable"`
		}
		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		done(w, marketSrv.CollateralAsset(r.Context(), accountParam(r), body.Currency, body.Enable))
	}
}

func transferHandler(marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Currency core.CurrencyID `json:"currency"`
			To       string          `json:"to" valid:"required"`
			Amount   fixed.Balance   `json:"amount"`
		}
		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		done(w, marketSrv.TransferVouchers(r.Context(), accountParam(r), core.AccountID(body.To), body.Currency, body.Amount))
	}
}
