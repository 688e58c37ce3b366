package rest

import (
	"net/http"

	"loans/core"
	"loans/handler/param"
	"loans/handler/render"
)

func borrowActionHandler(marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body amountRequest
		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		done(w, marketSrv.Borrow(r.Context(), accountParam(r), body.Currency, body.Amount))
	}
}

func repayHandler(marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body amountRequest
		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		done(w, marketSrv.RepayBorrow(r.Context(), accountParam(r), body.Currency, body.Amount))
	}
}

func repayAllHandler(marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body currencyRequest
		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		done(w, marketSrv.RepayBorrowAll(r.Context(), accountParam(r), body.Currency))
	}
}
