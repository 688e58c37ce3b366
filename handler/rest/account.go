package rest

import (
	"net/http"

	"loans/core"
	"loans/handler/render"
	"loans/handler/views"
)

func liquidityHandler(marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		who := accountParam(r)

		liquidity, err := marketSrv.GetAccountLiquidity(r.Context(), who)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Liquidity{
			AccountLiquidity: liquidity,
			Account:          who,
			Liquidatable:     liquidity.Liquidatable(),
		})
	}
}

func borrowHandler(marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		who := accountParam(r)

		currency, err := currencyParam(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		balance, err := marketSrv.CurrentBorrowBalance(r.Context(), who, currency)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Borrow{
			Account:  who,
			Currency: currency,
			Balance:  balance,
		})
	}
}

func depositsHandler(marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		who := accountParam(r)

		currency, err := currencyParam(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		deposits, err := marketSrv.GetDeposits(ctx, who, currency)
		if err != nil {
			render.Error(w, err)
			return
		}

		rate, err := marketSrv.ExchangeRate(ctx, currency)
		if err != nil {
			render.Error(w, err)
			return
		}

		view, err := views.SupplyView(who, currency, deposits, rate)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, view)
	}
}
