package rest

import (
	"net/http"

	"loans/core"
	"loans/handler/render"
	"loans/handler/views"
)

func allMarketsHandler(marketSrv core.IMarketService, oracle core.PriceOracle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		markets, err := marketSrv.ListMarkets(ctx)
		if err != nil {
			render.Error(w, err)
			return
		}

		marketViews := make([]*views.Market, 0, len(markets))
		for _, m := range markets {
			price, _ := oracle.GetPrice(ctx, m.Currency)
			marketViews = append(marketViews, views.MarketView(m, price))
		}

		render.JSON(w, marketViews)
	}
}

func marketHandler(marketSrv core.IMarketService, oracle core.PriceOracle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		currency, err := currencyParam(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		status, err := marketSrv.GetMarketStatus(ctx, currency)
		if err != nil {
			render.Error(w, err)
			return
		}

		price, _ := oracle.GetPrice(ctx, currency)
		render.JSON(w, views.MarketView(status, price))
	}
}

func pricesHandler(oracle core.IPriceOracleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prices, err := oracle.ListPrices(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, prices)
	}
}
