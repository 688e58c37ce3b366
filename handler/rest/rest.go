package rest

import (
	"errors"
	"net/http"

	"loans/core"
	"loans/handler/auth"
	"loans/handler/render"
	"loans/handler/request"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// Handle handle rest api request
func Handle(
	system *core.System,
	marketService core.IMarketService,
	priceService core.IPriceOracleService,
	eventStore core.IEventStore,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/markets", allMarketsHandler(marketService, priceService))
	router.Get("/markets/{currency}", marketHandler(marketService, priceService))
	router.Get("/prices", pricesHandler(priceService))
	router.Get("/events", eventsHandler(eventStore))

	router.Route("/accounts/{account}", func(r chi.Router) {
		r.Get("/liquidity", liquidityHandler(marketService))
		r.Get("/borrows/{currency}", borrowHandler(marketService))
		r.Get("/deposits/{currency}", depositsHandler(marketService))

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAccount("account"))

			r.Post("/mint", mintHandler(marketService))
			r.Post("/redeem", redeemHandler(marketService))
			r.Post("/redeem-all", redeemAllHandler(marketService))
			r.Post("/collateral", collateralHandler(marketService))
			r.Post("/transfer", transferHandler(marketService))
			r.Post("/borrow", borrowActionHandler(marketService))
			r.Post("/repay", repayHandler(marketService))
			r.Post("/repay-all", repayAllHandler(marketService))
			r.Post("/liquidate", liquidateHandler(marketService))
		})
	})

	router.Route("/admin", func(r chi.Router) {
		r.Use(auth.RequireLogin())

		r.Post("/add-market", addMarketHandler(marketService))
		r.Post("/activate-market", activateMarketHandler(marketService))
		r.Post("/update-market", updateMarketHandler(marketService))
		r.Post("/force-update-market", forceUpdateMarketHandler(marketService))
		r.Post("/rate-model", rateModelHandler(marketService))
		r.Post("/liquidation-incentive", liquidationIncentiveHandler(marketService))
		r.Post("/add-reserves", addReservesHandler(marketService))
		r.Post("/reduce-reserves", reduceReservesHandler(marketService))
		r.Post("/prices", feedPriceHandler(system, priceService))
		r.Post("/issue", issueAssetHandler(marketService))
		r.Post("/burn", burnAssetHandler(marketService))
	})

	return router
}

func currencyParam(r *http.Request) (core.CurrencyID, error) {
	currency, err := core.ParseCurrencyID(chi.URLParam(r, "currency"))
	if err != nil {
		return 0, twirp.InvalidArgumentError("currency", err.Error())
	}

	return currency, nil
}

func accountParam(r *http.Request) core.AccountID {
	return core.AccountID(chi.URLParam(r, "account"))
}

// origin the account authenticated by the bearer token
func origin(r *http.Request) core.AccountID {
	o, _ := request.NewContext(r.Context()).GetOrigin()
	return o
}

func done(w http.ResponseWriter, err error) {
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, render.H{})
}
