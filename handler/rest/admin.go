package rest

import (
	"net/http"

	"loans/core"
	"loans/handler/param"
	"loans/handler/render"
	"loans/pkg/compound"
	"loans/pkg/fixed"
)

func addMarketHandler(marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body core.GenesisMarket
		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		market, err := body.Market()
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		done(w, marketSrv.AddMarket(r.Context(), origin(r), core.CurrencyID(body.Currency), market))
	}
}

func activateMarketHandler(marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body currencyRequest
		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		done(w, marketSrv.ActivateMarket(r.Context(), origin(r), body.Currency))
	}
}

func updateMarketHandler(marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			core.MarketUpdate
			Currency core.CurrencyID `json:"currency"`
		}
		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		done(w, marketSrv.UpdateMarket(r.Context(), origin(r), body.Currency, body.MarketUpdate))
	}
}

func forceUpdateMarketHandler(marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Currency core.CurrencyID `json:"currency"`
			Market   core.Market     `json:"market"`
		}
		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		done(w, marketSrv.ForceUpdateMarket(r.Context(), origin(r), body.Currency, body.Market))
	}
}

func rateModelHandler(marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Currency  core.CurrencyID            `json:"currency"`
			RateModel compound.InterestRateModel `json:"rate_model"`
		}
		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		done(w, marketSrv.SetRateModel(r.Context(), origin(r), body.Currency, body.RateModel))
	}
}

func liquidationIncentiveHandler(marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Currency  core.CurrencyID `json:"currency"`
			Incentive fixed.Rate      `json:"liquidation_incentive"`
		}
		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		done(w, marketSrv.SetLiquidationIncentive(r.Context(), origin(r), body.Currency, body.Incentive))
	}
}

type reservesRequest struct {
	Currency core.CurrencyID `json:"currency"`
	Account  string          `json:"account" valid:"required"`
	Amount   fixed.Balance   `json:"amount"`
}

func addReservesHandler(marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body reservesRequest
		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		done(w, marketSrv.AddReserves(r.Context(), origin(r), core.AccountID(body.Account), body.Currency, body.Amount))
	}
}

func reduceReservesHandler(marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body reservesRequest
		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		done(w, marketSrv.ReduceReserves(r.Context(), origin(r), core.AccountID(body.Account), body.Currency, body.Amount))
	}
}

// issuanceRequest credits or debits account, reusing the reserves body
type issuanceRequest = reservesRequest

func issueAssetHandler(marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body issuanceRequest
		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		done(w, marketSrv.IssueAsset(r.Context(), origin(r), core.AccountID(body.Account), body.Currency, body.Amount))
	}
}

func burnAssetHandler(marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body issuanceRequest
		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		done(w, marketSrv.BurnAsset(r.Context(), origin(r), core.AccountID(body.Account), body.Currency, body.Amount))
	}
}
