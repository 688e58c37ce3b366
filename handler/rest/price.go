package rest

import (
	"net/http"

	"loans/core"
	"loans/handler/param"
	"loans/handler/render"
	"loans/pkg/fixed"
)

func feedPriceHandler(system *core.System, oracle core.IPriceOracleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !system.IsAdmin(string(origin(r))) {
			render.Error(w, core.ErrBadOrigin)
			return
		}

		var body struct {
			Currency core.CurrencyID `json:"currency"`
			Price    fixed.Price     `json:"price"`
		}
		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		done(w, oracle.FeedPrice(r.Context(), body.Currency, body.Price))
	}
}
