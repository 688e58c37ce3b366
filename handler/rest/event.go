package rest

import (
	"net/http"

	"loans/core"
	"loans/handler/param"
	"loans/handler/render"

	"github.com/twitchtv/twirp"
)

type eventQuery struct {
	Offset int64 `json:"offset"`
	Limit  int   `json:"limit"`
}

func eventsHandler(events core.IEventStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var query eventQuery
		if err := param.BindQuery(r, &query); err != nil {
			render.Error(w, twirp.InvalidArgumentError("query", err.Error()))
			return
		}

		list, err := events.List(r.Context(), query.Offset, query.Limit)
		if err != nil {
			render.Error(w, err)
			return
		}

		next := query.Offset
		if len(list) > 0 {
			next = list[len(list)-1].ID
		}

		render.JSON(w, render.H{
			"events":      list,
			"next_offset": next,
		})
	}
}
