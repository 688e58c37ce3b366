package hc

import (
	"context"
	"net/http"
	"time"

	"loans/handler/render"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/twitchtv/twirp"
)

// Probe reports whether a dependency can serve requests
type Probe func(ctx context.Context) error

// Handle handle hc request, any failing probe turns the check unavailable
func Handle(ver string, probes ...Probe) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/", handle(ver, probes))
	return r
}

func handle(version string, probes []Probe) http.HandlerFunc {
	b := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		for _, probe := range probes {
			if err := probe(ctx); err != nil {
				render.Error(w, twirp.NewError(twirp.Unavailable, err.Error()))
				return
			}
		}

		uptime := time.Since(b).Truncate(time.Millisecond)
		render.JSON(w, render.H{
			"uptime":  uptime.String(),
			"version": version,
		})
	}
}
