package handler

import (
	"context"
	"net/http"

	"loans/core"
	"loans/handler/auth"
	"loans/handler/hc"
	"loans/handler/render"
	"loans/handler/rest"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/twitchtv/twirp"
)

// Server server
type Server struct {
	system   *core.System
	markets  core.IMarketService
	prices   core.IPriceOracleService
	events   core.IEventStore
	session  core.Session
	wrapResp bool
}

// New new server function
func New(
	system *core.System,
	markets core.IMarketService,
	prices core.IPriceOracleService,
	events core.IEventStore,
	session core.Session,
) Server {
	return Server{
		system:   system,
		markets:  markets,
		prices:   prices,
		events:   events,
		session:  session,
		wrapResp: true,
	}
}

// Handler root handler with health check, metrics and the rest api under /api
func (s Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(cors.AllowAll().Handler)
	r.Use(logger.WithRequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.NewCompressor(5).Handler)

	r.Mount("/hc", hc.Handle(s.system.Version, s.readiness))
	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/api", s.HandleRestAPI())

	return r
}

// readiness the engine answers reads from its state store
func (s Server) readiness(ctx context.Context) error {
	_, err := s.markets.ListMarkets(ctx)
	return err
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(render.WrapResponse(s.wrapResp))
	r.Use(auth.HandleAuthentication(s.session))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, twirp.NotFoundError("not found"))
	})

	r.Mount("/", rest.Handle(s.system, s.markets, s.prices, s.events))
	return r
}
