package auth

import (
	"net/http"
	"strings"

	"loans/core"
	"loans/handler/render"
	"loans/handler/request"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// HandleAuthentication put the account of a valid bearer token into the request context,
// requests without one pass through anonymous
func HandleAuthentication(session core.Session) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logger.FromContext(ctx)

			accessToken := getBearerToken(r)
			if accessToken == "" {
				next.ServeHTTP(w, r)
				return
			}

			account, err := session.Login(ctx, accessToken)
			if err != nil {
				next.ServeHTTP(w, r)
				log.WithError(err).Debugln("parse access token error:", err)
				return
			}

			next.ServeHTTP(w, r.WithContext(request.NewContext(ctx).WithOrigin(account)))
		}

		return http.HandlerFunc(fn)
	}
}

// RequireLogin refuse anonymous requests
func RequireLogin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			if _, ok := request.NewContext(r.Context()).GetOrigin(); !ok {
				render.Error(w, twirp.NewError(twirp.Unauthenticated, "login required"))
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}

// RequireAccount only the owner of the account in url param may act on it
func RequireAccount(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			origin, ok := request.NewContext(r.Context()).GetOrigin()
			if !ok {
				render.Error(w, twirp.NewError(twirp.Unauthenticated, "login required"))
				return
			}

			if account := chi.URLParam(r, param); core.AccountID(account) != origin {
				logger.FromContext(r.Context()).Infoln("refused", origin, "acting on", account)
				render.Error(w, core.ErrBadOrigin)
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}

func getBearerToken(r *http.Request) string {
	s := r.Header.Get("Authorization")
	if !strings.HasPrefix(s, "Bearer ") {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(s, "Bearer "))
}
