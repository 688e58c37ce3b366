package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"loans/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/uuid"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"
)

// ErrNoSecret the auth secret is not configured
var ErrNoSecret = errors.New("session: auth secret is empty")

// cacheTTL how long a verified token is remembered
const cacheTTL = time.Minute

// New new session verifying hmac signed access tokens
func New(cfg core.Auth, capacity int) (core.Session, error) {
	if cfg.Secret == "" {
		return nil, ErrNoSecret
	}

	var s core.Session = &session{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		sf:     &singleflight.Group{},
	}

	if capacity > 0 {
		s = &cacheSession{
			Session: s,
			tokens:  gcache.New(capacity).LRU().Build(),
		}
	}

	return s, nil
}

type session struct {
	secret []byte
	issuer string
	sf     *singleflight.Group
}

func (s *session) Login(ctx context.Context, accessToken string) (core.AccountID, error) {
	account, err, _ := s.sf.Do(accessToken, func() (interface{}, error) {
		var claims jwt.RegisteredClaims

		opts := []jwt.ParserOption{
			jwt.WithExpirationRequired(),
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		}
		if s.issuer != "" {
			opts = append(opts, jwt.WithIssuer(s.issuer))
		}

		if _, err := jwt.ParseWithClaims(accessToken, &claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}

			return s.secret, nil
		}, opts...); err != nil {
			return nil, err
		}

		if claims.Subject == "" {
			return nil, errors.New("token has no subject")
		}

		return core.AccountID(claims.Subject), nil
	})

	if err != nil {
		return "", err
	}

	return account.(core.AccountID), nil
}

type cacheSession struct {
	core.Session
	tokens gcache.Cache
}

func (s *cacheSession) Login(ctx context.Context, accessToken string) (core.AccountID, error) {
	if v, err := s.tokens.Get(accessToken); err == nil {
		return v.(core.AccountID), nil
	}

	account, err := s.Session.Login(ctx, accessToken)
	if err != nil {
		return "", err
	}

	_ = s.tokens.SetWithExpire(accessToken, account, cacheTTL)
	return account, nil
}

// Issue sign an access token for account valid for ttl
func Issue(cfg core.Auth, account core.AccountID, ttl time.Duration) (string, error) {
	if cfg.Secret == "" {
		return "", ErrNoSecret
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.New(),
		Issuer:    cfg.Issuer,
		Subject:   string(account),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
}
