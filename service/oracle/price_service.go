package oracle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"loans/core"
	"loans/pkg/fixed"
	"loans/pkg/resthttp"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/logger"
	"golang.org/x/sync/singleflight"
)

const capacity = 1024

// ErrNoSymbol currency has no ticker symbol configured
var ErrNoSymbol = errors.New("oracle: no ticker symbol")

type service struct {
	endpoint string
	symbols  map[core.CurrencyID]string
	ttl      time.Duration
	prices   gcache.Cache
	sf       *singleflight.Group
}

// New new price oracle from config, static prices are fed right away
func New(cfg core.PriceOracleConfig) (core.IPriceOracleService, error) {
	s := newService(cfg.EndPoint, time.Duration(cfg.TTL)*time.Second)

	for k, symbol := range cfg.Symbols {
		currency, err := core.ParseCurrencyID(k)
		if err != nil {
			return nil, fmt.Errorf("oracle symbols: %w", err)
		}

		s.symbols[currency] = symbol
	}

	for k, v := range cfg.Static {
		currency, err := core.ParseCurrencyID(k)
		if err != nil {
			return nil, fmt.Errorf("oracle static prices: %w", err)
		}

		price, err := fixed.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("oracle static price of %s: %w", k, err)
		}

		// static prices never expire
		s.prices.Set(currency, &core.PriceDetail{Price: price, Timestamp: time.Now().Unix()})
	}

	return s, nil
}

func newService(endpoint string, ttl time.Duration) *service {
	return &service{
		endpoint: endpoint,
		symbols:  map[core.CurrencyID]string{},
		ttl:      ttl,
		prices:   gcache.New(capacity).LRU().Build(),
		sf:       &singleflight.Group{},
	}
}

// GetPrice zero, missing or expired prices are not ready
func (s *service) GetPrice(_ context.Context, currency core.CurrencyID) (*core.PriceDetail, bool) {
	v, err := s.prices.Get(currency)
	if err != nil {
		return nil, false
	}

	detail, ok := v.(*core.PriceDetail)
	if !ok || detail.Price.IsZero() {
		return nil, false
	}

	return detail, true
}

func (s *service) FeedPrice(ctx context.Context, currency core.CurrencyID, price fixed.Price) error {
	if price.IsZero() {
		return core.ErrInvalidAmount
	}

	logger.FromContext(ctx).WithField("currency", currency).Debugln("feed price", price)

	detail := &core.PriceDetail{Price: price, Timestamp: time.Now().Unix()}
	if s.ttl > 0 {
		return s.prices.SetWithExpire(currency, detail, s.ttl)
	}

	return s.prices.Set(currency, detail)
}

func (s *service) ListPrices(_ context.Context) (map[core.CurrencyID]*core.PriceDetail, error) {
	prices := make(map[core.CurrencyID]*core.PriceDetail)
	for k, v := range s.prices.GetALL(true) {
		currency, ok := k.(core.CurrencyID)
		if !ok {
			continue
		}

		if detail, ok := v.(*core.PriceDetail); ok {
			prices[currency] = detail
		}
	}

	return prices, nil
}

// PullPriceTicker concurrent pulls of one symbol share a single request
func (s *service) PullPriceTicker(ctx context.Context, currency core.CurrencyID) (*core.PriceTicker, error) {
	symbol, ok := s.symbols[currency]
	if !ok {
		return nil, ErrNoSymbol
	}

	v, err, _ := s.sf.Do(symbol, func() (interface{}, error) {
		url := fmt.Sprintf("%s/api/v2/tickers/%s", s.endpoint, symbol)
		logger.FromContext(ctx).Debugln("pull price:", url)

		resp, err := resthttp.Request(ctx).Get(url)
		if err != nil {
			return nil, err
		}

		var ticker core.PriceTicker
		if err := resthttp.ParseResponse(resp, &ticker); err != nil {
			return nil, err
		}

		return &ticker, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*core.PriceTicker), nil
}
