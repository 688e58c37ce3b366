package market

import (
	"context"

	"loans/core"
	"loans/pkg/fixed"
)

func (s *service) marketStatus(ctx context.Context, currency core.CurrencyID) (*core.MarketStatus, error) {
	market, err := s.findMarket(ctx, currency)
	if err != nil {
		return nil, err
	}

	ledger, err := s.states.FindLedger(ctx, currency)
	if err != nil {
		return nil, err
	}

	cash, err := s.totalCash(ctx, currency)
	if err != nil {
		return nil, err
	}

	return &core.MarketStatus{
		Currency:         currency,
		Market:           *market,
		TotalCash:        cash,
		TotalSupply:      ledger.TotalSupply,
		TotalBorrows:     ledger.TotalBorrows,
		TotalReserves:    ledger.TotalReserves,
		ExchangeRate:     ledger.ExchangeRate,
		BorrowIndex:      ledger.BorrowIndex,
		UtilizationRatio: ledger.UtilizationRatio,
		BorrowRate:       ledger.BorrowRate,
		SupplyRate:       ledger.SupplyRate,
	}, nil
}

func (s *service) GetMarketStatus(ctx context.Context, currency core.CurrencyID) (*core.MarketStatus, error) {
	var status *core.MarketStatus
	err := s.view(ctx, func(ctx context.Context) (err error) {
		status, err = s.marketStatus(ctx, currency)
		return
	})

	return status, err
}

func (s *service) ListMarkets(ctx context.Context) ([]*core.MarketStatus, error) {
	var markets []*core.MarketStatus
	err := s.view(ctx, func(ctx context.Context) error {
		currencies, err := s.states.ListCurrencies(ctx)
		if err != nil {
			return err
		}

		for _, currency := range currencies {
			status, err := s.marketStatus(ctx, currency)
			if err != nil {
				return err
			}

			markets = append(markets, status)
		}

		return nil
	})

	return markets, err
}

func (s *service) ledger(ctx context.Context, currency core.CurrencyID) (*core.MarketLedger, error) {
	var ledger *core.MarketLedger
	err := s.view(ctx, func(ctx context.Context) (err error) {
		ledger, err = s.states.FindLedger(ctx, currency)
		return
	})

	return ledger, err
}

func (s *service) ExchangeRate(ctx context.Context, currency core.CurrencyID) (fixed.Rate, error) {
	ledger, err := s.ledger(ctx, currency)
	if err != nil {
		return fixed.Zero(), err
	}

	return ledger.ExchangeRate, nil
}

func (s *service) UtilizationRatio(ctx context.Context, currency core.CurrencyID) (fixed.Ratio, error) {
	ledger, err := s.ledger(ctx, currency)
	if err != nil {
		return fixed.Zero(), err
	}

	return ledger.UtilizationRatio, nil
}

func (s *service) BorrowRate(ctx context.Context, currency core.CurrencyID) (fixed.Rate, error) {
	ledger, err := s.ledger(ctx, currency)
	if err != nil {
		return fixed.Zero(), err
	}

	return ledger.BorrowRate, nil
}

func (s *service) SupplyRate(ctx context.Context, currency core.CurrencyID) (fixed.Rate, error) {
	ledger, err := s.ledger(ctx, currency)
	if err != nil {
		return fixed.Zero(), err
	}

	return ledger.SupplyRate, nil
}
