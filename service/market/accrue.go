package market

import (
	"context"

	"loans/core"
	"loans/internal/metrics"
	"loans/pkg/compound"

	"github.com/fox-one/pkg/logger"
)

func (s *service) OnNewBlock(ctx context.Context, now uint64) error {
	log := logger.FromContext(ctx).WithField("service", "market")

	accrued := make(map[core.CurrencyID]*core.MarketLedger)
	err := s.run(ctx, "on_new_block", func(ctx context.Context, r *recorder) error {
		last, err := s.states.LastAccruedTimestamp(ctx)
		if err != nil {
			return err
		}

		if now == last {
			return nil
		}

		if now < last {
			log.Warnf("block timestamp %d before last accrual %d, skip", now, last)
			return nil
		}

		var delta uint64
		if last > 0 {
			delta = now - last
		}

		currencies, err := s.states.ListCurrencies(ctx)
		if err != nil {
			return err
		}

		for _, currency := range currencies {
			market, err := s.states.FindMarket(ctx, currency)
			if err != nil {
				return err
			}

			if market.State != core.MarketStateActive {
				continue
			}

			// each market accrues in its own scope, a failure only rolls back that market
			sub := &recorder{}
			var ledger *core.MarketLedger
			if err := s.states.Transact(ctx, func(ctx context.Context) error {
				ledger, err = s.accrueInterest(ctx, sub, currency, market, delta)
				return err
			}); err != nil {
				log.WithError(err).WithField("currency", currency).Errorln("accrue interest")
				metrics.ObserveAccrualFailure(currency)
				continue
			}

			r.merge(sub)
			accrued[currency] = ledger
		}

		return s.states.SetLastAccruedTimestamp(ctx, now)
	})

	if err != nil {
		return err
	}

	for currency, ledger := range accrued {
		metrics.ObserveMarket(currency, ledger)
	}

	if len(accrued) > 0 {
		metrics.SetLastAccrued(now)
	}

	return nil
}

// accrueInterest updates rates, borrows, reserves, borrow index and exchange rate
func (s *service) accrueInterest(ctx context.Context, r *recorder, currency core.CurrencyID, market *core.Market, delta uint64) (*core.MarketLedger, error) {
	ledger, err := s.states.FindLedger(ctx, currency)
	if err != nil {
		return nil, err
	}

	cash, err := s.totalCash(ctx, currency)
	if err != nil {
		return nil, err
	}

	if ledger.UtilizationRatio, err = compound.UtilizationRatio(cash, ledger.TotalBorrows, ledger.TotalReserves); err != nil {
		return nil, err
	}

	if ledger.BorrowRate, err = market.RateModel.BorrowRate(ledger.UtilizationRatio); err != nil {
		return nil, err
	}

	ledger.SupplyRate = compound.SupplyRate(ledger.BorrowRate, ledger.UtilizationRatio, market.ReserveFactor)

	interest, err := compound.AccruedInterest(ledger.BorrowRate, ledger.TotalBorrows, delta)
	if err != nil {
		return nil, err
	}

	if ledger.TotalBorrows, err = ledger.TotalBorrows.Add(interest); err != nil {
		return nil, err
	}

	reserves, err := market.ReserveFactor.MulInt(interest)
	if err != nil {
		return nil, err
	}

	if ledger.TotalReserves, err = ledger.TotalReserves.Add(reserves); err != nil {
		return nil, err
	}

	increment, err := compound.IncrementIndex(ledger.BorrowRate, ledger.BorrowIndex, delta)
	if err != nil {
		return nil, err
	}

	if ledger.BorrowIndex, err = ledger.BorrowIndex.Add(increment); err != nil {
		return nil, err
	}

	if !ledger.TotalSupply.IsZero() {
		if ledger.ExchangeRate, err = compound.ExchangeRate(cash, ledger.TotalBorrows, ledger.TotalReserves, ledger.TotalSupply); err != nil {
			return nil, err
		}
	}

	if err := s.states.SaveLedger(ctx, currency, ledger); err != nil {
		return nil, err
	}

	if !interest.IsZero() {
		r.emit(core.EventInterestAccrued, currency, "", core.EventData{
			"interest":      interest,
			"reserves":      reserves,
			"borrow_index":  ledger.BorrowIndex,
			"borrow_rate":   ledger.BorrowRate,
			"exchange_rate": ledger.ExchangeRate,
		})
	}

	return ledger, nil
}
