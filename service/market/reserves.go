package market

import (
	"context"

	"loans/core"
	"loans/pkg/fixed"
)

func (s *service) AddReserves(ctx context.Context, origin, payer core.AccountID, currency core.CurrencyID, amount fixed.Balance) error {
	return s.run(ctx, "add_reserves", func(ctx context.Context, r *recorder) error {
		if err := s.ensureAdmin(origin); err != nil {
			return err
		}

		if _, err := s.findMarket(ctx, currency); err != nil {
			return err
		}

		if amount.IsZero() {
			return core.ErrInvalidAmount
		}

		ledger, err := s.states.FindLedger(ctx, currency)
		if err != nil {
			return err
		}

		if ledger.TotalReserves, err = ledger.TotalReserves.Add(amount); err != nil {
			return err
		}

		if err := s.assets.Transfer(ctx, currency, payer, s.pool(), amount, false); err != nil {
			return err
		}

		if err := s.states.SaveLedger(ctx, currency, ledger); err != nil {
			return err
		}

		r.emit(core.EventReservesAdded, currency, payer, core.EventData{
			"amount":         amount,
			"total_reserves": ledger.TotalReserves,
		})
		return nil
	})
}

func (s *service) ReduceReserves(ctx context.Context, origin, receiver core.AccountID, currency core.CurrencyID, amount fixed.Balance) error {
	return s.run(ctx, "reduce_reserves", func(ctx context.Context, r *recorder) error {
		if err := s.ensureAdmin(origin); err != nil {
			return err
		}

		if _, err := s.findMarket(ctx, currency); err != nil {
			return err
		}

		if amount.IsZero() {
			return core.ErrInvalidAmount
		}

		ledger, err := s.states.FindLedger(ctx, currency)
		if err != nil {
			return err
		}

		if amount.GreaterThan(ledger.TotalReserves) {
			return core.ErrInsufficientReserves
		}

		if err := s.ensureCash(ctx, currency, amount); err != nil {
			return err
		}

		ledger.TotalReserves, _ = ledger.TotalReserves.Sub(amount)
		if err := s.assets.Transfer(ctx, currency, s.pool(), receiver, amount, false); err != nil {
			return err
		}

		if err := s.states.SaveLedger(ctx, currency, ledger); err != nil {
			return err
		}

		r.emit(core.EventReservesReduced, currency, receiver, core.EventData{
			"amount":         amount,
			"total_reserves": ledger.TotalReserves,
		})
		return nil
	})
}
