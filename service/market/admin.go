package market

import (
	"context"
	"errors"

	"loans/core"
	"loans/pkg/compound"
	"loans/pkg/fixed"
)

// validateMarket factor ranges and supply cap
func validateMarket(m *core.Market) error {
	one := fixed.One()

	switch {
	case !m.CollateralFactor.LessThan(one):
		return core.ErrInvalidFactor
	case m.ReserveFactor.IsZero() || !m.ReserveFactor.LessThan(one):
		return core.ErrInvalidFactor
	case m.CloseFactor.IsZero() || m.CloseFactor.GreaterThan(one):
		return core.ErrInvalidFactor
	case m.LiquidationIncentive.LessThan(one):
		return core.ErrInvalidFactor
	case m.Cap.IsZero():
		return core.ErrInvalidSupplyCap
	}

	return nil
}

// ensurePToken the voucher id of currency must not collide with any
// listed currency or with the voucher id of another market
func (s *service) ensurePToken(ctx context.Context, currency, ptoken core.CurrencyID) error {
	if ptoken == 0 || ptoken == currency {
		return core.ErrInvalidPtokenID
	}

	currencies, err := s.states.ListCurrencies(ctx)
	if err != nil {
		return err
	}

	for _, listed := range currencies {
		if listed == currency {
			continue
		}

		if listed == ptoken {
			return core.ErrInvalidPtokenID
		}

		market, err := s.findMarket(ctx, listed)
		if err != nil {
			return err
		}

		switch market.PTokenID {
		case ptoken:
			return core.ErrInvalidPtokenID
		case currency:
			return core.ErrInvalidCurrencyID
		}
	}

	return nil
}

func (s *service) findMarket(ctx context.Context, currency core.CurrencyID) (*core.Market, error) {
	return s.states.FindMarket(ctx, currency)
}

func (s *service) AddMarket(ctx context.Context, origin core.AccountID, currency core.CurrencyID, market core.Market) error {
	return s.run(ctx, "add_market", func(ctx context.Context, r *recorder) error {
		if err := s.ensureAdmin(origin); err != nil {
			return err
		}

		if _, err := s.findMarket(ctx, currency); err == nil {
			return core.ErrMarketAlreadyExists
		} else if !errors.Is(err, core.ErrMarketDoesNotExist) {
			return err
		}

		if market.State != core.MarketStatePending {
			return core.ErrNewMarketMustHavePendingState
		}

		if !market.RateModel.CheckModel() {
			return core.ErrInvalidRateModelParam
		}

		if err := validateMarket(&market); err != nil {
			return err
		}

		if err := s.ensurePToken(ctx, currency, market.PTokenID); err != nil {
			return err
		}

		if err := s.states.SaveMarket(ctx, currency, &market); err != nil {
			return err
		}

		if err := s.states.SaveLedger(ctx, currency, core.NewMarketLedger()); err != nil {
			return err
		}

		r.emit(core.EventNewMarket, currency, origin, core.EventData{"market": market})
		return nil
	})
}

func (s *service) ActivateMarket(ctx context.Context, origin core.AccountID, currency core.CurrencyID) error {
	return s.run(ctx, "activate_market", func(ctx context.Context, r *recorder) error {
		if err := s.ensureAdmin(origin); err != nil {
			return err
		}

		market, err := s.findMarket(ctx, currency)
		if err != nil {
			return err
		}

		if market.State == core.MarketStateActive {
			return nil
		}

		market.State = core.MarketStateActive
		if err := s.states.SaveMarket(ctx, currency, market); err != nil {
			return err
		}

		r.emit(core.EventActivatedMarket, currency, origin, nil)
		return nil
	})
}

func (s *service) UpdateMarket(ctx context.Context, origin core.AccountID, currency core.CurrencyID, update core.MarketUpdate) error {
	return s.run(ctx, "update_market", func(ctx context.Context, r *recorder) error {
		if err := s.ensureAdmin(origin); err != nil {
			return err
		}

		market, err := s.findMarket(ctx, currency)
		if err != nil {
			return err
		}

		updated := update.Apply(*market)
		if err := validateMarket(&updated); err != nil {
			return err
		}

		if err := s.states.SaveMarket(ctx, currency, &updated); err != nil {
			return err
		}

		r.emit(core.EventUpdatedMarket, currency, origin, core.EventData{"market": updated})
		return nil
	})
}

func (s *service) ForceUpdateMarket(ctx context.Context, origin core.AccountID, currency core.CurrencyID, market core.Market) error {
	return s.run(ctx, "force_update_market", func(ctx context.Context, r *recorder) error {
		if err := s.ensureAdmin(origin); err != nil {
			return err
		}

		if _, err := s.findMarket(ctx, currency); err != nil {
			return err
		}

		if !market.RateModel.CheckModel() {
			return core.ErrInvalidRateModelParam
		}

		if err := validateMarket(&market); err != nil {
			return err
		}

		if err := s.ensurePToken(ctx, currency, market.PTokenID); err != nil {
			return err
		}

		if err := s.states.SaveMarket(ctx, currency, &market); err != nil {
			return err
		}

		r.emit(core.EventUpdatedMarket, currency, origin, core.EventData{"market": market})
		return nil
	})
}

func (s *service) SetRateModel(ctx context.Context, origin core.AccountID, currency core.CurrencyID, model compound.InterestRateModel) error {
	return s.run(ctx, "set_rate_model", func(ctx context.Context, r *recorder) error {
		if err := s.ensureAdmin(origin); err != nil {
			return err
		}

		if !model.CheckModel() {
			return core.ErrInvalidRateModelParam
		}

		market, err := s.findMarket(ctx, currency)
		if err != nil {
			return err
		}

		market.RateModel = model
		if err := s.states.SaveMarket(ctx, currency, market); err != nil {
			return err
		}

		r.emit(core.EventNewInterestRateModel, currency, origin, core.EventData{"rate_model": model})
		return nil
	})
}

func (s *service) SetLiquidationIncentive(ctx context.Context, origin core.AccountID, currency core.CurrencyID, incentive fixed.Rate) error {
	return s.run(ctx, "set_liquidation_incentive", func(ctx context.Context, r *recorder) error {
		if err := s.ensureAdmin(origin); err != nil {
			return err
		}

		market, err := s.findMarket(ctx, currency)
		if err != nil {
			return err
		}

		market.LiquidationIncentive = incentive
		if err := validateMarket(market); err != nil {
			return err
		}

		if err := s.states.SaveMarket(ctx, currency, market); err != nil {
			return err
		}

		r.emit(core.EventNewLiquidationIncentive, currency, origin, core.EventData{"liquidation_incentive": incentive})
		return nil
	})
}
