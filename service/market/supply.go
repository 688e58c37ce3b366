package market

import (
	"context"

	"loans/core"
	"loans/pkg/compound"
	"loans/pkg/fixed"

	"github.com/fox-one/pkg/logger"
)

// updateEarned total_earned_prior += (exchange_rate - exchange_rate_prior) * vouchers
func (s *service) updateEarned(ctx context.Context, who core.AccountID, currency core.CurrencyID, exchangeRate fixed.Rate) error {
	deposits, err := s.states.FindDeposits(ctx, currency, who)
	if err != nil {
		return err
	}

	snapshot, err := s.states.FindEarnedSnapshot(ctx, currency, who)
	if err != nil {
		return err
	}

	earned, err := exchangeRate.SaturatingSub(snapshot.ExchangeRatePrior).MulInt(deposits.VoucherBalance)
	if err != nil {
		return err
	}

	if snapshot.TotalEarnedPrior, err = snapshot.TotalEarnedPrior.Add(earned); err != nil {
		return err
	}

	snapshot.ExchangeRatePrior = exchangeRate
	return s.states.SaveEarnedSnapshot(ctx, currency, who, snapshot)
}

func (s *service) Mint(ctx context.Context, who core.AccountID, currency core.CurrencyID, amount fixed.Balance) error {
	return s.run(ctx, "mint", func(ctx context.Context, r *recorder) error {
		log := logger.FromContext(ctx).WithField("operation", "mint")

		market, err := s.activeMarket(ctx, currency)
		if err != nil {
			return err
		}

		if amount.IsZero() {
			return core.ErrInvalidAmount
		}

		ledger, err := s.states.FindLedger(ctx, currency)
		if err != nil {
			return err
		}

		// supply cap covers what is already supplied plus amount
		supplied, err := ledger.ExchangeRate.MulInt(ledger.TotalSupply)
		if err != nil {
			return err
		}

		if supplied, err = supplied.Add(amount); err != nil {
			return err
		}

		if supplied.GreaterThan(market.Cap) {
			log.Infoln("supply cap reached", currency, who, amount)
			return core.ErrExceededMarketCapacity
		}

		if err := s.updateEarned(ctx, who, currency, ledger.ExchangeRate); err != nil {
			return err
		}

		vouchers, err := compound.VoucherAmount(amount, ledger.ExchangeRate)
		if err != nil {
			return err
		}

		if vouchers.IsZero() {
			return core.ErrInvalidAmount
		}

		if err := s.assets.Transfer(ctx, currency, who, s.pool(), amount, false); err != nil {
			return err
		}

		deposits, err := s.states.FindDeposits(ctx, currency, who)
		if err != nil {
			return err
		}

		if deposits.VoucherBalance, err = deposits.VoucherBalance.Add(vouchers); err != nil {
			return err
		}

		if ledger.TotalSupply, err = ledger.TotalSupply.Add(vouchers); err != nil {
			return err
		}

		if err := s.states.SaveDeposits(ctx, currency, who, deposits); err != nil {
			return err
		}

		if err := s.states.SaveLedger(ctx, currency, ledger); err != nil {
			return err
		}

		log.Infof("%s supplied %s of %s for %s vouchers", who, amount, currency, vouchers)
		r.emit(core.EventDeposited, currency, who, core.EventData{
			"amount":    amount,
			"vouchers":  vouchers,
			"ptoken_id": market.PTokenID,
		})
		return nil
	})
}

func (s *service) Redeem(ctx context.Context, who core.AccountID, currency core.CurrencyID, amount fixed.Balance) error {
	return s.run(ctx, "redeem", func(ctx context.Context, r *recorder) error {
		market, err := s.activeMarket(ctx, currency)
		if err != nil {
			return err
		}

		if amount.IsZero() {
			return core.ErrInvalidAmount
		}

		ledger, err := s.states.FindLedger(ctx, currency)
		if err != nil {
			return err
		}

		vouchers, err := compound.VoucherAmount(amount, ledger.ExchangeRate)
		if err != nil {
			return err
		}

		// pay what the burned vouchers are worth, never more than asked
		actual, err := compound.UnderlyingAmount(vouchers, ledger.ExchangeRate)
		if err != nil {
			return err
		}

		if vouchers.IsZero() || actual.IsZero() {
			return core.ErrInvalidAmount
		}

		return s.redeem(ctx, r, who, currency, market, ledger, vouchers, actual)
	})
}

func (s *service) RedeemAll(ctx context.Context, who core.AccountID, currency core.CurrencyID) error {
	return s.run(ctx, "redeem_all", func(ctx context.Context, r *recorder) error {
		market, err := s.activeMarket(ctx, currency)
		if err != nil {
			return err
		}

		ledger, err := s.states.FindLedger(ctx, currency)
		if err != nil {
			return err
		}

		deposits, err := s.states.FindDeposits(ctx, currency, who)
		if err != nil {
			return err
		}

		if deposits.VoucherBalance.IsZero() {
			return core.ErrNoDeposit
		}

		amount, err := compound.UnderlyingAmount(deposits.VoucherBalance, ledger.ExchangeRate)
		if err != nil {
			return err
		}

		return s.redeem(ctx, r, who, currency, market, ledger, deposits.VoucherBalance, amount)
	})
}

func (s *service) redeem(
	ctx context.Context,
	r *recorder,
	who core.AccountID,
	currency core.CurrencyID,
	market *core.Market,
	ledger *core.MarketLedger,
	vouchers, amount fixed.Balance,
) error {
	log := logger.FromContext(ctx).WithField("operation", "redeem")

	if err := s.updateEarned(ctx, who, currency, ledger.ExchangeRate); err != nil {
		return err
	}

	deposits, err := s.states.FindDeposits(ctx, currency, who)
	if err != nil {
		return err
	}

	if deposits.VoucherBalance.LessThan(vouchers) {
		return core.ErrInsufficientDeposit
	}

	if deposits.IsCollateral {
		effects, err := s.collateralEffects(ctx, market, currency, amount)
		if err != nil {
			return err
		}

		if err := s.ensureLiquidity(ctx, who, effects); err != nil {
			log.WithError(err).Infoln("redeem would leave a shortfall", currency, who, amount)
			return err
		}
	}

	if err := s.ensureCash(ctx, currency, amount); err != nil {
		log.WithError(err).Infoln("not enough cash to redeem", currency, who, amount)
		return err
	}

	deposits.VoucherBalance, _ = deposits.VoucherBalance.Sub(vouchers)
	if ledger.TotalSupply, err = ledger.TotalSupply.Sub(vouchers); err != nil {
		return err
	}

	if err := s.states.SaveDeposits(ctx, currency, who, deposits); err != nil {
		return err
	}

	if err := s.states.SaveLedger(ctx, currency, ledger); err != nil {
		return err
	}

	if err := s.assets.Transfer(ctx, currency, s.pool(), who, amount, false); err != nil {
		return err
	}

	log.Infof("%s redeemed %s vouchers of %s for %s", who, vouchers, currency, amount)
	r.emit(core.EventRedeemed, currency, who, core.EventData{
		"amount":    amount,
		"vouchers":  vouchers,
		"ptoken_id": market.PTokenID,
	})
	return nil
}

func (s *service) TransferVouchers(ctx context.Context, from, to core.AccountID, currency core.CurrencyID, amount fixed.Balance) error {
	return s.run(ctx, "transfer_vouchers", func(ctx context.Context, r *recorder) error {
		market, err := s.activeMarket(ctx, currency)
		if err != nil {
			return err
		}

		if amount.IsZero() {
			return core.ErrInvalidAmount
		}

		ledger, err := s.states.FindLedger(ctx, currency)
		if err != nil {
			return err
		}

		for _, who := range []core.AccountID{from, to} {
			if err := s.updateEarned(ctx, who, currency, ledger.ExchangeRate); err != nil {
				return err
			}
		}

		if err := s.moveVouchers(ctx, market, ledger, currency, from, to, amount, true); err != nil {
			return err
		}

		logger.FromContext(ctx).WithField("operation", "transfer_vouchers").
			Infof("%s moved %s vouchers of %s to %s", from, amount, currency, to)
		r.emit(core.EventVouchersTransferred, currency, from, core.EventData{
			"to":        to,
			"vouchers":  amount,
			"ptoken_id": market.PTokenID,
		})
		return nil
	})
}

// moveVouchers moves vouchers between deposits, checkLiquidity guards the
// borrowing power the sender loses when the deposit is collateral
func (s *service) moveVouchers(
	ctx context.Context,
	market *core.Market,
	ledger *core.MarketLedger,
	currency core.CurrencyID,
	from, to core.AccountID,
	vouchers fixed.Balance,
	checkLiquidity bool,
) error {
	fromDeposits, err := s.states.FindDeposits(ctx, currency, from)
	if err != nil {
		return err
	}

	if fromDeposits.VoucherBalance.LessThan(vouchers) {
		return core.ErrInsufficientDeposit
	}

	if from == to {
		return nil
	}

	if checkLiquidity && fromDeposits.IsCollateral {
		underlying, err := compound.UnderlyingAmount(vouchers, ledger.ExchangeRate)
		if err != nil {
			return err
		}

		effects, err := s.collateralEffects(ctx, market, currency, underlying)
		if err != nil {
			return err
		}

		if err := s.ensureLiquidity(ctx, from, effects); err != nil {
			return err
		}
	}

	fromDeposits.VoucherBalance, _ = fromDeposits.VoucherBalance.Sub(vouchers)
	if err := s.states.SaveDeposits(ctx, currency, from, fromDeposits); err != nil {
		return err
	}

	toDeposits, err := s.states.FindDeposits(ctx, currency, to)
	if err != nil {
		return err
	}

	if toDeposits.VoucherBalance, err = toDeposits.VoucherBalance.Add(vouchers); err != nil {
		return err
	}

	return s.states.SaveDeposits(ctx, currency, to, toDeposits)
}
