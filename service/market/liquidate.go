package market

import (
	"context"
	"errors"

	"loans/core"
	"loans/pkg/compound"
	"loans/pkg/fixed"

	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
)

func (s *service) LiquidateBorrow(
	ctx context.Context,
	liquidator, borrower core.AccountID,
	liquidateCurrency core.CurrencyID,
	repayAmount fixed.Balance,
	collateralCurrency core.CurrencyID,
) error {
	return s.run(ctx, "liquidate_borrow", func(ctx context.Context, r *recorder) error {
		log := logger.FromContext(ctx).WithFields(logrus.Fields{
			"operation":  "liquidate_borrow",
			"liquidator": liquidator,
			"borrower":   borrower,
		})

		if liquidator == borrower {
			return core.ErrLiquidatorIsBorrower
		}

		liquidateMarket, err := s.activeMarket(ctx, liquidateCurrency)
		if err != nil {
			return err
		}

		collateralMarket, err := s.activeMarket(ctx, collateralCurrency)
		if err != nil {
			return err
		}

		if repayAmount.IsZero() {
			return core.ErrInvalidAmount
		}

		liquidity, err := s.accountLiquidity(ctx, borrower)
		if err != nil {
			return err
		}

		if !liquidity.Liquidatable() {
			log.Debugln("borrower has no shortfall")
			return core.ErrInsufficientShortfall
		}

		liquidateLedger, err := s.states.FindLedger(ctx, liquidateCurrency)
		if err != nil {
			return err
		}

		debt, err := s.currentBorrowBalance(ctx, borrower, liquidateCurrency, liquidateLedger)
		if err != nil {
			return err
		}

		limit, err := liquidateMarket.CloseFactor.MulInt(debt)
		if err != nil {
			return err
		}

		if repayAmount.GreaterThan(limit) {
			log.Infoln("repay exceeds close factor", liquidateCurrency, repayAmount, limit)
			return core.ErrTooMuchRepay
		}

		deposits, err := s.states.FindDeposits(ctx, collateralCurrency, borrower)
		if err != nil {
			return err
		}

		if !deposits.IsCollateral || deposits.VoucherBalance.IsZero() {
			return core.ErrDepositsAreNotCollateral
		}

		liquidatePrice, err := s.price(ctx, liquidateCurrency)
		if err != nil {
			return err
		}

		collateralPrice, err := s.price(ctx, collateralCurrency)
		if err != nil {
			return err
		}

		// liquidate_value = price * repay_amount * liquidation_incentive
		liquidateValue, err := value(liquidatePrice, repayAmount)
		if err != nil {
			return err
		}

		if liquidateValue, err = liquidateValue.Mul(liquidateMarket.LiquidationIncentive); err != nil {
			return err
		}

		collateralLedger, err := s.states.FindLedger(ctx, collateralCurrency)
		if err != nil {
			return err
		}

		collateralUnderlying, err := compound.UnderlyingAmount(deposits.VoucherBalance, collateralLedger.ExchangeRate)
		if err != nil {
			return err
		}

		collateralValue, err := value(collateralPrice, collateralUnderlying)
		if err != nil {
			return err
		}

		if liquidateValue.GreaterThan(collateralValue) {
			log.Infoln("collateral cannot cover the incentive", collateralCurrency, liquidateValue, collateralValue)
			return core.ErrInsufficientCollateral
		}

		seized, err := liquidateValue.Div(collateralPrice)
		if err != nil {
			return err
		}

		seizedVouchers, err := compound.VoucherAmount(seized.Inner(), collateralLedger.ExchangeRate)
		if err != nil {
			return err
		}

		if err := s.repayBorrow(ctx, r, liquidator, borrower, liquidateCurrency, repayAmount); err != nil {
			return err
		}

		for _, who := range []core.AccountID{borrower, liquidator} {
			if err := s.updateEarned(ctx, who, collateralCurrency, collateralLedger.ExchangeRate); err != nil {
				return err
			}
		}

		// the collateral leg moves vouchers only, the pool cash is untouched
		err = s.moveVouchers(ctx, collateralMarket, collateralLedger, collateralCurrency, borrower, liquidator, seizedVouchers, false)
		if errors.Is(err, core.ErrInsufficientDeposit) {
			return core.ErrInsufficientCollateral
		} else if err != nil {
			return err
		}

		log.Infof("repaid %s of %s, seized %s vouchers of %s", repayAmount, liquidateCurrency, seizedVouchers, collateralCurrency)
		r.emit(core.EventLiquidatedBorrow, liquidateCurrency, borrower, core.EventData{
			"liquidator":          liquidator,
			"repay_amount":        repayAmount,
			"collateral_currency": collateralCurrency,
			"seized_underlying":   seized.Inner(),
			"seized_vouchers":     seizedVouchers,
			"ptoken_id":           collateralMarket.PTokenID,
		})
		return nil
	})
}
