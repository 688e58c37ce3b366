package market

import (
	"context"

	"loans/core"
	"loans/pkg/fixed"
)

// collateralValue price * exchange_rate * collateral_factor * vouchers of a collateral deposit
func (s *service) collateralValue(ctx context.Context, who core.AccountID, currency core.CurrencyID) (fixed.Fixed, error) {
	deposits, err := s.states.FindDeposits(ctx, currency, who)
	if err != nil {
		return fixed.Zero(), err
	}

	if !deposits.IsCollateral || deposits.VoucherBalance.IsZero() {
		return fixed.Zero(), nil
	}

	market, err := s.states.FindMarket(ctx, currency)
	if err != nil {
		return fixed.Zero(), err
	}

	ledger, err := s.states.FindLedger(ctx, currency)
	if err != nil {
		return fixed.Zero(), err
	}

	underlying, err := ledger.ExchangeRate.MulInt(deposits.VoucherBalance)
	if err != nil {
		return fixed.Zero(), err
	}

	effects, err := market.CollateralFactor.MulInt(underlying)
	if err != nil {
		return fixed.Zero(), err
	}

	price, err := s.price(ctx, currency)
	if err != nil {
		return fixed.Zero(), err
	}

	return value(price, effects)
}

// borrowedValue price * current borrow balance
func (s *service) borrowedValue(ctx context.Context, who core.AccountID, currency core.CurrencyID) (fixed.Fixed, error) {
	ledger, err := s.states.FindLedger(ctx, currency)
	if err != nil {
		return fixed.Zero(), err
	}

	balance, err := s.currentBorrowBalance(ctx, who, currency, ledger)
	if err != nil {
		return fixed.Zero(), err
	}

	if balance.IsZero() {
		return fixed.Zero(), nil
	}

	price, err := s.price(ctx, currency)
	if err != nil {
		return fixed.Zero(), err
	}

	return value(price, balance)
}

func (s *service) accountLiquidity(ctx context.Context, who core.AccountID) (*core.AccountLiquidity, error) {
	currencies, err := s.states.ListCurrencies(ctx)
	if err != nil {
		return nil, err
	}

	collateral, borrowed := fixed.Zero(), fixed.Zero()
	for _, currency := range currencies {
		c, err := s.collateralValue(ctx, who, currency)
		if err != nil {
			return nil, err
		}

		if collateral, err = collateral.Add(c); err != nil {
			return nil, err
		}

		b, err := s.borrowedValue(ctx, who, currency)
		if err != nil {
			return nil, err
		}

		if borrowed, err = borrowed.Add(b); err != nil {
			return nil, err
		}
	}

	if !collateral.LessThan(borrowed) {
		liquidity, _ := collateral.Sub(borrowed)
		return &core.AccountLiquidity{Liquidity: liquidity}, nil
	}

	shortfall, _ := borrowed.Sub(collateral)
	return &core.AccountLiquidity{Shortfall: shortfall}, nil
}

// ensureLiquidity fails with ErrInsufficientLiquidity unless who can lose v of borrowing power
func (s *service) ensureLiquidity(ctx context.Context, who core.AccountID, v fixed.Fixed) error {
	liquidity, err := s.accountLiquidity(ctx, who)
	if err != nil {
		return err
	}

	if liquidity.Liquidity.LessThan(v) {
		return core.ErrInsufficientLiquidity
	}

	return nil
}

// collateralEffects price * collateral_factor * underlying, borrowing power backed by underlying
func (s *service) collateralEffects(ctx context.Context, market *core.Market, currency core.CurrencyID, underlying fixed.Balance) (fixed.Fixed, error) {
	effects, err := market.CollateralFactor.MulInt(underlying)
	if err != nil {
		return fixed.Zero(), err
	}

	price, err := s.price(ctx, currency)
	if err != nil {
		return fixed.Zero(), err
	}

	return value(price, effects)
}

func (s *service) GetAccountLiquidity(ctx context.Context, who core.AccountID) (*core.AccountLiquidity, error) {
	var liquidity *core.AccountLiquidity
	err := s.view(ctx, func(ctx context.Context) (err error) {
		liquidity, err = s.accountLiquidity(ctx, who)
		return
	})

	return liquidity, err
}

func (s *service) CurrentBorrowBalance(ctx context.Context, who core.AccountID, currency core.CurrencyID) (fixed.Balance, error) {
	var balance fixed.Balance
	err := s.view(ctx, func(ctx context.Context) error {
		ledger, err := s.states.FindLedger(ctx, currency)
		if err != nil {
			return err
		}

		balance, err = s.currentBorrowBalance(ctx, who, currency, ledger)
		return err
	})

	return balance, err
}

func (s *service) GetDeposits(ctx context.Context, who core.AccountID, currency core.CurrencyID) (*core.Deposits, error) {
	var deposits *core.Deposits
	err := s.view(ctx, func(ctx context.Context) (err error) {
		if _, err = s.findMarket(ctx, currency); err != nil {
			return
		}

		deposits, err = s.states.FindDeposits(ctx, currency, who)
		return
	})

	return deposits, err
}

func (s *service) CollateralAsset(ctx context.Context, who core.AccountID, currency core.CurrencyID, enable bool) error {
	return s.run(ctx, "collateral_asset", func(ctx context.Context, r *recorder) error {
		if _, err := s.activeMarket(ctx, currency); err != nil {
			return err
		}

		deposits, err := s.states.FindDeposits(ctx, currency, who)
		if err != nil {
			return err
		}

		if deposits.VoucherBalance.IsZero() {
			return core.ErrNoDeposit
		}

		if deposits.IsCollateral == enable {
			return core.ErrDuplicateOperation
		}

		kind := core.EventCollateralAssetAdded
		if !enable {
			v, err := s.collateralValue(ctx, who, currency)
			if err != nil {
				return err
			}

			if err := s.ensureLiquidity(ctx, who, v); err != nil {
				return err
			}

			kind = core.EventCollateralAssetRemoved
		}

		deposits.IsCollateral = enable
		if err := s.states.SaveDeposits(ctx, currency, who, deposits); err != nil {
			return err
		}

		r.emit(kind, currency, who, nil)
		return nil
	})
}
