package market

import (
	"context"

	"loans/core"
	"loans/pkg/fixed"

	"github.com/fox-one/pkg/logger"
)

func (s *service) IssueAsset(ctx context.Context, origin, to core.AccountID, currency core.CurrencyID, amount fixed.Balance) error {
	return s.run(ctx, "issue_asset", func(ctx context.Context, r *recorder) error {
		if err := s.ensureAdmin(origin); err != nil {
			return err
		}

		if amount.IsZero() {
			return core.ErrInvalidAmount
		}

		if err := s.assets.MintInto(ctx, currency, to, amount); err != nil {
			return err
		}

		logger.FromContext(ctx).WithField("operation", "issue_asset").Infof("issue %s of %s to %s", amount, currency, to)
		r.emit(core.EventAssetIssued, currency, to, core.EventData{"amount": amount})
		return nil
	})
}

func (s *service) BurnAsset(ctx context.Context, origin, from core.AccountID, currency core.CurrencyID, amount fixed.Balance) error {
	return s.run(ctx, "burn_asset", func(ctx context.Context, r *recorder) error {
		if err := s.ensureAdmin(origin); err != nil {
			return err
		}

		if amount.IsZero() {
			return core.ErrInvalidAmount
		}

		// the pool holds the cash of every market
		if from == s.pool() {
			return core.ErrBadOrigin
		}

		if err := s.assets.BurnFrom(ctx, currency, from, amount); err != nil {
			return err
		}

		logger.FromContext(ctx).WithField("operation", "burn_asset").Infof("burn %s of %s from %s", amount, currency, from)
		r.emit(core.EventAssetBurned, currency, from, core.EventData{"amount": amount})
		return nil
	})
}

func (s *service) BalanceOf(ctx context.Context, who core.AccountID, currency core.CurrencyID) (fixed.Balance, error) {
	var balance fixed.Balance
	err := s.view(ctx, func(ctx context.Context) (err error) {
		balance, err = s.assets.BalanceOf(ctx, currency, who)
		return
	})

	return balance, err
}

func (s *service) TotalIssuance(ctx context.Context, currency core.CurrencyID) (fixed.Balance, error) {
	var total fixed.Balance
	err := s.view(ctx, func(ctx context.Context) (err error) {
		total, err = s.assets.TotalIssuance(ctx, currency)
		return
	})

	return total, err
}
