package market

import (
	"context"

	"loans/core"
	"loans/pkg/fixed"

	"github.com/fox-one/pkg/logger"
)

func (s *service) Borrow(ctx context.Context, who core.AccountID, currency core.CurrencyID, amount fixed.Balance) error {
	return s.run(ctx, "borrow", func(ctx context.Context, r *recorder) error {
		log := logger.FromContext(ctx).WithField("operation", "borrow")

		if _, err := s.activeMarket(ctx, currency); err != nil {
			return err
		}

		if amount.IsZero() {
			return core.ErrInvalidAmount
		}

		price, err := s.price(ctx, currency)
		if err != nil {
			return err
		}

		borrowValue, err := value(price, amount)
		if err != nil {
			return err
		}

		if err := s.ensureLiquidity(ctx, who, borrowValue); err != nil {
			log.WithError(err).Infoln("borrow exceeds liquidity", currency, who, amount)
			return err
		}

		if err := s.ensureCash(ctx, currency, amount); err != nil {
			log.WithError(err).Infoln("not enough cash to lend", currency, who, amount)
			return err
		}

		ledger, err := s.states.FindLedger(ctx, currency)
		if err != nil {
			return err
		}

		balance, err := s.currentBorrowBalance(ctx, who, currency, ledger)
		if err != nil {
			return err
		}

		if balance, err = balance.Add(amount); err != nil {
			return err
		}

		if ledger.TotalBorrows, err = ledger.TotalBorrows.Add(amount); err != nil {
			return err
		}

		if err := s.states.SaveBorrowSnapshot(ctx, currency, who, &core.BorrowSnapshot{
			Principal:   balance,
			BorrowIndex: ledger.BorrowIndex,
		}); err != nil {
			return err
		}

		if err := s.states.SaveLedger(ctx, currency, ledger); err != nil {
			return err
		}

		if err := s.assets.Transfer(ctx, currency, s.pool(), who, amount, false); err != nil {
			return err
		}

		log.Infof("%s borrowed %s of %s, debt %s", who, amount, currency, balance)
		r.emit(core.EventBorrowed, currency, who, core.EventData{
			"amount":  amount,
			"balance": balance,
		})
		return nil
	})
}

func (s *service) RepayBorrow(ctx context.Context, who core.AccountID, currency core.CurrencyID, amount fixed.Balance) error {
	return s.run(ctx, "repay_borrow", func(ctx context.Context, r *recorder) error {
		if _, err := s.activeMarket(ctx, currency); err != nil {
			return err
		}

		if amount.IsZero() {
			return core.ErrInvalidAmount
		}

		return s.repayBorrow(ctx, r, who, who, currency, amount)
	})
}

func (s *service) RepayBorrowAll(ctx context.Context, who core.AccountID, currency core.CurrencyID) error {
	return s.run(ctx, "repay_borrow_all", func(ctx context.Context, r *recorder) error {
		if _, err := s.activeMarket(ctx, currency); err != nil {
			return err
		}

		ledger, err := s.states.FindLedger(ctx, currency)
		if err != nil {
			return err
		}

		balance, err := s.currentBorrowBalance(ctx, who, currency, ledger)
		if err != nil {
			return err
		}

		if balance.IsZero() {
			return core.ErrInvalidAmount
		}

		return s.repayBorrow(ctx, r, who, who, currency, balance)
	})
}

// repayBorrow payer repays amount of borrower's debt
func (s *service) repayBorrow(ctx context.Context, r *recorder, payer, borrower core.AccountID, currency core.CurrencyID, amount fixed.Balance) error {
	ledger, err := s.states.FindLedger(ctx, currency)
	if err != nil {
		return err
	}

	balance, err := s.currentBorrowBalance(ctx, borrower, currency, ledger)
	if err != nil {
		return err
	}

	log := logger.FromContext(ctx).WithField("operation", "repay_borrow")

	if amount.GreaterThan(balance) {
		log.Infoln("repay exceeds debt", currency, borrower, amount, balance)
		return core.ErrTooMuchRepay
	}

	if err := s.assets.Transfer(ctx, currency, payer, s.pool(), amount, false); err != nil {
		return err
	}

	balance, _ = balance.Sub(amount)
	if err := s.states.SaveBorrowSnapshot(ctx, currency, borrower, &core.BorrowSnapshot{
		Principal:   balance,
		BorrowIndex: ledger.BorrowIndex,
	}); err != nil {
		return err
	}

	// total borrows accrue on the aggregate while a debt accrues through the
	// index, the two drift by rounding dust
	ledger.TotalBorrows = ledger.TotalBorrows.SaturatingSub(amount)
	if err := s.states.SaveLedger(ctx, currency, ledger); err != nil {
		return err
	}

	log.Infof("%s repaid %s of %s for %s, debt %s", payer, amount, currency, borrower, balance)
	r.emit(core.EventRepaidBorrow, currency, borrower, core.EventData{
		"payer":   payer,
		"amount":  amount,
		"balance": balance,
	})
	return nil
}
