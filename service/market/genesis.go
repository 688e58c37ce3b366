package market

import (
	"context"
	"errors"
	"fmt"

	"loans/core"
	"loans/pkg/fixed"

	"github.com/fox-one/pkg/logger"
)

// Bootstrap list the genesis markets that do not exist yet, markets
// configured Active are activated right after being added.
//
// Genesis balances are credited only to currencies without any issuance,
// so a restart over a persistent store credits nothing twice.
func Bootstrap(
	ctx context.Context,
	svc core.IMarketService,
	origin core.AccountID,
	markets []*core.GenesisMarket,
	balances []*core.GenesisBalance,
) error {
	log := logger.FromContext(ctx).WithField("service", "genesis")

	for _, g := range markets {
		currency := core.CurrencyID(g.Currency)

		market, err := g.Market()
		if err != nil {
			return fmt.Errorf("genesis market %s: %w", currency, err)
		}

		state := market.State
		market.State = core.MarketStatePending

		if err := svc.AddMarket(ctx, origin, currency, market); errors.Is(err, core.ErrMarketAlreadyExists) {
			log.Debugln("market exists", currency)
			continue
		} else if err != nil {
			return fmt.Errorf("genesis market %s: %w", currency, err)
		}

		if state == core.MarketStateActive {
			if err := svc.ActivateMarket(ctx, origin, currency); err != nil {
				return fmt.Errorf("activate genesis market %s: %w", currency, err)
			}
		}

		log.Infoln("market listed", currency, state)
	}

	issued := map[core.CurrencyID]bool{}
	for _, b := range balances {
		currency := core.CurrencyID(b.Currency)
		if _, ok := issued[currency]; !ok {
			total, err := svc.TotalIssuance(ctx, currency)
			if err != nil {
				return err
			}

			issued[currency] = !total.IsZero()
		}

		if issued[currency] {
			log.Debugln("currency already issued, skip genesis balance", currency, b.Account)
			continue
		}

		amount, err := fixed.ParseBalance(b.Amount)
		if err != nil {
			return fmt.Errorf("genesis balance %s of %s: %w", b.Account, currency, err)
		}

		if err := svc.IssueAsset(ctx, origin, core.AccountID(b.Account), currency, amount); err != nil {
			return fmt.Errorf("genesis balance %s of %s: %w", b.Account, currency, err)
		}
	}

	return nil
}
