package core

import (
	"context"

	"loans/pkg/compound"
	"loans/pkg/fixed"
)

// MarketState lifecycle state of a market
type MarketState int

const (
	// MarketStatePending added but not usable yet
	MarketStatePending MarketState = iota
	// MarketStateActive open for every operation
	MarketStateActive
	// MarketStateSupervision paused by the admin
	MarketStateSupervision
)

func (s MarketState) String() string {
	switch s {
	case MarketStatePending:
		return "Pending"
	case MarketStateActive:
		return "Active"
	case MarketStateSupervision:
		return "Supervision"
	default:
		return "Unknown"
	}
}

// ParseMarketState parse state name
func ParseMarketState(s string) (MarketState, bool) {
	for _, state := range []MarketState{MarketStatePending, MarketStateActive, MarketStateSupervision} {
		if state.String() == s {
			return state, true
		}
	}

	return 0, false
}

// Market configuration of a listed currency
type Market struct {
	// fraction of the deposit value counted as borrowing power, [0, 1)
	CollateralFactor fixed.Ratio `json:"collateral_factor" msgpack:"collateral_factor"`
	// fraction of the interest kept as reserves, (0, 1)
	ReserveFactor fixed.Ratio `json:"reserve_factor" msgpack:"reserve_factor"`
	// max fraction of a debt a single liquidation can repay
	CloseFactor fixed.Ratio `json:"close_factor" msgpack:"close_factor"`
	// multiplier of the seized value, >= 1
	LiquidationIncentive fixed.Rate                `json:"liquidation_incentive" msgpack:"liquidation_incentive"`
	RateModel            compound.InterestRateModel `json:"rate_model" msgpack:"rate_model"`
	State                MarketState                `json:"state" msgpack:"state"`
	// upper bound of the underlying supplied to the market
	Cap fixed.Balance `json:"cap" msgpack:"cap"`
	// currency id of the voucher token
	PTokenID CurrencyID `json:"ptoken_id" msgpack:"ptoken_id"`
}

// MarketUpdate fields changeable by UpdateMarket, nil fields are kept
type MarketUpdate struct {
	CollateralFactor     *fixed.Ratio   `json:"collateral_factor,omitempty"`
	ReserveFactor        *fixed.Ratio   `json:"reserve_factor,omitempty"`
	CloseFactor          *fixed.Ratio   `json:"close_factor,omitempty"`
	LiquidationIncentive *fixed.Rate    `json:"liquidation_incentive,omitempty"`
	Cap                  *fixed.Balance `json:"cap,omitempty"`
}

// Apply returns a copy of m with the update applied
func (u MarketUpdate) Apply(m Market) Market {
	if u.CollateralFactor != nil {
		m.CollateralFactor = *u.CollateralFactor
	}

	if u.ReserveFactor != nil {
		m.ReserveFactor = *u.ReserveFactor
	}

	if u.CloseFactor != nil {
		m.CloseFactor = *u.CloseFactor
	}

	if u.LiquidationIncentive != nil {
		m.LiquidationIncentive = *u.LiquidationIncentive
	}

	if u.Cap != nil {
		m.Cap = *u.Cap
	}

	return m
}

// MarketLedger per currency bookkeeping owned by the engine
type MarketLedger struct {
	// voucher units outstanding
	TotalSupply fixed.Balance `json:"total_supply" msgpack:"total_supply"`
	// underlying owed by borrowers, interest included
	TotalBorrows fixed.Balance `json:"total_borrows" msgpack:"total_borrows"`
	// underlying retained by the protocol
	TotalReserves    fixed.Balance `json:"total_reserves" msgpack:"total_reserves"`
	ExchangeRate     fixed.Rate    `json:"exchange_rate" msgpack:"exchange_rate"`
	BorrowIndex      fixed.Rate    `json:"borrow_index" msgpack:"borrow_index"`
	UtilizationRatio fixed.Ratio   `json:"utilization_ratio" msgpack:"utilization_ratio"`
	BorrowRate       fixed.Rate    `json:"borrow_rate" msgpack:"borrow_rate"`
	SupplyRate       fixed.Rate    `json:"supply_rate" msgpack:"supply_rate"`
}

// NewMarketLedger ledger of a freshly added market
func NewMarketLedger() *MarketLedger {
	return &MarketLedger{
		ExchangeRate: compound.InitialExchangeRate,
		BorrowIndex:  compound.InitialBorrowIndex,
	}
}

// MarketStatus read view of a market
type MarketStatus struct {
	Currency         CurrencyID    `json:"currency"`
	Market           Market        `json:"market"`
	TotalCash        fixed.Balance `json:"total_cash"`
	TotalSupply      fixed.Balance `json:"total_supply"`
	TotalBorrows     fixed.Balance `json:"total_borrows"`
	TotalReserves    fixed.Balance `json:"total_reserves"`
	ExchangeRate     fixed.Rate    `json:"exchange_rate"`
	BorrowIndex      fixed.Rate    `json:"borrow_index"`
	UtilizationRatio fixed.Ratio   `json:"utilization_ratio"`
	BorrowRate       fixed.Rate    `json:"borrow_rate"`
	SupplyRate       fixed.Rate    `json:"supply_rate"`
}

// IMarketService the interest & market engine
type IMarketService interface {
	// OnNewBlock accrues interest of every active market, called once per block
	OnNewBlock(ctx context.Context, now uint64) error

	// admin
	AddMarket(ctx context.Context, origin AccountID, currency CurrencyID, market Market) error
	ActivateMarket(ctx context.Context, origin AccountID, currency CurrencyID) error
	UpdateMarket(ctx context.Context, origin AccountID, currency CurrencyID, update MarketUpdate) error
	ForceUpdateMarket(ctx context.Context, origin AccountID, currency CurrencyID, market Market) error
	SetRateModel(ctx context.Context, origin AccountID, currency CurrencyID, model compound.InterestRateModel) error
	SetLiquidationIncentive(ctx context.Context, origin AccountID, currency CurrencyID, incentive fixed.Rate) error
	AddReserves(ctx context.Context, origin, payer AccountID, currency CurrencyID, amount fixed.Balance) error
	ReduceReserves(ctx context.Context, origin, receiver AccountID, currency CurrencyID, amount fixed.Balance) error
	// IssueAsset credits underlying to an account, BurnAsset debits it
	IssueAsset(ctx context.Context, origin, to AccountID, currency CurrencyID, amount fixed.Balance) error
	BurnAsset(ctx context.Context, origin, from AccountID, currency CurrencyID, amount fixed.Balance) error

	// extrinsics
	Mint(ctx context.Context, who AccountID, currency CurrencyID, amount fixed.Balance) error
	Redeem(ctx context.Context, who AccountID, currency CurrencyID, amount fixed.Balance) error
	RedeemAll(ctx context.Context, who AccountID, currency CurrencyID) error
	Borrow(ctx context.Context, who AccountID, currency CurrencyID, amount fixed.Balance) error
	RepayBorrow(ctx context.Context, who AccountID, currency CurrencyID, amount fixed.Balance) error
	RepayBorrowAll(ctx context.Context, who AccountID, currency CurrencyID) error
	CollateralAsset(ctx context.Context, who AccountID, currency CurrencyID, enable bool) error
	TransferVouchers(ctx context.Context, from, to AccountID, currency CurrencyID, amount fixed.Balance) error
	LiquidateBorrow(ctx context.Context, liquidator, borrower AccountID, liquidateCurrency CurrencyID, repayAmount fixed.Balance, collateralCurrency CurrencyID) error

	// reads
	GetAccountLiquidity(ctx context.Context, who AccountID) (*AccountLiquidity, error)
	CurrentBorrowBalance(ctx context.Context, who AccountID, currency CurrencyID) (fixed.Balance, error)
	GetDeposits(ctx context.Context, who AccountID, currency CurrencyID) (*Deposits, error)
	GetMarketStatus(ctx context.Context, currency CurrencyID) (*MarketStatus, error)
	ListMarkets(ctx context.Context) ([]*MarketStatus, error)
	ExchangeRate(ctx context.Context, currency CurrencyID) (fixed.Rate, error)
	UtilizationRatio(ctx context.Context, currency CurrencyID) (fixed.Ratio, error)
	BorrowRate(ctx context.Context, currency CurrencyID) (fixed.Rate, error)
	SupplyRate(ctx context.Context, currency CurrencyID) (fixed.Rate, error)
	BalanceOf(ctx context.Context, who AccountID, currency CurrencyID) (fixed.Balance, error)
	TotalIssuance(ctx context.Context, currency CurrencyID) (fixed.Balance, error)
}
