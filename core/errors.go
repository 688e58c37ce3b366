package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000
	// ErrBadOrigin origin is not privileged
	ErrBadOrigin ErrorCode = 100001

	// ErrMarketDoesNotExist no market
	ErrMarketDoesNotExist ErrorCode = 100100
	// ErrMarketAlreadyExists market exists
	ErrMarketAlreadyExists ErrorCode = 100101
	// ErrMarketNotActivated market is not active
	ErrMarketNotActivated ErrorCode = 100102
	// ErrNewMarketMustHavePendingState new markets start pending
	ErrNewMarketMustHavePendingState ErrorCode = 100103
	// ErrInvalidRateModelParam rate model rejected
	ErrInvalidRateModelParam ErrorCode = 100104
	// ErrInvalidFactor factor out of range
	ErrInvalidFactor ErrorCode = 100105
	// ErrInvalidSupplyCap zero cap
	ErrInvalidSupplyCap ErrorCode = 100106
	// ErrCurrencyNotEnabled currency not listed
	ErrCurrencyNotEnabled ErrorCode = 100107
	// ErrExceededMarketCapacity supply cap reached
	ErrExceededMarketCapacity ErrorCode = 100108
	// ErrInvalidAmount zero amount
	ErrInvalidAmount ErrorCode = 100109
	// ErrInvalidPtokenID voucher token id zero or already in use
	ErrInvalidPtokenID ErrorCode = 100110
	// ErrInvalidCurrencyID currency is the voucher token of another market
	ErrInvalidCurrencyID ErrorCode = 100111

	// ErrInsufficientDeposit deposit too small
	ErrInsufficientDeposit ErrorCode = 100200
	// ErrInsufficientLiquidity account would be under collateralized
	ErrInsufficientLiquidity ErrorCode = 100201
	// ErrInsufficientCollateral not enough collateral to seize
	ErrInsufficientCollateral ErrorCode = 100202
	// ErrInsufficientShortfall borrower is not liquidatable
	ErrInsufficientShortfall ErrorCode = 100203
	// ErrTooMuchRepay repay exceeds the debt or the close factor
	ErrTooMuchRepay ErrorCode = 100204
	// ErrDepositsAreNotCollateral deposit is not collateral
	ErrDepositsAreNotCollateral ErrorCode = 100205
	// ErrLiquidatorIsBorrower self liquidation
	ErrLiquidatorIsBorrower ErrorCode = 100206
	// ErrInsufficientReserves reserves too small
	ErrInsufficientReserves ErrorCode = 100207
	// ErrNoDeposit no deposit record
	ErrNoDeposit ErrorCode = 100208
	// ErrDuplicateOperation collateral already in the requested state
	ErrDuplicateOperation ErrorCode = 100209
	// ErrInsufficientCash pool cannot pay out
	ErrInsufficientCash ErrorCode = 100210

	// ErrPriceOracleNotReady price missing or zero
	ErrPriceOracleNotReady ErrorCode = 100300
	// ErrInsufficientBalance asset balance too small
	ErrInsufficientBalance ErrorCode = 100301
)

var errorNames = map[ErrorCode]string{
	ErrUnknown:                       "Unknown",
	ErrBadOrigin:                     "BadOrigin",
	ErrMarketDoesNotExist:            "MarketDoesNotExist",
	ErrMarketAlreadyExists:           "MarketAlreadyExists",
	ErrMarketNotActivated:            "MarketNotActivated",
	ErrNewMarketMustHavePendingState: "NewMarketMustHavePendingState",
	ErrInvalidRateModelParam:         "InvalidRateModelParam",
	ErrInvalidFactor:                 "InvalidFactor",
	ErrInvalidSupplyCap:              "InvalidSupplyCap",
	ErrCurrencyNotEnabled:            "CurrencyNotEnabled",
	ErrExceededMarketCapacity:        "ExceededMarketCapacity",
	ErrInvalidAmount:                 "InvalidAmount",
	ErrInvalidPtokenID:               "InvalidPtokenId",
	ErrInvalidCurrencyID:             "InvalidCurrencyId",
	ErrInsufficientDeposit:           "InsufficientDeposit",
	ErrInsufficientLiquidity:         "InsufficientLiquidity",
	ErrInsufficientCollateral:        "InsufficientCollateral",
	ErrInsufficientShortfall:         "InsufficientShortfall",
	ErrTooMuchRepay:                  "TooMuchRepay",
	ErrDepositsAreNotCollateral:      "DepositsAreNotCollateral",
	ErrLiquidatorIsBorrower:          "LiquidatorIsBorrower",
	ErrInsufficientReserves:          "InsufficientReserves",
	ErrNoDeposit:                     "NoDeposit",
	ErrDuplicateOperation:            "DuplicateOperation",
	ErrInsufficientCash:              "InsufficientCash",
	ErrPriceOracleNotReady:           "PriceOracleNotReady",
	ErrInsufficientBalance:           "InsufficientBalance",
}

// Code numeric code
func (e ErrorCode) Code() int {
	return int(e)
}

func (e ErrorCode) String() string {
	if name, ok := errorNames[e]; ok {
		return name
	}

	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}
