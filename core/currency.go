package core

import (
	"strconv"

	"github.com/spf13/cast"
)

// CurrencyID identifier of a fungible asset
type CurrencyID uint32

func (c CurrencyID) String() string {
	return strconv.FormatUint(uint64(c), 10)
}

// ParseCurrencyID parse currency id from string
func ParseCurrencyID(s string) (CurrencyID, error) {
	id, err := cast.ToUint32E(s)
	if err != nil {
		return 0, err
	}

	return CurrencyID(id), nil
}

// AccountID account identifier
type AccountID string

func (a AccountID) String() string {
	return string(a)
}
