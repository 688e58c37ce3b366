package state

import (
	"encoding/binary"

	"loans/core"
)

var (
	prefixMarket   = []byte("market/")
	prefixLedger   = []byte("ledger/")
	prefixBorrow   = []byte("borrow/")
	prefixDeposit  = []byte("deposit/")
	prefixEarned   = []byte("earned/")
	keyLastAccrued = []byte("last_accrued_timestamp")
)

// currencyKey prefix | big endian currency, sorted by currency id
func currencyKey(prefix []byte, currency core.CurrencyID) []byte {
	key := make([]byte, len(prefix)+4)
	copy(key, prefix)
	binary.BigEndian.PutUint32(key[len(prefix):], uint32(currency))
	return key
}

func accountKey(prefix []byte, currency core.CurrencyID, who core.AccountID) []byte {
	return append(currencyKey(prefix, currency), who...)
}

func currencyFromKey(prefix, key []byte) core.CurrencyID {
	return core.CurrencyID(binary.BigEndian.Uint32(key[len(prefix):]))
}

func accountFromKey(prefix, key []byte) core.AccountID {
	return core.AccountID(key[len(prefix)+4:])
}
