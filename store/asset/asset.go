package asset

import (
	"context"
	"encoding/binary"
	"errors"

	"loans/core"
	"loans/pkg/fixed"
	"loans/store/kv"

	"github.com/fox-one/msgpack"
)

var (
	prefixBalance  = []byte("asset/balance/")
	prefixIssuance = []byte("asset/issuance/")
)

type ledger struct {
	base kv.Store
}

// New asset ledger on base
//
// balances live next to the engine state, so a transfer made inside a
// transactional scope is rolled back with it.
func New(base kv.Store) core.AssetLedger {
	return &ledger{base: base}
}

func balanceKey(currency core.CurrencyID, who core.AccountID) []byte {
	return append(issuanceKey(prefixBalance, currency), who...)
}

func issuanceKey(prefix []byte, currency core.CurrencyID) []byte {
	key := make([]byte, len(prefix)+4)
	copy(key, prefix)
	binary.BigEndian.PutUint32(key[len(prefix):], uint32(currency))
	return key
}

func (l *ledger) read(ctx context.Context, key []byte) (fixed.Balance, error) {
	var b fixed.Balance
	data, err := kv.Current(ctx, l.base).Get(key)
	if errors.Is(err, kv.ErrNotFound) {
		return b, nil
	} else if err != nil {
		return b, err
	}

	err = msgpack.Unmarshal(data, &b)
	return b, err
}

func (l *ledger) update(ctx context.Context, values map[string]fixed.Balance) error {
	var batch kv.Batch
	for key, v := range values {
		if v.IsZero() {
			batch.Delete([]byte(key))
			continue
		}

		data, err := msgpack.Marshal(v)
		if err != nil {
			return err
		}

		batch.Put([]byte(key), data)
	}

	return kv.Current(ctx, l.base).Write(&batch)
}

// Transfer moves amount, keepAlive has no effect since accounts have no existential deposit
func (l *ledger) Transfer(ctx context.Context, currency core.CurrencyID, from, to core.AccountID, amount fixed.Balance, keepAlive bool) error {
	if from == to || amount.IsZero() {
		return nil
	}

	fromKey, toKey := balanceKey(currency, from), balanceKey(currency, to)
	fromBalance, err := l.read(ctx, fromKey)
	if err != nil {
		return err
	}

	if fromBalance.LessThan(amount) {
		return core.ErrInsufficientBalance
	}

	toBalance, err := l.read(ctx, toKey)
	if err != nil {
		return err
	}

	if toBalance, err = toBalance.Add(amount); err != nil {
		return err
	}

	fromBalance, _ = fromBalance.Sub(amount)
	return l.update(ctx, map[string]fixed.Balance{
		string(fromKey): fromBalance,
		string(toKey):   toBalance,
	})
}

func (l *ledger) MintInto(ctx context.Context, currency core.CurrencyID, to core.AccountID, amount fixed.Balance) error {
	key := balanceKey(currency, to)
	balance, err := l.read(ctx, key)
	if err != nil {
		return err
	}

	issuance, err := l.TotalIssuance(ctx, currency)
	if err != nil {
		return err
	}

	if balance, err = balance.Add(amount); err != nil {
		return err
	}

	if issuance, err = issuance.Add(amount); err != nil {
		return err
	}

	return l.update(ctx, map[string]fixed.Balance{
		string(key): balance,
		string(issuanceKey(prefixIssuance, currency)): issuance,
	})
}

func (l *ledger) BurnFrom(ctx context.Context, currency core.CurrencyID, from core.AccountID, amount fixed.Balance) error {
	key := balanceKey(currency, from)
	balance, err := l.read(ctx, key)
	if err != nil {
		return err
	}

	if balance.LessThan(amount) {
		return core.ErrInsufficientBalance
	}

	issuance, err := l.TotalIssuance(ctx, currency)
	if err != nil {
		return err
	}

	balance, _ = balance.Sub(amount)
	return l.update(ctx, map[string]fixed.Balance{
		string(key): balance,
		string(issuanceKey(prefixIssuance, currency)): issuance.SaturatingSub(amount),
	})
}

func (l *ledger) BalanceOf(ctx context.Context, currency core.CurrencyID, who core.AccountID) (fixed.Balance, error) {
	return l.read(ctx, balanceKey(currency, who))
}

func (l *ledger) TotalIssuance(ctx context.Context, currency core.CurrencyID) (fixed.Balance, error) {
	return l.read(ctx, issuanceKey(prefixIssuance, currency))
}
