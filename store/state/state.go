package state

import (
	"context"
	"encoding/binary"
	"errors"

	"loans/core"
	"loans/store/kv"

	"github.com/fox-one/msgpack"
)

type stateStore struct {
	base kv.Store
}

// New state store on base, reads and writes follow the scope carried by ctx
func New(base kv.Store) core.IStateStore {
	return &stateStore{base: base}
}

func (s *stateStore) Transact(ctx context.Context, fn func(ctx context.Context) error) error {
	return kv.Transact(ctx, s.base, fn)
}

func (s *stateStore) store(ctx context.Context) kv.Store {
	return kv.Current(ctx, s.base)
}

func (s *stateStore) get(ctx context.Context, key []byte, v interface{}) (bool, error) {
	data, err := s.store(ctx).Get(key)
	if errors.Is(err, kv.ErrNotFound) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	return true, msgpack.Unmarshal(data, v)
}

func (s *stateStore) put(ctx context.Context, key []byte, v interface{}) error {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return err
	}

	var b kv.Batch
	b.Put(key, data)
	return s.store(ctx).Write(&b)
}

func (s *stateStore) delete(ctx context.Context, key []byte) error {
	var b kv.Batch
	b.Delete(key)
	return s.store(ctx).Write(&b)
}

func (s *stateStore) ListCurrencies(ctx context.Context) ([]core.CurrencyID, error) {
	var currencies []core.CurrencyID
	err := s.store(ctx).Iterate(prefixMarket, func(key, _ []byte) error {
		currencies = append(currencies, currencyFromKey(prefixMarket, key))
		return nil
	})

	return currencies, err
}

func (s *stateStore) FindMarket(ctx context.Context, currency core.CurrencyID) (*core.Market, error) {
	var market core.Market
	ok, err := s.get(ctx, currencyKey(prefixMarket, currency), &market)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, core.ErrMarketDoesNotExist
	}

	return &market, nil
}

func (s *stateStore) SaveMarket(ctx context.Context, currency core.CurrencyID, market *core.Market) error {
	return s.put(ctx, currencyKey(prefixMarket, currency), market)
}

func (s *stateStore) FindLedger(ctx context.Context, currency core.CurrencyID) (*core.MarketLedger, error) {
	var ledger core.MarketLedger
	ok, err := s.get(ctx, currencyKey(prefixLedger, currency), &ledger)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, core.ErrMarketDoesNotExist
	}

	return &ledger, nil
}

func (s *stateStore) SaveLedger(ctx context.Context, currency core.CurrencyID, ledger *core.MarketLedger) error {
	return s.put(ctx, currencyKey(prefixLedger, currency), ledger)
}

func (s *stateStore) FindBorrowSnapshot(ctx context.Context, currency core.CurrencyID, who core.AccountID) (*core.BorrowSnapshot, error) {
	var snapshot core.BorrowSnapshot
	if _, err := s.get(ctx, accountKey(prefixBorrow, currency, who), &snapshot); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

func (s *stateStore) SaveBorrowSnapshot(ctx context.Context, currency core.CurrencyID, who core.AccountID, snapshot *core.BorrowSnapshot) error {
	return s.put(ctx, accountKey(prefixBorrow, currency, who), snapshot)
}

func (s *stateStore) ListBorrowers(ctx context.Context, currency core.CurrencyID) ([]core.AccountID, error) {
	prefix := currencyKey(prefixBorrow, currency)

	var borrowers []core.AccountID
	err := s.store(ctx).Iterate(prefix, func(key, value []byte) error {
		var snapshot core.BorrowSnapshot
		if err := msgpack.Unmarshal(value, &snapshot); err != nil {
			return err
		}

		if !snapshot.IsZero() {
			borrowers = append(borrowers, accountFromKey(prefixBorrow, key))
		}

		return nil
	})

	return borrowers, err
}

func (s *stateStore) FindDeposits(ctx context.Context, currency core.CurrencyID, who core.AccountID) (*core.Deposits, error) {
	var deposits core.Deposits
	if _, err := s.get(ctx, accountKey(prefixDeposit, currency, who), &deposits); err != nil {
		return nil, err
	}

	return &deposits, nil
}

func (s *stateStore) SaveDeposits(ctx context.Context, currency core.CurrencyID, who core.AccountID, deposits *core.Deposits) error {
	key := accountKey(prefixDeposit, currency, who)
	if deposits.VoucherBalance.IsZero() {
		return s.delete(ctx, key)
	}

	return s.put(ctx, key, deposits)
}

func (s *stateStore) FindEarnedSnapshot(ctx context.Context, currency core.CurrencyID, who core.AccountID) (*core.EarnedSnapshot, error) {
	var snapshot core.EarnedSnapshot
	if _, err := s.get(ctx, accountKey(prefixEarned, currency, who), &snapshot); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

func (s *stateStore) SaveEarnedSnapshot(ctx context.Context, currency core.CurrencyID, who core.AccountID, snapshot *core.EarnedSnapshot) error {
	return s.put(ctx, accountKey(prefixEarned, currency, who), snapshot)
}

func (s *stateStore) LastAccruedTimestamp(ctx context.Context) (uint64, error) {
	data, err := s.store(ctx).Get(keyLastAccrued)
	if errors.Is(err, kv.ErrNotFound) {
		return 0, nil
	} else if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint64(data), nil
}

func (s *stateStore) SetLastAccruedTimestamp(ctx context.Context, ts uint64) error {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, ts)

	var b kv.Batch
	b.Put(keyLastAccrued, data)
	return s.store(ctx).Write(&b)
}
