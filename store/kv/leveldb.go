package kv

import (
	"errors"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// LevelDB persistent store on goleveldb
type LevelDB struct {
	db *leveldb.DB
}

// OpenLevelDB creates or opens a LevelDB database at path
func OpenLevelDB(path string) (*LevelDB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}

	return &LevelDB{db: db}, nil
}

func (l *LevelDB) Get(key []byte) ([]byte, error) {
	v, err := l.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrNotFound
	}

	return v, err
}

func (l *LevelDB) Iterate(prefix []byte, fn func(key, value []byte) error) error {
	iter := l.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()

	for iter.Next() {
		if err := fn(clone(iter.Key()), clone(iter.Value())); err != nil {
			return err
		}
	}

	return iter.Error()
}

func (l *LevelDB) Write(b *Batch) error {
	batch := new(leveldb.Batch)
	_ = b.Replay(func(key, value []byte) error {
		batch.Put(key, value)
		return nil
	}, func(key []byte) error {
		batch.Delete(key)
		return nil
	})

	return l.db.Write(batch, nil)
}

func (l *LevelDB) Close() error {
	return l.db.Close()
}
