package kv

import (
	"bytes"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketState = []byte("state")

// Bolt persistent store on a single bbolt bucket
type Bolt struct {
	db *bolt.DB
}

// OpenBolt creates or opens a bolt file at path
func OpenBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketState)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Bolt{db: db}, nil
}

func (s *Bolt) Get(key []byte) ([]byte, error) {
	var v []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketState).Get(key)
		if raw == nil {
			return ErrNotFound
		}

		// raw is only valid inside the transaction
		v = clone(raw)
		return nil
	})

	return v, err
}

func (s *Bolt) Iterate(prefix []byte, fn func(key, value []byte) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketState).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			if err := fn(clone(k), clone(v)); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *Bolt) Write(b *Batch) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketState)
		return b.Replay(bucket.Put, bucket.Delete)
	})
}

func (s *Bolt) Close() error {
	return s.db.Close()
}
