package kv

import (
	"errors"
	"fmt"
)

// ErrNotFound key does not exist
var ErrNotFound = errors.New("kv: not found")

// Reader read side of a store
type Reader interface {
	// Get returns ErrNotFound if the key does not exist
	Get(key []byte) ([]byte, error)
	// Iterate calls fn for every key with the prefix in ascending order
	Iterate(prefix []byte, fn func(key, value []byte) error) error
}

// Store byte oriented key value store
type Store interface {
	Reader
	// Write applies the batch atomically
	Write(b *Batch) error
	Close() error
}

// Open open a store by driver name
func Open(driver, path string) (Store, error) {
	switch driver {
	case "", "memory":
		return NewMemory(), nil
	case "leveldb":
		return OpenLevelDB(path)
	case "bolt":
		return OpenBolt(path)
	default:
		return nil, fmt.Errorf("kv: unknown driver %q", driver)
	}
}

type op struct {
	key    []byte
	value  []byte
	delete bool
}

// Batch ordered list of puts and deletes
type Batch struct {
	ops []op
}

// Put put key
func (b *Batch) Put(key, value []byte) {
	b.ops = append(b.ops, op{key: clone(key), value: clone(value)})
}

// Delete delete key
func (b *Batch) Delete(key []byte) {
	b.ops = append(b.ops, op{key: clone(key), delete: true})
}

// Len number of operations
func (b *Batch) Len() int {
	return len(b.ops)
}

// Replay calls put or del for every op in order
func (b *Batch) Replay(put func(key, value []byte) error, del func(key []byte) error) error {
	for _, o := range b.ops {
		var err error
		if o.delete {
			err = del(o.key)
		} else {
			err = put(o.key, o.value)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}

	c := make([]byte, len(b))
	copy(c, b)
	return c
}
