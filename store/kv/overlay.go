package kv

import (
	"bytes"
	"context"
	"sort"
)

// Overlay staged writes on top of a parent store
//
// reads fall through to the parent, Commit flushes the staged writes to
// the parent as one batch and Discard drops them. Overlays nest: the
// parent of an overlay can be another overlay. Not safe for concurrent use.
type Overlay struct {
	parent Store
	// nil value means deleted
	staged map[string][]byte
	order  []string
	closed bool
}

// NewOverlay new overlay on parent
func NewOverlay(parent Store) *Overlay {
	return &Overlay{
		parent: parent,
		staged: make(map[string][]byte),
	}
}

func (o *Overlay) Get(key []byte) ([]byte, error) {
	if v, ok := o.staged[string(key)]; ok {
		if v == nil {
			return nil, ErrNotFound
		}

		return clone(v), nil
	}

	return o.parent.Get(key)
}

func (o *Overlay) Iterate(prefix []byte, fn func(key, value []byte) error) error {
	merged := make(map[string][]byte)
	if err := o.parent.Iterate(prefix, func(key, value []byte) error {
		merged[string(key)] = value
		return nil
	}); err != nil {
		return err
	}

	for k, v := range o.staged {
		if !bytes.HasPrefix([]byte(k), prefix) {
			continue
		}

		if v == nil {
			delete(merged, k)
		} else {
			merged[k] = v
		}
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := fn([]byte(k), clone(merged[k])); err != nil {
			return err
		}
	}

	return nil
}

func (o *Overlay) put(key string, value []byte) {
	if _, ok := o.staged[key]; !ok {
		o.order = append(o.order, key)
	}

	o.staged[key] = value
}

func (o *Overlay) Write(b *Batch) error {
	return b.Replay(func(key, value []byte) error {
		if value == nil {
			value = []byte{}
		}

		o.put(string(key), value)
		return nil
	}, func(key []byte) error {
		o.put(string(key), nil)
		return nil
	})
}

// Put stage a put
func (o *Overlay) Put(key, value []byte) error {
	var b Batch
	b.Put(key, value)
	return o.Write(&b)
}

// Delete stage a delete
func (o *Overlay) Delete(key []byte) error {
	var b Batch
	b.Delete(key)
	return o.Write(&b)
}

// Dirty number of staged keys
func (o *Overlay) Dirty() int {
	return len(o.order)
}

// Commit flush the staged writes into the parent
func (o *Overlay) Commit() error {
	if o.closed {
		return nil
	}

	var b Batch
	for _, k := range o.order {
		if v := o.staged[k]; v == nil {
			b.Delete([]byte(k))
		} else {
			b.Put([]byte(k), v)
		}
	}

	if b.Len() > 0 {
		if err := o.parent.Write(&b); err != nil {
			return err
		}
	}

	o.Discard()
	return nil
}

// Discard drop the staged writes
func (o *Overlay) Discard() {
	o.staged = make(map[string][]byte)
	o.order = nil
	o.closed = true
}

// Close discards the overlay, the parent is not closed
func (o *Overlay) Close() error {
	o.Discard()
	return nil
}

type contextKey struct{}

// WithTx returns a copy of ctx carrying the overlay
func WithTx(ctx context.Context, tx *Overlay) context.Context {
	return context.WithValue(ctx, contextKey{}, tx)
}

// TxFrom overlay carried by ctx, nil if none
func TxFrom(ctx context.Context) *Overlay {
	tx, _ := ctx.Value(contextKey{}).(*Overlay)
	return tx
}

// Current the overlay carried by ctx, or base outside of any scope
func Current(ctx context.Context, base Store) Store {
	if tx := TxFrom(ctx); tx != nil {
		return tx
	}

	return base
}

// Transact runs fn in a new overlay nested in the current scope
//
// the overlay is committed into its parent if fn returns nil and discarded
// otherwise, so a failed inner scope leaves the outer one untouched.
func Transact(ctx context.Context, base Store, fn func(ctx context.Context) error) error {
	tx := NewOverlay(Current(ctx, base))
	if err := fn(WithTx(ctx, tx)); err != nil {
		tx.Discard()
		return err
	}

	return tx.Commit()
}
