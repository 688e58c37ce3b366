package request

import (
	"context"

	"loans/core"
)

type key int

const (
	originKey key = iota
)

type ContextX struct {
	context.Context
}

// NewContext context extension
func NewContext(ctx context.Context) ContextX {
	return ContextX{
		Context: ctx,
	}
}

// WithOrigin context with the origin of the call
func (c ContextX) WithOrigin(origin core.AccountID) context.Context {
	return context.WithValue(c, originKey, origin)
}

// GetOrigin get origin from context
func (c ContextX) GetOrigin() (core.AccountID, bool) {
	origin, ok := c.Value(originKey).(core.AccountID)
	return origin, ok && origin != ""
}
