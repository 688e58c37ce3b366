package fixed

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/fox-one/msgpack"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

var (
	// ErrOverflow result does not fit in 128 bits
	ErrOverflow = errors.New("arithmetic overflow")
	// ErrUnderflow result would be negative
	ErrUnderflow = errors.New("arithmetic underflow")
	// ErrDivideByZero division by zero
	ErrDivideByZero = errors.New("division by zero")
)

// maxBits every Balance and Fixed inner value is an unsigned 128-bit integer
const maxBits = 128

// Balance amount of an asset in its smallest unit, bounded to u128
type Balance struct {
	v uint256.Int
}

// NewBalance balance from uint64
func NewBalance(n uint64) Balance {
	var b Balance
	b.v.SetUint64(n)
	return b
}

// ParseBalance parse a base-10 integer string
func ParseBalance(s string) (Balance, error) {
	var b Balance
	if err := b.v.SetFromDecimal(s); err != nil {
		return Balance{}, fmt.Errorf("parse balance %q: %w", s, err)
	}

	if b.v.BitLen() > maxBits {
		return Balance{}, ErrOverflow
	}

	return b, nil
}

// MustBalance like ParseBalance but panics
func MustBalance(s string) Balance {
	b, err := ParseBalance(s)
	if err != nil {
		panic(err)
	}

	return b
}

// MaxBalance 2^128 - 1
func MaxBalance() Balance {
	var b Balance
	b.v.Lsh(uint256.NewInt(1), maxBits)
	b.v.SubUint64(&b.v, 1)
	return b
}

func fromInt(v *uint256.Int) (Balance, error) {
	if v.BitLen() > maxBits {
		return Balance{}, ErrOverflow
	}

	return Balance{v: *v}, nil
}

func (b Balance) IsZero() bool {
	return b.v.IsZero()
}

// Cmp returns -1, 0 or 1
func (b Balance) Cmp(o Balance) int {
	return b.v.Cmp(&o.v)
}

func (b Balance) LessThan(o Balance) bool {
	return b.Cmp(o) < 0
}

func (b Balance) GreaterThan(o Balance) bool {
	return b.Cmp(o) > 0
}

func (b Balance) Equal(o Balance) bool {
	return b.Cmp(o) == 0
}

// Add checked addition
func (b Balance) Add(o Balance) (Balance, error) {
	var z uint256.Int
	z.Add(&b.v, &o.v)
	return fromInt(&z)
}

// Sub checked subtraction
func (b Balance) Sub(o Balance) (Balance, error) {
	if b.v.Lt(&o.v) {
		return Balance{}, ErrUnderflow
	}

	var z uint256.Int
	z.Sub(&b.v, &o.v)
	return Balance{v: z}, nil
}

// SaturatingSub subtraction clamped at zero
func (b Balance) SaturatingSub(o Balance) Balance {
	r, err := b.Sub(o)
	if err != nil {
		return Balance{}
	}

	return r
}

// Mul checked multiplication
func (b Balance) Mul(o Balance) (Balance, error) {
	var z uint256.Int
	z.Mul(&b.v, &o.v)
	return fromInt(&z)
}

// MulUint64 checked multiplication by a small integer
func (b Balance) MulUint64(n uint64) (Balance, error) {
	return b.Mul(NewBalance(n))
}

// Div checked floor division
func (b Balance) Div(o Balance) (Balance, error) {
	if o.IsZero() {
		return Balance{}, ErrDivideByZero
	}

	var z uint256.Int
	z.Div(&b.v, &o.v)
	return Balance{v: z}, nil
}

// DivUint64 checked floor division by a small integer
func (b Balance) DivUint64(n uint64) (Balance, error) {
	return b.Div(NewBalance(n))
}

// Min smaller of the two
func (b Balance) Min(o Balance) Balance {
	if b.LessThan(o) {
		return b
	}

	return o
}

func (b Balance) String() string {
	return b.v.Dec()
}

// Decimal integer value as decimal
func (b Balance) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(b.v.ToBig(), 0)
}

// Shift human readable amount with the given precision, e.g. Shift(12) of 1e12 is "1"
func (b Balance) Shift(precision int32) decimal.Decimal {
	return b.Decimal().Shift(-precision)
}

// BalanceFromDecimal converts a human readable amount with precision decimals, truncating the rest
func BalanceFromDecimal(d decimal.Decimal, precision int32) (Balance, error) {
	if d.IsNegative() {
		return Balance{}, ErrUnderflow
	}

	v, overflow := uint256.FromBig(d.Shift(precision).Truncate(0).BigInt())
	if overflow {
		return Balance{}, ErrOverflow
	}

	return fromInt(v)
}

// json & text encoding

func (b Balance) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Balance) UnmarshalText(text []byte) error {
	v, err := ParseBalance(string(text))
	if err != nil {
		return err
	}

	*b = v
	return nil
}

// sql

func (b Balance) Value() (driver.Value, error) {
	return b.String(), nil
}

func (b *Balance) Scan(src interface{}) error {
	s := cast.ToString(src)
	if s == "" {
		*b = Balance{}
		return nil
	}

	return b.UnmarshalText([]byte(s))
}

// msgpack

func (b Balance) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeBytes(b.v.Bytes())
}

func (b *Balance) DecodeMsgpack(dec *msgpack.Decoder) error {
	data, err := dec.DecodeBytes()
	if err != nil {
		return err
	}

	if len(data) > maxBits/8 {
		return ErrOverflow
	}

	b.v.SetBytes(data)
	return nil
}
