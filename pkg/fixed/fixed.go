package fixed

import (
	"database/sql/driver"
	"fmt"

	"github.com/fox-one/msgpack"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Decimals of every Fixed value
const Decimals = 18

var accuracy = uint256.NewInt(1_000_000_000_000_000_000)

// Fixed unsigned fixed point number, inner value scaled by 1e18 and bounded to u128
type Fixed struct {
	inner uint256.Int
}

type (
	// Rate interest rates, exchange rates, borrow index
	Rate = Fixed
	// Ratio factors in [0, 1]
	Ratio = Fixed
	// Price value of one unit of an asset
	Price = Fixed
)

// Zero 0
func Zero() Fixed {
	return Fixed{}
}

// One 1.0
func One() Fixed {
	return Fixed{inner: *accuracy}
}

// FromInner raw inner value
func FromInner(inner Balance) Fixed {
	return Fixed{inner: inner.v}
}

// FromInteger n.0
func FromInteger(n uint64) Fixed {
	var f Fixed
	f.inner.Mul(uint256.NewInt(n), accuracy)
	return f
}

// FromPercent p%
func FromPercent(p uint64) Fixed {
	f, _ := FromRational(p, 100)
	return f
}

// FromRational n / d, floored
func FromRational(n, d uint64) (Fixed, error) {
	return CheckedFromRational(NewBalance(n), NewBalance(d))
}

// CheckedFromRational n / d, floored
func CheckedFromRational(n, d Balance) (Fixed, error) {
	if d.IsZero() {
		return Fixed{}, ErrDivideByZero
	}

	var z uint256.Int
	z.Mul(&n.v, accuracy)
	z.Div(&z, &d.v)
	return fromInner(&z)
}

// MustFromString parses a decimal string, panics on error
func MustFromString(s string) Fixed {
	f, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return f
}

// Parse a decimal string like "0.05"
func Parse(s string) (Fixed, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Fixed{}, fmt.Errorf("parse fixed %q: %w", s, err)
	}

	return FromDecimal(d)
}

// FromDecimal truncates digits beyond 18 decimals
func FromDecimal(d decimal.Decimal) (Fixed, error) {
	if d.IsNegative() {
		return Fixed{}, ErrUnderflow
	}

	v, overflow := uint256.FromBig(d.Shift(Decimals).Truncate(0).BigInt())
	if overflow {
		return Fixed{}, ErrOverflow
	}

	return fromInner(v)
}

func fromInner(v *uint256.Int) (Fixed, error) {
	if v.BitLen() > maxBits {
		return Fixed{}, ErrOverflow
	}

	return Fixed{inner: *v}, nil
}

// Inner raw inner value
func (f Fixed) Inner() Balance {
	return Balance{v: f.inner}
}

func (f Fixed) IsZero() bool {
	return f.inner.IsZero()
}

func (f Fixed) IsOne() bool {
	return f.inner.Eq(accuracy)
}

// Cmp returns -1, 0 or 1
func (f Fixed) Cmp(o Fixed) int {
	return f.inner.Cmp(&o.inner)
}

func (f Fixed) LessThan(o Fixed) bool {
	return f.Cmp(o) < 0
}

func (f Fixed) GreaterThan(o Fixed) bool {
	return f.Cmp(o) > 0
}

func (f Fixed) Equal(o Fixed) bool {
	return f.Cmp(o) == 0
}

// Add checked addition
func (f Fixed) Add(o Fixed) (Fixed, error) {
	var z uint256.Int
	z.Add(&f.inner, &o.inner)
	return fromInner(&z)
}

// Sub checked subtraction
func (f Fixed) Sub(o Fixed) (Fixed, error) {
	if f.inner.Lt(&o.inner) {
		return Fixed{}, ErrUnderflow
	}

	var z uint256.Int
	z.Sub(&f.inner, &o.inner)
	return Fixed{inner: z}, nil
}

// SaturatingSub subtraction clamped at zero
func (f Fixed) SaturatingSub(o Fixed) Fixed {
	r, err := f.Sub(o)
	if err != nil {
		return Fixed{}
	}

	return r
}

// Mul checked multiplication, floored
func (f Fixed) Mul(o Fixed) (Fixed, error) {
	var z uint256.Int
	z.Mul(&f.inner, &o.inner)
	z.Div(&z, accuracy)
	return fromInner(&z)
}

// SaturatingMul multiplication clamped at the max value
func (f Fixed) SaturatingMul(o Fixed) Fixed {
	r, err := f.Mul(o)
	if err != nil {
		return FromInner(MaxBalance())
	}

	return r
}

// Div checked division, floored
func (f Fixed) Div(o Fixed) (Fixed, error) {
	if o.IsZero() {
		return Fixed{}, ErrDivideByZero
	}

	var z uint256.Int
	z.Mul(&f.inner, accuracy)
	z.Div(&z, &o.inner)
	return fromInner(&z)
}

// Reciprocal 1 / f
func (f Fixed) Reciprocal() (Fixed, error) {
	return One().Div(f)
}

// MulInt f * b, floored to an integer
func (f Fixed) MulInt(b Balance) (Balance, error) {
	var z uint256.Int
	z.Mul(&f.inner, &b.v)
	z.Div(&z, accuracy)
	return fromInt(&z)
}

// SaturatingMulInt like MulInt but clamped at the max balance
func (f Fixed) SaturatingMulInt(b Balance) Balance {
	r, err := f.MulInt(b)
	if err != nil {
		return MaxBalance()
	}

	return r
}

// Decimal value as decimal
func (f Fixed) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(f.inner.ToBig(), -Decimals)
}

func (f Fixed) String() string {
	return f.Decimal().String()
}

// json & text encoding

func (f Fixed) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Fixed) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}

	*f = v
	return nil
}

// sql

func (f Fixed) Value() (driver.Value, error) {
	return f.String(), nil
}

func (f *Fixed) Scan(src interface{}) error {
	s := cast.ToString(src)
	if s == "" {
		*f = Fixed{}
		return nil
	}

	return f.UnmarshalText([]byte(s))
}

// msgpack

func (f Fixed) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeBytes(f.inner.Bytes())
}

func (f *Fixed) DecodeMsgpack(dec *msgpack.Decoder) error {
	data, err := dec.DecodeBytes()
	if err != nil {
		return err
	}

	if len(data) > maxBits/8 {
		return ErrOverflow
	}

	f.inner.SetBytes(data)
	return nil
}
