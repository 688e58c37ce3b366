package fixed

import (
	"encoding/json"
	"testing"

	"github.com/bmizerany/assert"
	"github.com/fox-one/msgpack"
	"github.com/shopspring/decimal"
)

func TestParse(t *testing.T) {
	data := map[string]string{
		"0":                     "0",
		"1":                     "1000000000000000000",
		"0.02":                  "20000000000000000",
		"1.05":                  "1050000000000000000",
		"0.0000000000000000019": "1",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			f, err := Parse(k)
			assert.Equal(t, nil, err)
			assert.Equal(t, v, f.Inner().String())
		})
	}
}

func TestFromRational(t *testing.T) {
	f, err := FromRational(14, 500)
	assert.Equal(t, nil, err)
	assert.Equal(t, "0.028", f.String())

	f, err = FromRational(1, 3)
	assert.Equal(t, nil, err)
	assert.Equal(t, "333333333333333333", f.Inner().String())

	_, err = FromRational(1, 0)
	assert.Equal(t, ErrDivideByZero, err)
}

func TestCheckedArithmetic(t *testing.T) {
	max := MaxBalance()
	_, err := max.Add(NewBalance(1))
	assert.Equal(t, ErrOverflow, err)

	_, err = NewBalance(1).Sub(NewBalance(2))
	assert.Equal(t, ErrUnderflow, err)

	assert.Equal(t, NewBalance(0), NewBalance(1).SaturatingSub(NewBalance(2)))

	_, err = max.Mul(NewBalance(2))
	assert.Equal(t, ErrOverflow, err)

	_, err = NewBalance(1).Div(Balance{})
	assert.Equal(t, ErrDivideByZero, err)

	_, err = One().Sub(FromInteger(2))
	assert.Equal(t, ErrUnderflow, err)

	_, err = FromInner(max).Mul(FromInteger(2))
	assert.Equal(t, ErrOverflow, err)
}

func TestMulInt(t *testing.T) {
	// 1.05 * 100 = 105
	index := MustFromString("1.05")
	v, err := index.MulInt(NewBalance(100))
	assert.Equal(t, nil, err)
	assert.Equal(t, NewBalance(105), v)

	// floor
	v, err = MustFromString("0.3333").MulInt(NewBalance(10))
	assert.Equal(t, nil, err)
	assert.Equal(t, NewBalance(3), v)
}

func TestReciprocal(t *testing.T) {
	r, err := MustFromString("0.3").Reciprocal()
	assert.Equal(t, nil, err)
	v, err := r.MulInt(NewBalance(1000))
	assert.Equal(t, nil, err)
	assert.Equal(t, NewBalance(3333), v)
}

func TestFixedDiv(t *testing.T) {
	r, err := MustFromString("1.2").Div(One())
	assert.Equal(t, nil, err)
	assert.Equal(t, "1.2", r.String())

	_, err = One().Div(Zero())
	assert.Equal(t, ErrDivideByZero, err)
}

func TestBalanceFromDecimal(t *testing.T) {
	b, err := BalanceFromDecimal(decimal.RequireFromString("500.000001"), 12)
	assert.Equal(t, nil, err)
	assert.Equal(t, "500000001000000", b.String())
	assert.Equal(t, "500.000001", b.Shift(12).String())

	_, err = BalanceFromDecimal(decimal.NewFromInt(-1), 0)
	assert.Equal(t, ErrUnderflow, err)
}

func TestEncoding(t *testing.T) {
	type record struct {
		Amount Balance `json:"amount"`
		Rate   Rate    `json:"rate"`
	}

	in := record{Amount: MustBalance("123456789012345678901234567890"), Rate: MustFromString("0.025")}

	t.Run("json", func(t *testing.T) {
		data, err := json.Marshal(in)
		assert.Equal(t, nil, err)
		assert.Equal(t, `{"amount":"123456789012345678901234567890","rate":"0.025"}`, string(data))

		var out record
		assert.Equal(t, nil, json.Unmarshal(data, &out))
		assert.Equal(t, in, out)
	})

	t.Run("msgpack", func(t *testing.T) {
		data, err := msgpack.Marshal(in)
		assert.Equal(t, nil, err)

		var out record
		assert.Equal(t, nil, msgpack.Unmarshal(data, &out))
		assert.Equal(t, in, out)
	})
}
