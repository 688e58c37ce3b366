package compound

import (
	"testing"

	"loans/pkg/fixed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRateModel(t *testing.T) {
	m := DefaultRateModel()
	require.NotNil(t, m.Jump)
	assert.True(t, m.CheckModel())
	assert.Equal(t, "20000000000000000", m.Jump.BaseRate.Inner().String())
	assert.Equal(t, "100000000000000000", m.Jump.JumpRate.Inner().String())
	assert.Equal(t, "320000000000000000", m.Jump.FullRate.Inner().String())
	assert.Equal(t, fixed.FromPercent(80), m.Jump.JumpUtilization)
}

func TestCheckModel(t *testing.T) {
	cases := map[string]InterestRateModel{
		"base rate over 10%":     NewJumpModel(fixed.FromPercent(36), fixed.FromPercent(15), fixed.FromPercent(35), fixed.FromPercent(80)),
		"jump rate over 30%":     NewJumpModel(fixed.FromPercent(5), fixed.FromPercent(36), fixed.FromPercent(37), fixed.FromPercent(80)),
		"full rate over 50%":     NewJumpModel(fixed.FromPercent(5), fixed.FromPercent(15), fixed.FromPercent(57), fixed.FromPercent(80)),
		"base above jump":        NewJumpModel(fixed.FromPercent(10), fixed.FromPercent(9), fixed.FromPercent(14), fixed.FromPercent(80)),
		"jump above full":        NewJumpModel(fixed.FromPercent(5), fixed.FromPercent(15), fixed.FromPercent(14), fixed.FromPercent(80)),
		"zero jump utilization":  NewJumpModel(fixed.FromPercent(2), fixed.FromPercent(10), fixed.FromPercent(32), fixed.Zero()),
		"full jump utilization":  NewJumpModel(fixed.FromPercent(2), fixed.FromPercent(10), fixed.FromPercent(32), fixed.One()),
		"curve":                  NewCurveModel(fixed.FromPercent(2)),
		"empty":                  {},
	}

	for name, m := range cases {
		t.Run(name, func(t *testing.T) {
			assert.False(t, m.CheckModel())
		})
	}

	assert.True(t, NewPolynomialModel(fixed.FromPercent(2), fixed.FromPercent(10), fixed.FromPercent(32)).CheckModel())
}

func TestJumpBorrowRate(t *testing.T) {
	m := DefaultRateModel()

	// below the kink: util = 1000 / 1500
	util, err := UtilizationRatio(fixed.NewBalance(500), fixed.NewBalance(1000), fixed.Balance{})
	require.NoError(t, err)
	rate, err := m.BorrowRate(util)
	require.NoError(t, err)

	slope := fixed.FromPercent(8).SaturatingMul(util)
	expect, err := slope.Div(fixed.FromPercent(80))
	require.NoError(t, err)
	expect, err = expect.Add(fixed.FromPercent(2))
	require.NoError(t, err)
	assert.Equal(t, expect, rate)

	// at the kink the rate is exactly the jump rate
	rate, err = m.BorrowRate(fixed.FromPercent(80))
	require.NoError(t, err)
	assert.Equal(t, fixed.FromPercent(10), rate)

	// full utilization hits the full rate
	rate, err = m.BorrowRate(fixed.One())
	require.NoError(t, err)
	assert.Equal(t, fixed.FromPercent(32), rate)

	// zero utilization is the base rate
	rate, err = m.BorrowRate(fixed.Zero())
	require.NoError(t, err)
	assert.Equal(t, fixed.FromPercent(2), rate)

	// monotonic across the kink
	prev := fixed.Zero()
	for p := uint64(0); p <= 100; p += 5 {
		rate, err := m.BorrowRate(fixed.FromPercent(p))
		require.NoError(t, err)
		assert.False(t, rate.LessThan(prev), "rate decreased at %d%%", p)
		prev = rate
	}
}

func TestPolynomialBorrowRate(t *testing.T) {
	m := NewPolynomialModel(fixed.FromPercent(2), fixed.FromPercent(10), fixed.FromPercent(32))
	rate, err := m.BorrowRate(fixed.FromPercent(10))
	require.NoError(t, err)
	assert.Equal(t, "77142857142857142", rate.Inner().String())
}

func TestSupplyRate(t *testing.T) {
	borrowRate := fixed.FromPercent(2)
	util := fixed.FromPercent(50)

	assert.Equal(t, fixed.FromPercent(1), SupplyRate(borrowRate, util, fixed.Zero()))
	// 2% * 0.9 * 0.5
	assert.Equal(t, fixed.MustFromString("0.009"), SupplyRate(borrowRate, util, fixed.FromPercent(10)))
	assert.True(t, SupplyRate(borrowRate, util, fixed.One()).IsZero())
}
