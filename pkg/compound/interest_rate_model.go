package compound

import (
	"errors"

	"loans/pkg/fixed"
)

var (
	// MaxBaseRate upper bound of the jump model base rate, 10%
	MaxBaseRate = fixed.FromPercent(10)
	// MaxJumpRate upper bound of the jump model jump rate, 30%
	MaxJumpRate = fixed.FromPercent(30)
	// MaxFullRate upper bound of the jump model full rate, 50%
	MaxFullRate = fixed.FromPercent(50)

	// PolynomialJumpUtilization kink of the polynomial model
	PolynomialJumpUtilization = fixed.FromPercent(14)

	errEmptyRateModel = errors.New("empty interest rate model")
)

// InterestRateModel one of the supported models, exactly one field is set
type InterestRateModel struct {
	Jump       *JumpModel       `json:"jump,omitempty" msgpack:"jump,omitempty"`
	Curve      *CurveModel      `json:"curve,omitempty" msgpack:"curve,omitempty"`
	Polynomial *PolynomialModel `json:"polynomial,omitempty" msgpack:"polynomial,omitempty"`
}

// DefaultRateModel jump model 2% / 10% / 32% with the kink at 80%
func DefaultRateModel() InterestRateModel {
	return NewJumpModel(
		fixed.FromPercent(2),
		fixed.FromPercent(10),
		fixed.FromPercent(32),
		fixed.FromPercent(80),
	)
}

// NewJumpModel new jump model
func NewJumpModel(baseRate, jumpRate, fullRate fixed.Rate, jumpUtilization fixed.Ratio) InterestRateModel {
	return InterestRateModel{Jump: &JumpModel{
		BaseRate:        baseRate,
		JumpRate:        jumpRate,
		FullRate:        fullRate,
		JumpUtilization: jumpUtilization,
	}}
}

// NewCurveModel new curve model
func NewCurveModel(baseRate fixed.Rate) InterestRateModel {
	return InterestRateModel{Curve: &CurveModel{BaseRate: baseRate}}
}

// NewPolynomialModel new polynomial model
func NewPolynomialModel(baseRate, jumpRate, fullRate fixed.Rate) InterestRateModel {
	return InterestRateModel{Polynomial: &PolynomialModel{
		BaseRate: baseRate,
		JumpRate: jumpRate,
		FullRate: fullRate,
	}}
}

// CheckModel sanity check of the model parameters
func (m InterestRateModel) CheckModel() bool {
	switch {
	case m.Jump != nil:
		return m.Jump.CheckModel()
	case m.Curve != nil:
		return m.Curve.CheckModel()
	case m.Polynomial != nil:
		return m.Polynomial.CheckModel()
	default:
		return false
	}
}

// BorrowRate borrow rate per year at the given utilization
func (m InterestRateModel) BorrowRate(utilization fixed.Ratio) (fixed.Rate, error) {
	switch {
	case m.Jump != nil:
		return m.Jump.BorrowRate(utilization)
	case m.Curve != nil:
		return m.Curve.BorrowRate(utilization)
	case m.Polynomial != nil:
		return m.Polynomial.BorrowRate(utilization)
	default:
		return fixed.Zero(), errEmptyRateModel
	}
}

// SupplyRate supply_rate = borrow_rate * (1 - reserve_factor) * utilization
func SupplyRate(borrowRate fixed.Rate, utilization, reserveFactor fixed.Ratio) fixed.Rate {
	oneMinusReserveFactor := fixed.One().SaturatingSub(reserveFactor)
	rateToPool := borrowRate.SaturatingMul(oneMinusReserveFactor)
	return rateToPool.SaturatingMul(utilization)
}

// JumpModel two segment piecewise linear model
type JumpModel struct {
	// rate at 0% utilization
	BaseRate fixed.Rate `json:"base_rate"`
	// rate at the jump utilization
	JumpRate fixed.Rate `json:"jump_rate"`
	// rate at 100% utilization
	FullRate fixed.Rate `json:"full_rate"`
	// utilization where the slope changes
	JumpUtilization fixed.Ratio `json:"jump_utilization"`
}

func (m *JumpModel) CheckModel() bool {
	if m.BaseRate.GreaterThan(MaxBaseRate) ||
		m.JumpRate.GreaterThan(MaxJumpRate) ||
		m.FullRate.GreaterThan(MaxFullRate) {
		return false
	}

	if m.BaseRate.GreaterThan(m.JumpRate) || m.JumpRate.GreaterThan(m.FullRate) {
		return false
	}

	// the kink must split [0, 1] into two non empty segments
	return !m.JumpUtilization.IsZero() && m.JumpUtilization.LessThan(fixed.One())
}

func (m *JumpModel) BorrowRate(utilization fixed.Ratio) (fixed.Rate, error) {
	if !utilization.GreaterThan(m.JumpUtilization) {
		// (jump_rate - base_rate) * utilization / jump_utilization + base_rate
		slope, err := m.JumpRate.Sub(m.BaseRate)
		if err != nil {
			return fixed.Zero(), err
		}

		r, err := slope.SaturatingMul(utilization).Div(m.JumpUtilization)
		if err != nil {
			return fixed.Zero(), err
		}

		return r.Add(m.BaseRate)
	}

	// (full_rate - jump_rate) * (utilization - jump_utilization) / (1 - jump_utilization) + jump_rate
	excessUtil := utilization.SaturatingSub(m.JumpUtilization)
	slope, err := m.FullRate.Sub(m.JumpRate)
	if err != nil {
		return fixed.Zero(), err
	}

	r, err := slope.SaturatingMul(excessUtil).Div(fixed.One().SaturatingSub(m.JumpUtilization))
	if err != nil {
		return fixed.Zero(), err
	}

	return r.Add(m.JumpRate)
}

// CurveModel is not usable yet and never passes CheckModel
type CurveModel struct {
	BaseRate fixed.Rate `json:"base_rate"`
}

func (m *CurveModel) CheckModel() bool {
	return false
}

func (m *CurveModel) BorrowRate(_ fixed.Ratio) (fixed.Rate, error) {
	return m.BaseRate, nil
}

// PolynomialModel jump model with the kink fixed at PolynomialJumpUtilization
type PolynomialModel struct {
	BaseRate fixed.Rate `json:"base_rate"`
	JumpRate fixed.Rate `json:"jump_rate"`
	FullRate fixed.Rate `json:"full_rate"`
}

func (m *PolynomialModel) jump() *JumpModel {
	return &JumpModel{
		BaseRate:        m.BaseRate,
		JumpRate:        m.JumpRate,
		FullRate:        m.FullRate,
		JumpUtilization: PolynomialJumpUtilization,
	}
}

func (m *PolynomialModel) CheckModel() bool {
	return m.jump().CheckModel()
}

func (m *PolynomialModel) BorrowRate(utilization fixed.Ratio) (fixed.Rate, error) {
	return m.jump().BorrowRate(utilization)
}
