package core

import (
	"fmt"

	"loans/pkg/compound"
	"loans/pkg/fixed"

	"github.com/fox-one/pkg/store/db"
)

// Config loans config
type Config struct {
	App         App               `json:"app"`
	DB          db.Config         `json:"db"`
	Store       Store             `json:"store"`
	PriceOracle PriceOracleConfig `json:"price_oracle"`
	Auth        Auth              `json:"auth"`
	Markets     []*GenesisMarket  `json:"markets"`
	Balances    []*GenesisBalance `json:"balances"`
	Admins      []string          `json:"admins"`
	PoolAccount string            `json:"pool_account"`
}

// IsAdmin check if the user is admin
func (c *Config) IsAdmin(userID string) bool {
	if len(c.Admins) <= 0 {
		return false
	}

	for _, a := range c.Admins {
		if a == userID {
			return true
		}
	}

	return false
}

// App app config
type App struct {
	Genesis         int64  `json:"genesis"`
	SecondsPerBlock int64  `json:"seconds_per_block"`
	Location        string `json:"location"`
}

// Store state store config
type Store struct {
	// memory, leveldb or bolt
	Driver string `json:"driver"`
	Path   string `json:"path"`
}

// Auth access token config
type Auth struct {
	// hmac secret signing the access tokens
	Secret string `json:"secret"`
	Issuer string `json:"issuer"`
	// seconds an issued token stays valid
	TTL int64 `json:"ttl"`
}

// PriceOracleConfig price oracle config
type PriceOracleConfig struct {
	EndPoint string `json:"end_point"`
	// seconds a fed price stays valid, 0 never expires
	TTL int64 `json:"ttl"`
	// currency id -> ticker symbol on the endpoint
	Symbols map[string]string `json:"symbols"`
	// currency id -> fixed price, for test networks
	Static map[string]string `json:"static"`
}

// GenesisBalance underlying credited to an account at startup
type GenesisBalance struct {
	Account  string `json:"account"`
	Currency uint32 `json:"currency"`
	Amount   string `json:"amount"`
}

// GenesisMarket market listed at startup
type GenesisMarket struct {
	Currency             uint32 `json:"currency"`
	PTokenID             uint32 `json:"ptoken_id"`
	CollateralFactor     string `json:"collateral_factor"`
	ReserveFactor        string `json:"reserve_factor"`
	CloseFactor          string `json:"close_factor"`
	LiquidationIncentive string `json:"liquidation_incentive"`
	Cap                  string `json:"cap"`
	State                string `json:"state"`
	BaseRate             string `json:"base_rate"`
	JumpRate             string `json:"jump_rate"`
	FullRate             string `json:"full_rate"`
	JumpUtilization      string `json:"jump_utilization"`
}

// Market convert to a market, the rate model defaults to compound.DefaultRateModel
func (g *GenesisMarket) Market() (Market, error) {
	m := Market{
		RateModel: compound.DefaultRateModel(),
		PTokenID:  CurrencyID(g.PTokenID),
	}

	var err error
	fields := []struct {
		s string
		v *fixed.Fixed
	}{
		{g.CollateralFactor, &m.CollateralFactor},
		{g.ReserveFactor, &m.ReserveFactor},
		{g.CloseFactor, &m.CloseFactor},
		{g.LiquidationIncentive, &m.LiquidationIncentive},
	}

	for _, f := range fields {
		if *f.v, err = fixed.Parse(f.s); err != nil {
			return m, err
		}
	}

	if m.Cap, err = fixed.ParseBalance(g.Cap); err != nil {
		return m, err
	}

	if g.State != "" {
		state, ok := ParseMarketState(g.State)
		if !ok {
			return m, fmt.Errorf("unknown market state %q", g.State)
		}

		m.State = state
	}

	if g.BaseRate != "" {
		rates := make([]fixed.Fixed, 4)
		for idx, s := range []string{g.BaseRate, g.JumpRate, g.FullRate, g.JumpUtilization} {
			if rates[idx], err = fixed.Parse(s); err != nil {
				return m, err
			}
		}

		m.RateModel = compound.NewJumpModel(rates[0], rates[1], rates[2], rates[3])
	}

	return m, nil
}
