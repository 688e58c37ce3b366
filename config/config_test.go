package config

import (
	"os"
	"path/filepath"
	"testing"

	"loans/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYaml = `
app:
  genesis: 1600000000
  seconds_per_block: 12
store:
  driver: leveldb
  path: /tmp/loans
price_oracle:
  ttl: 60
  symbols:
    "100": KSM-USDT
  static:
    "102": "1"
auth:
  secret: s3cret
  ttl: 3600
admins:
  - root
balances:
  - account: alice
    currency: 100
    amount: "5000000000000000"
markets:
  - currency: 100
    ptoken_id: 1100
    collateral_factor: "0.5"
    reserve_factor: "0.15"
    close_factor: "0.5"
    liquidation_incentive: "1.1"
    cap: "1000000000000000000"
    state: Active
`

func TestLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(testYaml), 0o600))

	var cfg core.Config
	require.NoError(t, Load(file, &cfg))

	assert.Equal(t, int64(1600000000), cfg.App.Genesis)
	assert.Equal(t, int64(12), cfg.App.SecondsPerBlock)
	assert.Equal(t, "UTC", cfg.App.Location)
	assert.Equal(t, "leveldb", cfg.Store.Driver)
	assert.Equal(t, "/tmp/loans", cfg.Store.Path)
	assert.Equal(t, int64(60), cfg.PriceOracle.TTL)
	assert.Equal(t, "KSM-USDT", cfg.PriceOracle.Symbols["100"])
	assert.Equal(t, "1", cfg.PriceOracle.Static["102"])
	assert.True(t, cfg.IsAdmin("root"))
	assert.False(t, cfg.IsAdmin("alice"))
	assert.Equal(t, "loans-pool", cfg.PoolAccount)
	assert.Equal(t, "s3cret", cfg.Auth.Secret)
	assert.Equal(t, "loans", cfg.Auth.Issuer)
	assert.Equal(t, int64(3600), cfg.Auth.TTL)

	require.Len(t, cfg.Balances, 1)
	assert.Equal(t, "alice", cfg.Balances[0].Account)
	assert.Equal(t, uint32(100), cfg.Balances[0].Currency)
	assert.Equal(t, "5000000000000000", cfg.Balances[0].Amount)

	require.Len(t, cfg.Markets, 1)
	market, err := cfg.Markets[0].Market()
	require.NoError(t, err)
	assert.Equal(t, core.MarketStateActive, market.State)
	assert.Equal(t, core.CurrencyID(1100), market.PTokenID)
	assert.Equal(t, "0.5", market.CollateralFactor.String())
}

func TestLoadDefaults(t *testing.T) {
	var cfg core.Config
	require.NoError(t, Load("", &cfg))

	assert.Equal(t, int64(6), cfg.App.SecondsPerBlock)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "loans", cfg.Auth.Issuer)
	assert.Equal(t, int64(86400), cfg.Auth.TTL)
	assert.Greater(t, cfg.App.Genesis, int64(0))
}
