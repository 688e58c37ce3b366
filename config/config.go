package config

import (
	"time"

	"loans/core"

	configUtil "github.com/fox-one/pkg/config"
)

// Load load config file, env vars prefixed with LOANS_ override the file
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("LOANS")
	if configFile != "" {
		if err := configUtil.LoadYaml(configFile, config); err != nil {
			return err
		}
	}

	defaultConfig(config)
	return nil
}

func defaultConfig(config *core.Config) {
	if config.App.SecondsPerBlock <= 0 {
		config.App.SecondsPerBlock = 6
	}

	if config.App.Location == "" {
		config.App.Location = time.UTC.String()
	}

	if config.App.Genesis <= 0 {
		config.App.Genesis = time.Now().Unix()
	}

	if config.Store.Driver == "" {
		config.Store.Driver = "memory"
	}

	if config.Auth.Issuer == "" {
		config.Auth.Issuer = "loans"
	}

	if config.Auth.TTL <= 0 {
		config.Auth.TTL = 24 * 60 * 60
	}

	if config.PoolAccount == "" {
		config.PoolAccount = "loans-pool"
	}
}
