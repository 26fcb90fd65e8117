package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/JokeryEU/shoplistapp-server/internal/flagx"
	"github.com/JokeryEU/shoplistapp-server/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept
// "24h" style strings or integer nanoseconds. Only keys present in the file
// override the current values.
type JsonConfig struct {
	EndpointAddrHTTP             string          `json:"endpoint_addr_http"`
	DatabaseDSN                  string          `json:"database_dsn"`
	AccessTokenSecret            string          `json:"access_token_secret"`
	RefreshTokenSecret           string          `json:"refresh_token_secret"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration"`
	BcryptCost                   *int            `json:"salt_rounds"`
	Environment                  string          `json:"app_env"`
	LogLevel                     string          `json:"log_level"`
}

// parseJson overlays the file named by -c or -config, if any.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.AccessTokenSecret, c.AccessTokenSecret)
	setString(&config.RefreshTokenSecret, c.RefreshTokenSecret)
	setString(&config.Environment, c.Environment)
	setString(&config.LogLevel, c.LogLevel)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
