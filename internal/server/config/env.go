package config

import "github.com/spf13/viper"

// Environment variable names. Values may also come from a .env file; real
// environment variables take precedence over it.
const (
	envAddress            = "ADDRESS"
	envDatabaseDSN        = "DATABASE_DSN"
	envAccessTokenSecret  = "ACCESS_TOKEN_SECRET"
	envRefreshTokenSecret = "REFRESH_TOKEN_SECRET"
	envAccessTokenTTL     = "ACCESS_TOKEN_TTL"
	envRefreshTokenTTL    = "REFRESH_TOKEN_TTL"
	envSaltRounds         = "SALT_ROUNDS"
	envAppEnv             = "APP_ENV"
	envLogLevel           = "LOG_LEVEL"
)

// parseEnv overlays values found in the environment. A missing or
// unreadable .env file is ignored. Malformed numbers and durations decode
// to zero and are rejected by Validate.
func parseEnv(config *Config, envFile string) {
	v := viper.New()
	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		_ = v.ReadInConfig()
	}
	v.AutomaticEnv()

	if v.IsSet(envAddress) {
		config.EndpointAddrHTTP = v.GetString(envAddress)
	}
	if v.IsSet(envDatabaseDSN) {
		config.DatabaseDSN = v.GetString(envDatabaseDSN)
	}
	if v.IsSet(envAccessTokenSecret) {
		config.AccessTokenSecret = v.GetString(envAccessTokenSecret)
	}
	if v.IsSet(envRefreshTokenSecret) {
		config.RefreshTokenSecret = v.GetString(envRefreshTokenSecret)
	}
	if v.IsSet(envAccessTokenTTL) {
		config.AccessTokenValidityDuration = v.GetDuration(envAccessTokenTTL)
	}
	if v.IsSet(envRefreshTokenTTL) {
		config.RefreshTokenValidityDuration = v.GetDuration(envRefreshTokenTTL)
	}
	if v.IsSet(envSaltRounds) {
		config.BcryptCost = v.GetInt(envSaltRounds)
	}
	if v.IsSet(envAppEnv) {
		config.Environment = v.GetString(envAppEnv)
	}
	if v.IsSet(envLogLevel) {
		config.LogLevel = v.GetString(envLogLevel)
	}
}
