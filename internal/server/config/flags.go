package config

import (
	"flag"
	"io"
	"time"

	"github.com/JokeryEU/shoplistapp-server/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-d string   PostgreSQL DSN, or "memory://"
//	-s string   access token secret
//	-rs string  refresh token secret
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-b int      bcrypt cost
//	-e string   environment ("production" enables secure cookies)
//	-l string   log level
//
// Only these flags are taken from args, so the same command line can carry
// flags for other components such as -c.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-rs", "-t", "-r", "-b", "-e", "-l"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.AccessTokenSecret, "s", config.AccessTokenSecret, "access token secret")
	fs.StringVar(&config.RefreshTokenSecret, "rs", config.RefreshTokenSecret, "refresh token secret")

	accessMinutes := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	refreshMinutes := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh token validity (in minutes)")

	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.Environment, "e", config.Environment, "environment")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*accessMinutes) * time.Minute
		case "r":
			config.RefreshTokenValidityDuration = time.Duration(*refreshMinutes) * time.Minute
		}
	})
	return nil
}
