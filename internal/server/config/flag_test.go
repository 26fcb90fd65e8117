package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected *Config
		name     string
		args     []string
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-d", "memory://", "-s", "access", "-rs", "refresh",
				"-t", "15", "-r", "60", "-b", "4", "-e", "production", "-l", "debug",
			},
			expected: &Config{
				EndpointAddrHTTP:             "127.0.0.1:9090",
				DatabaseDSN:                  "memory://",
				AccessTokenSecret:            "access",
				RefreshTokenSecret:           "refresh",
				AccessTokenValidityDuration:  15 * time.Minute,
				RefreshTokenValidityDuration: 60 * time.Minute,
				BcryptCost:                   4,
				Environment:                  "production",
				LogLevel:                     "debug",
			},
		},
		{
			name: "foreign flags ignored, unset durations kept",
			args: []string{"-c", "cfg.json", "-x", "1", "-s", "access"},
			expected: &Config{
				AccessTokenSecret:            "access",
				AccessTokenValidityDuration:  24 * time.Hour,
				RefreshTokenValidityDuration: 168 * time.Hour,
			},
		},
		{
			name:    "bad number",
			args:    []string{"-b", "ten"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{
				AccessTokenValidityDuration:  24 * time.Hour,
				RefreshTokenValidityDuration: 168 * time.Hour,
			}

			err := parseFlags(config, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
