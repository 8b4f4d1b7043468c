package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "full set", args: []string{"cmd", "-a", "https://vault.example.com", "-d", "custom.db", "-l", "-t", "10"}, expectPanic: false,
			expected: &Config{ServerEndpointURL: "https://vault.example.com", DatabaseDSN: "custom.db", ForceLocalOnly: true, RequestTimeout: 10 * time.Second}},
		{name: "incorrect timeout", args: []string{"cmd", "-t", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}

func TestParseEnv(t *testing.T) {
	t.Run("forces local-only", func(t *testing.T) {
		t.Setenv(EnvLocalOnly, "true")
		cfg := &Config{}
		parseEnv(cfg)
		assert.True(t, cfg.ForceLocalOnly)
	})

	t.Run("unset leaves the value alone", func(t *testing.T) {
		cfg := &Config{ForceLocalOnly: true}
		parseEnv(cfg)
		assert.True(t, cfg.ForceLocalOnly)
	})

	t.Run("garbage is ignored", func(t *testing.T) {
		t.Setenv(EnvLocalOnly, "banana")
		cfg := &Config{}
		parseEnv(cfg)
		assert.False(t, cfg.ForceLocalOnly)
	})
}
