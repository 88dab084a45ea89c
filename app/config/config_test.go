package config

import (
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads; t.Setenv restores them after
// the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"HTTP_ADDR", "LOG_LEVEL", "STORE_DRIVER", "STORE_SQLITE_PATH", "DATABASE_URL", "CATALOG_BASE_URL", "CATALOG_FETCH_TIMEOUT", "STATIC_DIR"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	logger, _ := test.NewNullLogger()

	cfg, err := Load(logger)

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, "storefront.db", cfg.SQLitePath)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Empty(t, cfg.CatalogURL)
}

func TestLoad(t *testing.T) {
	testCases := []struct {
		name        string
		env         map[string]string
		expectedErr string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "Overrides",
			env: map[string]string{
				"HTTP_ADDR":             ":9090",
				"STORE_DRIVER":          "memory",
				"CATALOG_BASE_URL":      "http://cdn.example",
				"CATALOG_FETCH_TIMEOUT": "250ms",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ":9090", cfg.HTTPAddr)
				assert.Equal(t, "memory", cfg.StoreDriver)
				assert.Equal(t, "http://cdn.example", cfg.CatalogURL)
				assert.Equal(t, 250*time.Millisecond, cfg.FetchTimeout)
			},
		},
		{
			name:        "Postgres requires a URL",
			env:         map[string]string{"STORE_DRIVER": "postgres", "DATABASE_URL": ""},
			expectedErr: "DATABASE_URL is required",
		},
		{
			name: "Postgres with URL",
			env:  map[string]string{"STORE_DRIVER": "postgres", "DATABASE_URL": "postgres://u:p@localhost/db"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "postgres://u:p@localhost/db", cfg.DatabaseURL)
			},
		},
		{
			name:        "Unknown driver",
			env:         map[string]string{"STORE_DRIVER": "redis"},
			expectedErr: "unknown STORE_DRIVER",
		},
		{
			name:        "Bad duration",
			env:         map[string]string{"CATALOG_FETCH_TIMEOUT": "soon"},
			expectedErr: "failed to process configuration",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			logger, _ := test.NewNullLogger()

			cfg, err := Load(logger)

			if tc.expectedErr != "" {
				assert.ErrorContains(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			tc.check(t, cfg)
		})
	}
}

func TestNewLogger(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger("debug").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("loud").GetLevel())
}
