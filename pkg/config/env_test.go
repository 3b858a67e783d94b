// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(values map[string]string) func(string) string {
	return func(k string) string { return values[k] }
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := validConfig()
	err := cfg.ApplyEnv(envMap(map[string]string{
		EnvTenantID:      "env-tenant",
		EnvClientID:      " env-client ",
		EnvClientSecret:  "env-secret",
		EnvMaxRetries:    "4",
		EnvRetryDelay:    "1500ms",
		EnvGraphEndpoint: "https://graph.example.test",
		EnvFrom:          "from@example.com",
		EnvSenderName:    "Ops",
	}))
	require.NoError(t, err)

	assert.Equal(t, "env-tenant", cfg.TenantID)
	assert.Equal(t, "env-client", cfg.ClientID)
	assert.Equal(t, "env-secret", cfg.ClientSecret)
	require.NotNil(t, cfg.MaxRetries)
	assert.Equal(t, 4, *cfg.MaxRetries)
	assert.Equal(t, 1500*time.Millisecond, cfg.RetryDelay)
	assert.Equal(t, "https://graph.example.test", cfg.GraphEndpoint)
	assert.Equal(t, "from@example.com", cfg.Defaults.From)
	assert.Equal(t, "Ops", cfg.Defaults.SenderName)
}

func TestApplyEnvAzureFallbacks(t *testing.T) {
	cfg := Config{}
	require.NoError(t, cfg.ApplyEnv(envMap(map[string]string{
		EnvAzureTenantID:  "az-tenant",
		EnvAzureClientID:  "az-client",
		EnvAzureSecret:    "az-secret",
		EnvAzureAuthority: "https://login.example.test",
	})))
	assert.Equal(t, "az-tenant", cfg.TenantID)
	assert.Equal(t, "az-client", cfg.ClientID)
	assert.Equal(t, "az-secret", cfg.ClientSecret)
	assert.Equal(t, "https://login.example.test", cfg.AuthorityHost)

	cfg = Config{}
	require.NoError(t, cfg.ApplyEnv(envMap(map[string]string{
		EnvTenantID:      "primary",
		EnvAzureTenantID: "fallback",
	})))
	assert.Equal(t, "primary", cfg.TenantID)
}

func TestApplyEnvKeepsFileValuesWhenUnset(t *testing.T) {
	cfg := validConfig()
	before := cfg
	require.NoError(t, cfg.ApplyEnv(envMap(nil)))
	assert.Equal(t, before, cfg)
}

func TestApplyEnvInvalidValues(t *testing.T) {
	cfg := Config{}
	err := cfg.ApplyEnv(envMap(map[string]string{EnvMaxRetries: "many"}))
	require.ErrorContains(t, err, EnvMaxRetries)

	err = cfg.ApplyEnv(envMap(map[string]string{EnvRetryDelay: "soon"}))
	require.ErrorContains(t, err, EnvRetryDelay)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("GRAPHMAIL_TEST_DOTENV=from-file\nGRAPHMAIL_TEST_PRESET=from-file\n"), 0o600))
	t.Setenv("GRAPHMAIL_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("GRAPHMAIL_TEST_DOTENV"))
	t.Setenv("GRAPHMAIL_TEST_PRESET", "from-env")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("GRAPHMAIL_TEST_DOTENV"))
	assert.Equal(t, "from-env", os.Getenv("GRAPHMAIL_TEST_PRESET"))

	require.Error(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestLoadDotEnvDefaultMissingIsIgnored(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	require.NoError(t, LoadDotEnv())
}
