// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"k8s.io/utils/ptr"
)

// Environment variables read by ApplyEnv. The AZURE_* names follow the
// Azure SDK conventions and are used when the GRAPHMAIL_* ones are unset.
const (
	EnvConfig         = "GRAPHMAIL_CONFIG"
	EnvTenantID       = "GRAPHMAIL_TENANT_ID"
	EnvClientID       = "GRAPHMAIL_CLIENT_ID"
	EnvClientSecret   = "GRAPHMAIL_CLIENT_SECRET"
	EnvMaxRetries     = "GRAPHMAIL_MAX_RETRIES"
	EnvRetryDelay     = "GRAPHMAIL_RETRY_DELAY"
	EnvAuthorityHost  = "GRAPHMAIL_AUTHORITY_HOST"
	EnvGraphEndpoint  = "GRAPHMAIL_GRAPH_ENDPOINT"
	EnvFrom           = "GRAPHMAIL_FROM"
	EnvSenderName     = "GRAPHMAIL_SENDER_NAME"
	EnvAzureTenantID  = "AZURE_TENANT_ID"
	EnvAzureClientID  = "AZURE_CLIENT_ID"
	EnvAzureSecret    = "AZURE_CLIENT_SECRET"
	EnvAzureAuthority = "AZURE_AUTHORITY_HOST"
)

// LoadDotEnv loads the given .env files into the process environment
// without overriding variables that are already set. With no files it loads
// ./.env if present.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// ApplyEnv overlays environment settings on c. getenv is os.Getenv outside
// of tests.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	first := func(keys ...string) string {
		for _, k := range keys {
			if v := strings.TrimSpace(getenv(k)); v != "" {
				return v
			}
		}
		return ""
	}

	if v := first(EnvTenantID, EnvAzureTenantID); v != "" {
		c.TenantID = v
	}
	if v := first(EnvClientID, EnvAzureClientID); v != "" {
		c.ClientID = v
	}
	if v := first(EnvClientSecret, EnvAzureSecret); v != "" {
		c.ClientSecret = v
	}
	if v := first(EnvAuthorityHost, EnvAzureAuthority); v != "" {
		c.AuthorityHost = v
	}
	if v := first(EnvGraphEndpoint); v != "" {
		c.GraphEndpoint = v
	}
	if v := first(EnvFrom); v != "" {
		c.Defaults.From = v
	}
	if v := first(EnvSenderName); v != "" {
		c.Defaults.SenderName = v
	}
	if v := first(EnvMaxRetries); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvMaxRetries, err)
		}
		c.MaxRetries = ptr.To(n)
	}
	if v := first(EnvRetryDelay); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvRetryDelay, err)
		}
		c.RetryDelay = d
	}
	return nil
}
