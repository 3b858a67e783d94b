// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

// ResolveClientSecret returns the secret from the first configured source:
// inline value, environment variable, file, then OS keychain.
func (c *Config) ResolveClientSecret() (string, error) {
	if c.ClientSecret != "" {
		return c.ClientSecret, nil
	}
	if c.ClientSecretEnv != "" {
		value := strings.TrimSpace(os.Getenv(c.ClientSecretEnv))
		if value == "" {
			return "", fmt.Errorf("client secret env var not set: %s", c.ClientSecretEnv)
		}
		return value, nil
	}
	if c.ClientSecretFile != "" {
		bytes, err := os.ReadFile(c.ClientSecretFile)
		if err != nil {
			return "", fmt.Errorf("failed to read client secret file: %w", err)
		}
		value := strings.TrimSpace(string(bytes))
		if value == "" {
			return "", fmt.Errorf("client secret file is empty: %s", c.ClientSecretFile)
		}
		return value, nil
	}
	if ref := c.ClientSecretKeyring; ref != nil && ref.Service != "" {
		user := ref.User
		if user == "" {
			user = c.ClientID
		}
		value, err := keyring.Get(ref.Service, user)
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return "", fmt.Errorf("client secret not found in keyring (service %q, user %q)", ref.Service, user)
			}
			return "", fmt.Errorf("failed to read client secret from keyring: %w", err)
		}
		return value, nil
	}
	return "", errors.New("no client secret configured")
}

// StoreClientSecretInKeyring saves secret in the OS keychain under ref.
func StoreClientSecretInKeyring(ref KeyringRef, secret string) error {
	if ref.Service == "" || ref.User == "" {
		return errors.New("keyring service and user are required")
	}
	if err := keyring.Set(ref.Service, ref.User, secret); err != nil {
		return fmt.Errorf("failed to store client secret in keyring: %w", err)
	}
	return nil
}
