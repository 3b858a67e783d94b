// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
	"k8s.io/utils/ptr"

	"github.com/telekom/graph-mailer/pkg/mail"
)

const (
	VersionV1 = "v1"

	redacted = "********"
)

type Config struct {
	Version string `json:"version" yaml:"version"`

	TenantID            string      `json:"tenant-id" yaml:"tenant-id"`
	ClientID            string      `json:"client-id" yaml:"client-id"`
	ClientSecret        string      `json:"client-secret,omitempty" yaml:"client-secret,omitempty"`
	ClientSecretEnv     string      `json:"client-secret-env,omitempty" yaml:"client-secret-env,omitempty"`
	ClientSecretFile    string      `json:"client-secret-file,omitempty" yaml:"client-secret-file,omitempty"`
	ClientSecretKeyring *KeyringRef `json:"client-secret-keyring,omitempty" yaml:"client-secret-keyring,omitempty"`

	AuthorityHost         string        `json:"authority-host,omitempty" yaml:"authority-host,omitempty"`
	GraphEndpoint         string        `json:"graph-endpoint,omitempty" yaml:"graph-endpoint,omitempty"`
	CAFile                string        `json:"ca-file,omitempty" yaml:"ca-file,omitempty"`
	InsecureSkipTLSVerify bool          `json:"insecure-skip-tls-verify,omitempty" yaml:"insecure-skip-tls-verify,omitempty"`
	Timeout               time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`

	MaxRetries *int          `json:"max-retries,omitempty" yaml:"max-retries,omitempty"`
	RetryDelay time.Duration `json:"retry-delay,omitempty" yaml:"retry-delay,omitempty"`
	RateLimit  RateLimit     `json:"rate-limit,omitempty" yaml:"rate-limit,omitempty"`

	Defaults MessageDefaults `json:"defaults,omitempty" yaml:"defaults,omitempty"`
}

// KeyringRef points at a secret stored in the OS keychain.
type KeyringRef struct {
	Service string `json:"service" yaml:"service"`
	User    string `json:"user" yaml:"user"`
}

type RateLimit struct {
	RequestsPerSecond float64 `json:"requests-per-second,omitempty" yaml:"requests-per-second,omitempty"`
	Burst             int     `json:"burst,omitempty" yaml:"burst,omitempty"`
}

// MessageDefaults fill in CLI flags that were not given.
type MessageDefaults struct {
	From       string `json:"from,omitempty" yaml:"from,omitempty"`
	SenderName string `json:"sender-name,omitempty" yaml:"sender-name,omitempty"`
	Subject    string `json:"subject,omitempty" yaml:"subject,omitempty"`
	ReplyTo    string `json:"reply-to,omitempty" yaml:"reply-to,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Version:    VersionV1,
		MaxRetries: ptr.To(mail.DefaultMaxRetries),
		Timeout:    30 * time.Second,
		Defaults: MessageDefaults{
			Subject: mail.DefaultSubject,
		},
	}
}

func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Version == "" {
		cfg.Version = VersionV1
	}
	return &cfg, nil
}

// LoadOptional behaves like Load but returns an empty config when the file
// does not exist, so a setup driven purely by environment variables works.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{Version: VersionV1}, nil
	}
	return cfg, err
}

func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if cfg.Version == "" {
		cfg.Version = VersionV1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	content, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, content, 0o600)
}

func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.TenantID) == "" {
		missing = append(missing, "tenant-id")
	}
	if strings.TrimSpace(c.ClientID) == "" {
		missing = append(missing, "client-id")
	}
	if !c.hasSecretSource() {
		missing = append(missing, "client-secret")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	if c.MaxRetries != nil && *c.MaxRetries < 0 {
		return fmt.Errorf("max-retries must not be negative, got %d", *c.MaxRetries)
	}
	if c.RateLimit.RequestsPerSecond < 0 {
		return errors.New("rate-limit.requests-per-second must not be negative")
	}
	return nil
}

func (c *Config) hasSecretSource() bool {
	return c.ClientSecret != "" || c.ClientSecretEnv != "" || c.ClientSecretFile != "" ||
		(c.ClientSecretKeyring != nil && c.ClientSecretKeyring.Service != "")
}

// MailConfig resolves the client secret and maps c onto mail.Config.
func (c *Config) MailConfig() (mail.Config, error) {
	if err := c.Validate(); err != nil {
		return mail.Config{}, err
	}
	secret, err := c.ResolveClientSecret()
	if err != nil {
		return mail.Config{}, err
	}
	return mail.Config{
		ClientID:              c.ClientID,
		ClientSecret:          secret,
		TenantID:              c.TenantID,
		MaxRetries:            c.MaxRetries,
		RetryDelay:            c.RetryDelay,
		DefaultSubject:        c.Defaults.Subject,
		AuthorityHost:         c.AuthorityHost,
		GraphEndpoint:         c.GraphEndpoint,
		Timeout:               c.Timeout,
		CAFile:                c.CAFile,
		InsecureSkipTLSVerify: c.InsecureSkipTLSVerify,
		RateLimit:             c.RateLimit.RequestsPerSecond,
		RateBurst:             c.RateLimit.Burst,
	}, nil
}

// Redacted returns a copy safe to print. The copy shares no pointers with c,
// so callers may modify it without touching the loaded config.
func (c Config) Redacted() Config {
	if c.ClientSecret != "" {
		c.ClientSecret = redacted
	}
	if c.ClientSecretKeyring != nil {
		ref := *c.ClientSecretKeyring
		c.ClientSecretKeyring = &ref
	}
	if c.MaxRetries != nil {
		c.MaxRetries = ptr.To(*c.MaxRetries)
	}
	return c
}
