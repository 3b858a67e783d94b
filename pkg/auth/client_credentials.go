// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/telekom/graph-mailer/pkg/metrics"
)

const (
	// DefaultAuthorityHost is the Microsoft identity platform for the public cloud.
	DefaultAuthorityHost = "https://login.microsoftonline.com"
	// GraphDefaultScope requests every application permission granted to the app.
	GraphDefaultScope = "https://graph.microsoft.com/.default"
)

// ErrNoAccessToken is returned when the token endpoint answered without a
// usable access token.
var ErrNoAccessToken = errors.New("failed to acquire access token")

// Credential identifies the service principal.
type Credential struct {
	ClientID     string
	ClientSecret string
	TenantID     string
}

func (c Credential) Validate() error {
	var missing []string
	if c.ClientID == "" {
		missing = append(missing, "clientId")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "clientSecret")
	}
	if c.TenantID == "" {
		missing = append(missing, "tenantId")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s required", strings.Join(missing, ", "))
	}
	return nil
}

// TokenURL returns the v2.0 token endpoint of the tenant under authorityHost.
func TokenURL(authorityHost, tenantID string) string {
	if authorityHost == "" {
		authorityHost = DefaultAuthorityHost
	}
	return strings.TrimSuffix(authorityHost, "/") + "/" + tenantID + "/oauth2/v2.0/token"
}

// ClientCredentialsProvider mints a new token on every call through
// clientcredentials.Config.Token. Nothing is cached between calls.
type ClientCredentialsProvider struct {
	cfg        clientcredentials.Config
	tenantID   string
	httpClient *http.Client
	log        *zap.SugaredLogger
}

type ProviderOption func(*ClientCredentialsProvider)

// WithAuthorityHost overrides the identity authority, e.g. for national
// clouds or a test server.
func WithAuthorityHost(host string) ProviderOption {
	return func(p *ClientCredentialsProvider) {
		if host != "" {
			p.cfg.TokenURL = TokenURL(host, p.tenantID)
		}
	}
}

// WithScopes replaces the default Graph scope.
func WithScopes(scopes ...string) ProviderOption {
	return func(p *ClientCredentialsProvider) {
		if len(scopes) > 0 {
			p.cfg.Scopes = scopes
		}
	}
}

// WithHTTPClient sets the client used for token requests.
func WithHTTPClient(client *http.Client) ProviderOption {
	return func(p *ClientCredentialsProvider) {
		p.httpClient = client
	}
}

func WithLogger(log *zap.SugaredLogger) ProviderOption {
	return func(p *ClientCredentialsProvider) {
		if log != nil {
			p.log = log.Named("auth")
		}
	}
}

func NewClientCredentialsProvider(cred Credential, opts ...ProviderOption) (*ClientCredentialsProvider, error) {
	if err := cred.Validate(); err != nil {
		return nil, err
	}
	p := &ClientCredentialsProvider{
		cfg: clientcredentials.Config{
			ClientID:     cred.ClientID,
			ClientSecret: cred.ClientSecret,
			TokenURL:     TokenURL(DefaultAuthorityHost, cred.TenantID),
			Scopes:       []string{GraphDefaultScope},
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		tenantID: cred.TenantID,
		log:      zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// AcquireToken performs one client-credentials exchange and returns the
// bearer token.
func (p *ClientCredentialsProvider) AcquireToken(ctx context.Context) (string, error) {
	if p.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	}
	token, err := p.cfg.Token(ctx)
	if err != nil && isMissingAccessToken(err) {
		err = fmt.Errorf("%w: %w", ErrNoAccessToken, err)
		p.log.Errorw("Error acquiring access token", "tenant", p.tenantID, "error", err)
		metrics.TokenRequests.WithLabelValues(p.tenantID, metrics.ResultEmpty).Inc()
		return "", err
	}
	if err != nil {
		p.log.Errorw("Error acquiring access token", "tenant", p.tenantID, "error", err)
		metrics.TokenRequests.WithLabelValues(p.tenantID, metrics.ResultError).Inc()
		return "", err
	}
	if !usable(token, time.Now()) {
		p.log.Errorw("Error acquiring access token", "tenant", p.tenantID, "error", ErrNoAccessToken)
		metrics.TokenRequests.WithLabelValues(p.tenantID, metrics.ResultEmpty).Inc()
		return "", ErrNoAccessToken
	}
	metrics.TokenRequests.WithLabelValues(p.tenantID, metrics.ResultSuccess).Inc()
	p.log.Debugw("Access token acquired", "tenant", p.tenantID, "expiry", token.Expiry)
	return token.AccessToken, nil
}

// isMissingAccessToken reports the error oauth2 returns for a 2xx token
// response without an access_token. It is not a *oauth2.RetrieveError.
func isMissingAccessToken(err error) bool {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		return false
	}
	return strings.Contains(err.Error(), "missing access_token")
}

// usable only rejects empty or already expired tokens. oauth2.Token.Valid
// would also reject tokens expiring within the next 10 seconds.
func usable(token *oauth2.Token, now time.Time) bool {
	if token == nil || token.AccessToken == "" {
		return false
	}
	return token.Expiry.IsZero() || token.Expiry.After(now)
}

// TokenURL returns the endpoint this provider exchanges credentials at.
func (p *ClientCredentialsProvider) TokenURL() string {
	return p.cfg.TokenURL
}
