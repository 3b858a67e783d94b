// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package graph

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/telekom/graph-mailer/pkg/version"
)

const (
	// DefaultEndpoint is the Graph v1.0 service root.
	DefaultEndpoint = "https://graph.microsoft.com/v1.0"
	defaultTimeout  = 30 * time.Second

	sendMailPath          = "/users/{mailbox}/sendMail"
	clientRequestIDHeader = "client-request-id"
	requestIDHeader       = "request-id"
)

// Client submits messages to Graph. It is safe for concurrent use.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	log     *zap.SugaredLogger
}

type Option func(*Client) error

func New(opts ...Option) (*Client, error) {
	c := &Client{
		http: resty.New().
			SetBaseURL(DefaultEndpoint).
			SetTimeout(defaultTimeout).
			SetHeader("Accept", "application/json").
			SetHeader("User-Agent", version.UserAgent()),
		log: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func WithServer(server string) Option {
	return func(c *Client) error {
		if server == "" {
			return errors.New("server is required")
		}
		parsed, err := url.Parse(server)
		if err != nil {
			return fmt.Errorf("invalid server: %w", err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("invalid server: %q is not an absolute URL", server)
		}
		c.http.SetBaseURL(strings.TrimSuffix(parsed.String(), "/"))
		return nil
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		if timeout > 0 {
			c.http.SetTimeout(timeout)
		}
		return nil
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) error {
		if userAgent != "" {
			c.http.SetHeader("User-Agent", userAgent)
		}
		return nil
	}
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Client) error {
		if log != nil {
			c.log = log.Named("graph")
		}
		return nil
	}
}

// WithRateLimit paces outbound requests to rps with the given burst. A
// non-positive rps leaves requests unthrottled.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) error {
		if rps <= 0 {
			c.limiter = nil
			return nil
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		return nil
	}
}

func WithTLSConfig(caFile string, insecureSkipTLSVerify bool) Option {
	return func(c *Client) error {
		tlsConfig, err := loadTLSConfig(caFile, insecureSkipTLSVerify)
		if err != nil {
			return err
		}
		c.http.SetTLSClientConfig(tlsConfig)
		return nil
	}
}

func loadTLSConfig(caFile string, insecure bool) (*tls.Config, error) {
	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12, InsecureSkipVerify: insecure} //nolint:gosec // opt-in for test tenants behind TLS inspection
	if caFile == "" {
		return tlsConfig, nil
	}
	data, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA file: %w", err)
	}
	pool := x509.NewCertPool()
	if ok := pool.AppendCertsFromPEM(data); !ok {
		return nil, errors.New("failed to parse CA file")
	}
	tlsConfig.RootCAs = pool
	return tlsConfig, nil
}

// SendMail posts msg to the sendMail action of mailbox. Graph answers 202
// with an empty body on success.
func (c *Client) SendMail(ctx context.Context, token, mailbox string, msg SendMailRequest) error {
	if mailbox == "" {
		return errors.New("mailbox is required")
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	clientRequestID := uuid.NewString()
	c.log.Debugw("Submitting message",
		"mailbox", mailbox,
		"recipients", len(msg.Message.ToRecipients),
		"attachments", len(msg.Message.Attachments),
		"clientRequestID", clientRequestID)

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetHeader(clientRequestIDHeader, clientRequestID).
		SetPathParam("mailbox", mailbox).
		SetBody(msg).
		Post(sendMailPath)
	if err != nil {
		return err
	}

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return decodeError(resp.StatusCode(), resp.Status(), resp.Body(),
			resp.Header().Get(requestIDHeader), clientRequestID)
	}
	c.log.Debugw("Message accepted",
		"mailbox", mailbox,
		"status", resp.StatusCode(),
		"requestID", resp.Header().Get(requestIDHeader),
		"clientRequestID", clientRequestID)
	return nil
}
