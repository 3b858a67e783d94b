// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package mail

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"k8s.io/utils/ptr"

	"github.com/telekom/graph-mailer/pkg/auth"
	"github.com/telekom/graph-mailer/pkg/graph"
	"github.com/telekom/graph-mailer/pkg/metrics"
)

// TokenAcquirer mints a bearer token for the mail API.
type TokenAcquirer interface {
	AcquireToken(ctx context.Context) (string, error)
}

// MailTransport submits a composed message for mailbox.
type MailTransport interface {
	SendMail(ctx context.Context, token, mailbox string, msg graph.SendMailRequest) error
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Config holds the service principal and the tunables of a Service.
type Config struct {
	ClientID     string
	ClientSecret string
	TenantID     string

	// MaxRetries is the number of retries after the first attempt. Nil means
	// DefaultMaxRetries; an explicit zero disables retries.
	MaxRetries *int
	// RetryDelay is the linear backoff unit. Zero means DefaultRetryDelay.
	RetryDelay     time.Duration
	DefaultSubject string

	// AuthorityHost and GraphEndpoint override the public cloud endpoints.
	AuthorityHost         string
	GraphEndpoint         string
	Timeout               time.Duration
	CAFile                string
	InsecureSkipTLSVerify bool
	// RateLimit paces outbound Graph requests per second; zero disables.
	RateLimit float64
	RateBurst int
}

// Service sends mail through Graph. It keeps no per-call state and is safe
// for concurrent use.
type Service struct {
	tenantID       string
	maxRetries     int
	retryDelay     time.Duration
	defaultSubject string

	tokens    TokenAcquirer
	transport MailTransport
	sleep     Sleeper
	log       *zap.SugaredLogger
}

type Option func(*Service)

func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithTokenAcquirer replaces the client-credentials provider built from Config.
func WithTokenAcquirer(t TokenAcquirer) Option {
	return func(s *Service) {
		s.tokens = t
	}
}

// WithTransport replaces the Graph client built from Config.
func WithTransport(t MailTransport) Option {
	return func(s *Service) {
		s.transport = t
	}
}

func WithSleeper(sleep Sleeper) Option {
	return func(s *Service) {
		if sleep != nil {
			s.sleep = sleep
		}
	}
}

// NewService validates cfg and wires the default token provider and Graph
// transport unless they are supplied as options.
func NewService(cfg Config, opts ...Option) (*Service, error) {
	cred := auth.Credential{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TenantID:     cfg.TenantID,
	}
	if err := cred.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mail service config: %w", err)
	}
	maxRetries := ptr.Deref(cfg.MaxRetries, DefaultMaxRetries)
	if maxRetries < 0 {
		return nil, fmt.Errorf("invalid mail service config: maxRetries must not be negative, got %d", maxRetries)
	}

	s := &Service{
		tenantID:       cfg.TenantID,
		maxRetries:     maxRetries,
		retryDelay:     cfg.RetryDelay,
		defaultSubject: cfg.DefaultSubject,
		sleep:          sleepContext,
		log:            zap.NewNop().Sugar(),
	}
	if s.retryDelay <= 0 {
		s.retryDelay = DefaultRetryDelay
	}
	if s.defaultSubject == "" {
		s.defaultSubject = DefaultSubject
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("mail-service")

	if s.tokens == nil {
		provider, err := auth.NewClientCredentialsProvider(cred,
			auth.WithAuthorityHost(cfg.AuthorityHost),
			auth.WithLogger(s.log))
		if err != nil {
			return nil, err
		}
		s.tokens = provider
	}
	if s.transport == nil {
		graphOpts := []graph.Option{
			graph.WithTimeout(cfg.Timeout),
			graph.WithLogger(s.log),
			graph.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
		}
		if cfg.GraphEndpoint != "" {
			graphOpts = append(graphOpts, graph.WithServer(cfg.GraphEndpoint))
		}
		if cfg.CAFile != "" || cfg.InsecureSkipTLSVerify {
			graphOpts = append(graphOpts, graph.WithTLSConfig(cfg.CAFile, cfg.InsecureSkipTLSVerify))
		}
		client, err := graph.New(graphOpts...)
		if err != nil {
			return nil, fmt.Errorf("invalid mail service config: %w", err)
		}
		s.transport = client
	}

	s.log.Infow("Mail service initialized",
		"tenant", s.tenantID,
		"maxRetries", s.maxRetries,
		"retryDelay", s.retryDelay.String())
	return s, nil
}

// MaxRetries reports the effective retry count.
func (s *Service) MaxRetries() int {
	return s.maxRetries
}

// SendEmail validates req and submits it, making up to MaxRetries+1 attempts.
// Each attempt acquires a new token. Between attempts it waits
// RetryDelay*(attempt+1). It returns true on success; otherwise the error of
// the last attempt is returned unchanged.
func (s *Service) SendEmail(ctx context.Context, req SendRequest) (bool, error) {
	if err := req.Validate(); err != nil {
		return false, err
	}

	msg := BuildMessage(req, s.defaultSubject)
	start := time.Now()
	log := s.log.With("mailbox", req.FromEmail)
	log.Debugw("Preparing to send mail",
		"recipients", len(req.ToEmail),
		"cc", len(req.CC),
		"bcc", len(req.BCC),
		"attachments", len(req.Attachments),
		"subject", msg.Message.Subject)

	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		metrics.MailSendAttempts.WithLabelValues(s.tenantID).Inc()

		err := s.attempt(ctx, req.FromEmail, msg)
		if err == nil {
			for _, recipient := range req.ToEmail {
				log.Infow("Email sent", "recipient", recipient)
			}
			log.Infow("Email sent successfully", "attempt", attempt+1)
			metrics.MailSendSuccess.WithLabelValues(s.tenantID).Inc()
			metrics.MailSendDuration.WithLabelValues(s.tenantID, "success").Observe(time.Since(start).Seconds())
			return true, nil
		}

		lastErr = err
		log.Warnw("Send attempt failed",
			"attempt", attempt+1,
			"maxAttempts", s.maxRetries+1,
			"error", err)

		if attempt < s.maxRetries {
			delay := s.retryDelay * time.Duration(attempt+1)
			log.Infow("Retrying mail send", "attempt", attempt+2, "delay", delay.String())
			metrics.MailRetryScheduled.WithLabelValues(s.tenantID).Inc()
			if werr := s.sleep(ctx, delay); werr != nil {
				metrics.MailSendFailure.WithLabelValues(s.tenantID).Inc()
				metrics.MailSendDuration.WithLabelValues(s.tenantID, "aborted").Observe(time.Since(start).Seconds())
				return false, fmt.Errorf("send aborted while waiting to retry: %w (last error: %w)", werr, lastErr)
			}
		}
	}

	log.Errorw("Failed to send mail after all attempts",
		"attempts", s.maxRetries+1,
		"error", lastErr)
	metrics.MailSendFailure.WithLabelValues(s.tenantID).Inc()
	metrics.MailSendDuration.WithLabelValues(s.tenantID, "failure").Observe(time.Since(start).Seconds())
	return false, lastErr
}

func (s *Service) attempt(ctx context.Context, mailbox string, msg graph.SendMailRequest) error {
	token, err := s.tokens.AcquireToken(ctx)
	if err != nil {
		return err
	}
	return s.transport.SendMail(ctx, token, mailbox, msg)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
