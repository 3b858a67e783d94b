// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/telekom/graph-mailer/pkg/config"
)

// fakeCloud serves the token endpoint and the Graph sendMail endpoint.
type fakeCloud struct {
	identity *httptest.Server
	graph    *httptest.Server

	mu         sync.Mutex
	messages   []map[string]any
	mailboxes  []string
	graphCalls int
	tokenCalls int
	status     int
	roles      []any
}

func newFakeCloud(t *testing.T) *fakeCloud {
	t.Helper()
	fc := &fakeCloud{status: http.StatusAccepted, roles: []any{"Mail.Send"}}

	fc.identity = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fc.mu.Lock()
		fc.tokenCalls++
		roles := fc.roles
		fc.mu.Unlock()

		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"appid": "client-1",
			"tid":   "tenant-1",
			"aud":   "https://graph.microsoft.com",
			"roles": roles,
			"exp":   time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("test-key"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": token,
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}))
	t.Cleanup(fc.identity.Close)

	fc.graph = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var payload map[string]any
		_ = json.Unmarshal(body, &payload)

		fc.mu.Lock()
		fc.graphCalls++
		fc.mailboxes = append(fc.mailboxes, strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/users/"), "/sendMail"))
		if msg, ok := payload["message"].(map[string]any); ok {
			fc.messages = append(fc.messages, msg)
		}
		status := fc.status
		fc.mu.Unlock()

		if status >= 300 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"code":"ErrorAccessDenied","message":"Access is denied."}}`))
			return
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(fc.graph.Close)
	return fc
}

func (fc *fakeCloud) writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := fmt.Sprintf(`tenant-id: tenant-1
client-id: client-1
client-secret: secret-1
authority-host: %s
graph-endpoint: %s
max-retries: 0
retry-delay: 1ms
defaults:
  from: sender@example.com
`, fc.identity.URL, fc.graph.URL)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// clearEnv keeps the developer's environment out of the tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvConfig, config.EnvTenantID, config.EnvClientID, config.EnvClientSecret,
		config.EnvMaxRetries, config.EnvRetryDelay, config.EnvAuthorityHost, config.EnvGraphEndpoint,
		config.EnvFrom, config.EnvSenderName, config.EnvAzureTenantID, config.EnvAzureClientID,
		config.EnvAzureSecret, config.EnvAzureAuthority, envOutput, envVerbose,
	} {
		t.Setenv(key, "")
	}
}

func runCommand(t *testing.T, configPath string, stdin string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	root := NewRootCommand(Config{
		ConfigPath:   configPath,
		OutputWriter: buf,
		Logger:       zap.NewNop().Sugar(),
	})
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(buf)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func (fc *fakeCloud) setStatus(status int) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.status = status
}

func (fc *fakeCloud) setRoles(roles ...any) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.roles = roles
}

func (fc *fakeCloud) graphCount() int {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.graphCalls
}

func (fc *fakeCloud) tokenCount() int {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.tokenCalls
}

func (fc *fakeCloud) sent() ([]map[string]any, []string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return append([]map[string]any(nil), fc.messages...), append([]string(nil), fc.mailboxes...)
}
