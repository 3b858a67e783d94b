// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package mail

import (
	"context"
	"sync"
	"time"

	"github.com/telekom/graph-mailer/pkg/graph"
)

// fakeTokens returns errs[i] on call i and a token once errs run out.
type fakeTokens struct {
	mu    sync.Mutex
	calls int
	errs  []error
}

func (f *fakeTokens) AcquireToken(_ context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	return "token-" + string(rune('a'+i)), nil
}

func (f *fakeTokens) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type sentMail struct {
	token   string
	mailbox string
	msg     graph.SendMailRequest
}

// fakeTransport fails the first failures calls with err.
type fakeTransport struct {
	mu       sync.Mutex
	calls    int
	failures int
	err      error
	errs     []error
	sent     []sentMail
}

func (f *fakeTransport) SendMail(_ context.Context, token, mailbox string, msg graph.SendMailRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	f.sent = append(f.sent, sentMail{token: token, mailbox: mailbox, msg: msg})
	if i < len(f.errs) {
		return f.errs[i]
	}
	if i < f.failures {
		return f.err
	}
	return nil
}

func (f *fakeTransport) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// recordingSleeper records requested delays without waiting.
type recordingSleeper struct {
	mu     sync.Mutex
	delays []time.Duration
	err    error
}

func (r *recordingSleeper) Sleep(_ context.Context, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delays = append(r.delays, d)
	return r.err
}

func (r *recordingSleeper) Delays() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.delays...)
}
