// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/telekom/graph-mailer/pkg/auth"
)

// SendResult summarizes one send command invocation.
type SendResult struct {
	Sent        bool     `json:"sent" yaml:"sent"`
	From        string   `json:"from" yaml:"from"`
	To          []string `json:"to" yaml:"to"`
	CC          []string `json:"cc,omitempty" yaml:"cc,omitempty"`
	BCC         []string `json:"bcc,omitempty" yaml:"bcc,omitempty"`
	Subject     string   `json:"subject" yaml:"subject"`
	Attachments int      `json:"attachments" yaml:"attachments"`
	Error       string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// TokenInfo is what the token command reports.
type TokenInfo struct {
	Claims       auth.Claims `json:"claims" yaml:"claims"`
	MailSend     bool        `json:"mailSend" yaml:"mailSend"`
	TokenURL     string      `json:"tokenUrl" yaml:"tokenUrl"`
	AccessToken  string      `json:"accessToken,omitempty" yaml:"accessToken,omitempty"`
	TokenExcerpt string      `json:"tokenExcerpt" yaml:"tokenExcerpt"`
}

func WriteSendTable(w io.Writer, results []SendResult) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "FROM\tTO\tSUBJECT\tATTACHMENTS\tSENT\tERROR")
	for _, r := range results {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%t\t%s\n",
			r.From, joinOrDash(r.To), dashIfEmpty(r.Subject), r.Attachments, r.Sent, dashIfEmpty(r.Error))
	}
	_ = tw.Flush()
}

func WriteTokenTable(w io.Writer, info TokenInfo) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "TOKEN URL:\t%s\n", info.TokenURL)
	_, _ = fmt.Fprintf(tw, "APP ID:\t%s\n", dashIfEmpty(info.Claims.AppID))
	_, _ = fmt.Fprintf(tw, "TENANT:\t%s\n", dashIfEmpty(info.Claims.TenantID))
	_, _ = fmt.Fprintf(tw, "AUDIENCE:\t%s\n", dashIfEmpty(info.Claims.Audience))
	_, _ = fmt.Fprintf(tw, "ROLES:\t%s\n", joinOrDash(info.Claims.Roles))
	_, _ = fmt.Fprintf(tw, "EXPIRES:\t%s\n", formatTime(info.Claims.ExpiresAt))
	_, _ = fmt.Fprintf(tw, "MAIL.SEND:\t%s\n", grantedLabel(info.MailSend))
	_, _ = fmt.Fprintf(tw, "TOKEN:\t%s\n", info.TokenExcerpt)
	_ = tw.Flush()
}

func grantedLabel(ok bool) string {
	if ok {
		return "granted"
	}
	return "missing"
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ",")
}

func dashIfEmpty(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}
