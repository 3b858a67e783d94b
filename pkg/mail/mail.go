// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package mail

import (
	"time"

	"github.com/telekom/graph-mailer/pkg/graph"
)

const (
	// DefaultMaxRetries is used when Config.MaxRetries is nil.
	DefaultMaxRetries = 2
	// DefaultRetryDelay is the linear backoff unit: attempt n waits n*DefaultRetryDelay.
	DefaultRetryDelay = time.Second
	// DefaultSubject is used when neither the request nor the config sets one.
	DefaultSubject = "Email from Azure Email Service"
)

// Attachment is a Graph file attachment, passed through verbatim.
type Attachment = graph.FileAttachment

// SendRequest describes one message. FromEmail is both the sending mailbox
// and, when SenderName is set, the explicit from address.
type SendRequest struct {
	FromEmail   string       `json:"fromEmail" yaml:"fromEmail"`
	ToEmail     []string     `json:"toEmail" yaml:"toEmail"`
	Body        string       `json:"body" yaml:"body"`
	Subject     string       `json:"subject,omitempty" yaml:"subject,omitempty"`
	SenderName  string       `json:"senderName,omitempty" yaml:"senderName,omitempty"`
	CC          []string     `json:"cc,omitempty" yaml:"cc,omitempty"`
	BCC         []string     `json:"bcc,omitempty" yaml:"bcc,omitempty"`
	ReplyTo     string       `json:"replyTo,omitempty" yaml:"replyTo,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty" yaml:"attachments,omitempty"`
}

// Validate checks the required fields in a fixed order and reports the first
// one missing.
func (r SendRequest) Validate() error {
	if r.FromEmail == "" {
		return &ValidationError{Field: "fromEmail", Message: "fromEmail is required"}
	}
	if len(r.ToEmail) == 0 {
		return &ValidationError{Field: "toEmail", Message: "at least one recipient email is required"}
	}
	if r.Body == "" {
		return &ValidationError{Field: "body", Message: "email body is required"}
	}
	return nil
}

// BuildMessage maps r onto the Graph sendMail payload. defaultSubject is used
// when r.Subject is empty.
func BuildMessage(r SendRequest, defaultSubject string) graph.SendMailRequest {
	subject := r.Subject
	if subject == "" {
		subject = defaultSubject
	}

	msg := graph.Message{
		Subject:       subject,
		Body:          graph.ItemBody{ContentType: graph.ContentTypeHTML, Content: r.Body},
		ToRecipients:  graph.Recipients(r.ToEmail),
		CcRecipients:  graph.Recipients(r.CC),
		BccRecipients: graph.Recipients(r.BCC),
		ReplyTo:       []graph.Recipient{},
		Attachments:   []Attachment{},
	}
	if r.ReplyTo != "" {
		msg.ReplyTo = graph.Recipients([]string{r.ReplyTo})
	}
	if len(r.Attachments) > 0 {
		msg.Attachments = append(msg.Attachments, r.Attachments...)
	}
	// Without a display name Graph derives the sender from the mailbox in the URL.
	if r.SenderName != "" {
		msg.From = &graph.Recipient{EmailAddress: graph.EmailAddress{
			Name:    r.SenderName,
			Address: r.FromEmail,
		}}
	}
	return graph.SendMailRequest{Message: msg}
}
