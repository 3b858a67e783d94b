// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package mail

import (
	"encoding/base64"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"
)

// WriteMIME writes req as an RFC 5322 message to w, the way a recipient
// would see it. Bcc is not rendered. Nothing is sent.
func WriteMIME(w io.Writer, req SendRequest, defaultSubject string) error {
	if err := req.Validate(); err != nil {
		return err
	}
	subject := req.Subject
	if subject == "" {
		subject = defaultSubject
	}

	m := gomail.NewMessage()
	if req.SenderName != "" {
		m.SetAddressHeader("From", req.FromEmail, req.SenderName)
	} else {
		m.SetHeader("From", req.FromEmail)
	}
	m.SetHeader("To", req.ToEmail...)
	if len(req.CC) > 0 {
		m.SetHeader("Cc", req.CC...)
	}
	if len(req.BCC) > 0 {
		m.SetHeader("Bcc", req.BCC...)
	}
	if req.ReplyTo != "" {
		m.SetHeader("Reply-To", req.ReplyTo)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", req.Body)

	for _, a := range req.Attachments {
		data, err := base64.StdEncoding.DecodeString(a.ContentBytes)
		if err != nil {
			return fmt.Errorf("attachment %q: invalid base64 content: %w", a.Name, err)
		}
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		}
		if a.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {a.ContentType},
			}))
		}
		m.Attach(a.Name, settings...)
	}

	_, err := m.WriteTo(w)
	return err
}
