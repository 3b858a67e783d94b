// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/telekom/graph-mailer/pkg/config"
	"github.com/telekom/graph-mailer/pkg/mail"
)

// messageFlags are shared by send and preview.
type messageFlags struct {
	from         string
	to           []string
	cc           []string
	bcc          []string
	subject      string
	body         string
	bodyFile     string
	bodyTemplate string
	dataFile     string
	senderName   string
	replyTo      string
	attachments  []string
}

func (f *messageFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.from, "from", "", "Sending mailbox (defaults to config defaults.from)")
	flags.StringSliceVar(&f.to, "to", nil, "Recipient address, repeatable or comma separated")
	flags.StringSliceVar(&f.cc, "cc", nil, "Cc address, repeatable or comma separated")
	flags.StringSliceVar(&f.bcc, "bcc", nil, "Bcc address, repeatable or comma separated")
	flags.StringVar(&f.subject, "subject", "", "Subject line")
	flags.StringVar(&f.body, "body", "", "HTML body")
	flags.StringVar(&f.bodyFile, "body-file", "", "Read the HTML body from a file, - for stdin")
	flags.StringVar(&f.bodyTemplate, "body-template", "", "Render the HTML body from a Go template file")
	flags.StringVar(&f.dataFile, "data", "", "YAML or JSON file with template data")
	flags.StringVar(&f.senderName, "sender-name", "", "Display name for the from address")
	flags.StringVar(&f.replyTo, "reply-to", "", "Reply-To address")
	flags.StringSliceVar(&f.attachments, "attach", nil, "File to attach, repeatable")
	cmd.MarkFlagsMutuallyExclusive("body", "body-file", "body-template")
}

// build assembles the request from flags, falling back to the config
// defaults. It does not validate; SendEmail and WriteMIME do.
func (f *messageFlags) build(defaults config.MessageDefaults, stdin io.Reader) (mail.SendRequest, error) {
	req := mail.SendRequest{
		FromEmail:  firstNonEmpty(f.from, defaults.From),
		ToEmail:    f.to,
		CC:         f.cc,
		BCC:        f.bcc,
		Subject:    firstNonEmpty(f.subject, defaults.Subject),
		SenderName: firstNonEmpty(f.senderName, defaults.SenderName),
		ReplyTo:    firstNonEmpty(f.replyTo, defaults.ReplyTo),
	}

	body, err := f.readBody(stdin)
	if err != nil {
		return mail.SendRequest{}, err
	}
	req.Body = body

	for _, path := range f.attachments {
		a, err := mail.LoadFileAttachment(path)
		if err != nil {
			return mail.SendRequest{}, err
		}
		req.Attachments = append(req.Attachments, a)
	}
	return req, nil
}

func (f *messageFlags) readBody(stdin io.Reader) (string, error) {
	switch {
	case f.bodyFile == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read body from stdin: %w", err)
		}
		return string(data), nil
	case f.bodyFile != "":
		data, err := os.ReadFile(f.bodyFile)
		if err != nil {
			return "", fmt.Errorf("failed to read body file: %w", err)
		}
		return string(data), nil
	case f.bodyTemplate != "":
		tmpl, err := os.ReadFile(f.bodyTemplate)
		if err != nil {
			return "", fmt.Errorf("failed to read body template: %w", err)
		}
		data, err := loadTemplateData(f.dataFile)
		if err != nil {
			return "", err
		}
		return mail.RenderBody(string(tmpl), data)
	default:
		if f.dataFile != "" {
			return "", errors.New("--data requires --body-template")
		}
		return f.body, nil
	}
}

func loadTemplateData(path string) (map[string]any, error) {
	data := map[string]any{}
	if path == "" {
		return data, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template data: %w", err)
	}
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("failed to parse template data: %w", err)
	}
	return data, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
