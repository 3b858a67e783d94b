// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/spf13/cobra"

	"github.com/telekom/graph-mailer/pkg/mail"
	"github.com/telekom/graph-mailer/pkg/output"
)

func NewSendCommand() *cobra.Command {
	var msg messageFlags

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a message through Microsoft Graph",
		Example: `  graphmail send --from noreply@example.com --to ops@example.com --subject "Nightly report" --body-file report.html
  graphmail send --to a@example.com --body-template welcome.tmpl --data user.yaml --attach terms.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			format, err := rt.OutputFormat()
			if err != nil {
				return err
			}
			req, err := msg.build(rt.cfg.Defaults, cmd.InOrStdin())
			if err != nil {
				return err
			}
			mailCfg, err := rt.cfg.MailConfig()
			if err != nil {
				return err
			}
			svc, err := mail.NewService(mailCfg, mail.WithLogger(rt.Logger()))
			if err != nil {
				return err
			}

			sent, sendErr := svc.SendEmail(cmd.Context(), req)
			result := output.SendResult{
				Sent:        sent,
				From:        req.FromEmail,
				To:          req.ToEmail,
				CC:          req.CC,
				BCC:         req.BCC,
				Subject:     firstNonEmpty(req.Subject, mailCfg.DefaultSubject, mail.DefaultSubject),
				Attachments: len(req.Attachments),
			}
			if sendErr != nil {
				result.Error = sendErr.Error()
			}

			if format == output.FormatTable {
				output.WriteSendTable(rt.Writer(), []output.SendResult{result})
			} else if err := output.WriteObject(rt.Writer(), format, result); err != nil {
				return err
			}
			return sendErr
		},
	}
	msg.bind(cmd)
	return cmd
}
