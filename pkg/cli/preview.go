// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/spf13/cobra"

	"github.com/telekom/graph-mailer/pkg/mail"
)

func NewPreviewCommand() *cobra.Command {
	var msg messageFlags

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render a message as MIME without sending it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			req, err := msg.build(rt.cfg.Defaults, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return mail.WriteMIME(rt.Writer(), req, firstNonEmpty(rt.cfg.Defaults.Subject, mail.DefaultSubject))
		},
	}
	msg.bind(cmd)
	return cmd
}
