// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/telekom/graph-mailer/pkg/auth"
	"github.com/telekom/graph-mailer/pkg/output"
)

func NewTokenCommand() *cobra.Command {
	var showToken bool

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Acquire an app-only token and show its claims",
		Long: "Acquire an access token with the configured client credentials and report " +
			"whether the application has been granted the Mail.Send role.",
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
			mailCfg, err := rt.cfg.MailConfig()
			if err != nil {
				return err
			}
			provider, err := auth.NewClientCredentialsProvider(auth.Credential{
				ClientID:     mailCfg.ClientID,
				ClientSecret: mailCfg.ClientSecret,
				TenantID:     mailCfg.TenantID,
			}, auth.WithAuthorityHost(mailCfg.AuthorityHost), auth.WithLogger(rt.Logger()))
			if err != nil {
				return err
			}

			token, err := provider.AcquireToken(cmd.Context())
			if err != nil {
				return err
			}
			claims, err := auth.DecodeClaims(token)
			if err != nil {
				return fmt.Errorf("failed to decode access token: %w", err)
			}

			info := output.TokenInfo{
				Claims:       *claims,
				MailSend:     claims.HasRole(auth.MailSendRole),
				TokenURL:     provider.TokenURL(),
				TokenExcerpt: excerpt(token),
			}
			if showToken {
				info.AccessToken = token
			}
			if format == output.FormatTable {
				output.WriteTokenTable(rt.Writer(), info)
				return nil
			}
			return output.WriteObject(rt.Writer(), format, info)
		},
	}

	cmd.Flags().BoolVar(&showToken, "show-token", false, "Include the raw access token in the output")
	return cmd
}

func excerpt(token string) string {
	if len(token) <= 16 {
		return "****"
	}
	return token[:8] + "..." + token[len(token)-4:]
}
