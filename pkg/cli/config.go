// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/telekom/graph-mailer/pkg/config"
	"github.com/telekom/graph-mailer/pkg/output"
)

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage graphmail configuration",
	}

	cmd.AddCommand(
		newConfigInitCommand(),
		newConfigViewCommand(),
		newConfigSetSecretCommand(),
	)

	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		tenantID       string
		clientID       string
		secretEnv      string
		secretFile     string
		keyringService string
		from           string
		senderName     string
		graphEndpoint  string
		authorityHost  string
		force          bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			path := rt.configPathValue()
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("config already exists: %s", path)
				}
			}

			cfg := config.DefaultConfig()
			cfg.TenantID = tenantID
			cfg.ClientID = clientID
			cfg.ClientSecretEnv = secretEnv
			cfg.ClientSecretFile = secretFile
			if keyringService != "" {
				cfg.ClientSecretKeyring = &config.KeyringRef{Service: keyringService, User: clientID}
			}
			if secretEnv == "" && secretFile == "" && keyringService == "" {
				cfg.ClientSecretEnv = config.EnvClientSecret
			}
			cfg.Defaults.From = from
			cfg.Defaults.SenderName = senderName
			cfg.GraphEndpoint = graphEndpoint
			cfg.AuthorityHost = authorityHost

			if err := config.Save(path, &cfg); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(rt.Writer(), "Initialized config at %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&tenantID, "tenant-id", "", "Entra ID tenant ID")
	cmd.Flags().StringVar(&clientID, "client-id", "", "Application (client) ID")
	cmd.Flags().StringVar(&secretEnv, "client-secret-env", "", "Environment variable holding the client secret")
	cmd.Flags().StringVar(&secretFile, "client-secret-file", "", "File holding the client secret")
	cmd.Flags().StringVar(&keyringService, "keyring-service", "", "Read the client secret from the OS keychain under this service")
	cmd.Flags().StringVar(&from, "from", "", "Default sending mailbox")
	cmd.Flags().StringVar(&senderName, "sender-name", "", "Default sender display name")
	cmd.Flags().StringVar(&graphEndpoint, "graph-endpoint", "", "Microsoft Graph base URL override")
	cmd.Flags().StringVar(&authorityHost, "authority-host", "", "Identity platform host override")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config")
	cmd.MarkFlagsMutuallyExclusive("client-secret-env", "client-secret-file", "keyring-service")

	_ = cmd.MarkFlagRequired("tenant-id")
	_ = cmd.MarkFlagRequired("client-id")
	return cmd
}

func newConfigViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show the resolved configuration with secrets redacted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			format, err := rt.OutputFormat()
			if err != nil {
				return err
			}
			if format == output.FormatTable {
				format = output.FormatYAML
			}
			return output.WriteObject(rt.Writer(), format, rt.cfg.Redacted())
		},
	}
}

func newConfigSetSecretCommand() *cobra.Command {
	var service string

	cmd := &cobra.Command{
		Use:   "set-secret",
		Short: "Store the client secret in the OS keychain",
		Long:  "Read the client secret from stdin, store it in the OS keychain and point the config file at it.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if rt.cfg.ClientID == "" {
				return errors.New("client-id must be configured before storing a secret")
			}
			secret, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && secret == "" {
				return fmt.Errorf("failed to read secret from stdin: %w", err)
			}
			secret = strings.TrimSpace(secret)
			if secret == "" {
				return errors.New("secret is empty")
			}

			ref := config.KeyringRef{Service: service, User: rt.cfg.ClientID}
			if err := config.StoreClientSecretInKeyring(ref, secret); err != nil {
				return err
			}

			path := rt.configPathValue()
			fileCfg, err := config.LoadOptional(path)
			if err != nil {
				return err
			}
			fileCfg.ClientSecret = ""
			fileCfg.ClientSecretEnv = ""
			fileCfg.ClientSecretFile = ""
			fileCfg.ClientSecretKeyring = &ref
			if err := config.Save(path, fileCfg); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(rt.Writer(), "Stored client secret in keychain service %q\n", service)
			return nil
		},
	}

	cmd.Flags().StringVar(&service, "service", "graphmail", "Keychain service name")
	return cmd
}
