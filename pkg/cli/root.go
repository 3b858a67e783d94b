// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/telekom/graph-mailer/pkg/config"
	"github.com/telekom/graph-mailer/pkg/output"
	"github.com/telekom/graph-mailer/pkg/system"
)

const (
	envOutput  = "GRAPHMAIL_OUTPUT"
	envVerbose = "GRAPHMAIL_VERBOSE"
)

type Config struct {
	ConfigPath   string
	OutputWriter io.Writer
	// Logger replaces the logger built from --verbose.
	Logger *zap.SugaredLogger
}

type runtimeState struct {
	configPath   string
	envFiles     []string
	outputFormat string
	verbose      bool
	cfg          *config.Config
	writer       io.Writer
	log          *zap.SugaredLogger
}

type runtimeKey struct{}

func DefaultConfig() Config {
	return Config{
		ConfigPath:   config.DefaultConfigPath(),
		OutputWriter: os.Stdout,
	}
}

func NewRootCommand(cfg Config) *cobra.Command {
	rt := &runtimeState{configPath: cfg.ConfigPath, writer: cfg.OutputWriter, log: cfg.Logger}

	root := &cobra.Command{
		Use:           "graphmail",
		Short:         "Send mail through Microsoft Graph with app-only credentials",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// ExecuteContext replaces the root context set below.
			if _, err := getRuntime(cmd); err != nil {
				cmd.SetContext(context.WithValue(cmd.Context(), runtimeKey{}, rt))
			}
			if rt.writer == nil {
				rt.writer = os.Stdout
			}
			if rt.configPath == "" {
				rt.configPath = config.DefaultConfigPath()
			}
			if rt.outputFormat == "" {
				rt.outputFormat = os.Getenv(envOutput)
			}
			if !rt.verbose {
				rt.verbose = strings.EqualFold(os.Getenv(envVerbose), "true")
			}
			if rt.log == nil {
				logger, err := newLogger(rt.verbose)
				if err != nil {
					return err
				}
				rt.log = logger.Sugar()
			}

			if cmd.Name() == "version" || cmd.Name() == "completion" {
				return nil
			}
			if cmd.Name() == "init" && cmd.Parent() != nil && cmd.Parent().Name() == "config" {
				return nil
			}
			return rt.loadConfig()
		},
	}

	root.PersistentFlags().StringVar(&rt.configPath, "config", rt.configPath, "Path to config file")
	root.PersistentFlags().StringSliceVar(&rt.envFiles, "env-file", nil, "Load environment variables from these files (default ./.env if present)")
	root.PersistentFlags().StringVarP(&rt.outputFormat, "output", "o", "", "Output format: table, json, yaml")
	root.PersistentFlags().BoolVarP(&rt.verbose, "verbose", "v", false, "Log requests and retries to stderr")

	root.SetContext(context.WithValue(context.Background(), runtimeKey{}, rt))

	root.AddCommand(
		NewSendCommand(),
		NewPreviewCommand(),
		NewTokenCommand(),
		NewConfigCommand(),
		NewCompletionCommand(),
		NewVersionCommand(),
	)

	return root
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return system.NewLogger(true)
	}
	return system.NewQuietLogger()
}

func getRuntime(cmd *cobra.Command) (*runtimeState, error) {
	rt, ok := cmd.Context().Value(runtimeKey{}).(*runtimeState)
	if !ok || rt == nil {
		return nil, errors.New("runtime not initialized")
	}
	return rt, nil
}

// loadConfig reads the config file if it exists and overlays the
// environment, including any .env files.
func (rt *runtimeState) loadConfig() error {
	if err := config.LoadDotEnv(rt.envFiles...); err != nil {
		return err
	}
	cfg, err := config.LoadOptional(rt.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return err
	}
	rt.cfg = cfg
	return nil
}

func (rt *runtimeState) OutputFormat() (output.Format, error) {
	return output.ParseFormat(rt.outputFormat)
}

func (rt *runtimeState) Writer() io.Writer {
	if rt.writer != nil {
		return rt.writer
	}
	return os.Stdout
}

func (rt *runtimeState) Logger() *zap.SugaredLogger {
	if rt.log != nil {
		return rt.log
	}
	return zap.NewNop().Sugar()
}

func (rt *runtimeState) configPathValue() string {
	if rt.configPath == "" {
		return config.DefaultConfigPath()
	}
	return rt.configPath
}
