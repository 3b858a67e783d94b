// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
)

const (
	defaultConfigDirName = "graphmail"
	defaultConfigFile    = "config.yaml"
)

// DefaultConfigPath resolves where graphmail reads its config file:
// $GRAPHMAIL_CONFIG when set, otherwise graphmail/config.yaml under the
// user config dir ($XDG_CONFIG_HOME or ~/.config on Linux). Without a
// config dir it uses ~/.graphmail/config.yaml.
func DefaultConfigPath() string {
	if path := os.Getenv(EnvConfig); path != "" {
		return path
	}
	if base, err := os.UserConfigDir(); err == nil {
		return filepath.Join(base, defaultConfigDirName, defaultConfigFile)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "."+defaultConfigDirName, defaultConfigFile)
}
