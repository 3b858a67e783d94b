// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

// Package config loads graphmail settings from a YAML file, an optional
// .env file and GRAPHMAIL_* environment variables, and resolves the client
// secret from the configured source.
package config
