// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

// Package metrics defines Prometheus metrics for token acquisition and mail
// submission against Microsoft Graph.
package metrics
