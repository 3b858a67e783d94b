// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

// Package auth acquires Microsoft Graph access tokens with the OAuth2
// client-credentials grant and inspects the claims of the tokens it receives.
package auth
