// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

// Package mail sends transactional email through Microsoft Graph. Service
// validates a SendRequest, builds the Graph message and submits it with a
// fresh client-credentials token per attempt, retrying with a linear backoff.
// Helpers cover file attachments, HTML body templates and MIME previews.
package mail
