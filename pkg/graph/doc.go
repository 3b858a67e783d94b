// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

// Package graph implements the Microsoft Graph mail transport: the sendMail
// wire types and a small REST client that submits a message on behalf of a
// mailbox using a bearer token.
package graph
