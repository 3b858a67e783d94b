// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package graph

import (
	"encoding/json"
	"fmt"
	"strings"
)

// HTTPError is returned for any non-2xx response from Graph.
type HTTPError struct {
	StatusCode      int
	Code            string
	Message         string
	RequestID       string
	ClientRequestID string
}

func (e *HTTPError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("graph request failed (%d %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("graph request failed (%d): %s", e.StatusCode, e.Message)
}

func decodeError(statusCode int, status string, body []byte, requestID, clientRequestID string) error {
	var envelope errorEnvelope
	if len(body) > 0 {
		_ = json.Unmarshal(body, &envelope)
	}
	msg := strings.TrimSpace(envelope.Error.Message)
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	if msg == "" {
		msg = status
	}
	if requestID == "" {
		requestID = envelope.Error.InnerError.RequestID
	}
	return &HTTPError{
		StatusCode:      statusCode,
		Code:            envelope.Error.Code,
		Message:         msg,
		RequestID:       requestID,
		ClientRequestID: clientRequestID,
	}
}
