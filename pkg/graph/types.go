// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package graph

const (
	// FileAttachmentType is the OData discriminator for file attachments.
	FileAttachmentType = "#microsoft.graph.fileAttachment"
	// ContentTypeHTML is the only body content type this client submits.
	ContentTypeHTML = "HTML"
)

// SendMailRequest is the body of POST /users/{id}/sendMail.
type SendMailRequest struct {
	Message Message `json:"message"`
}

// Message mirrors the subset of the Graph message resource used for sending.
// List fields are always serialized, as empty arrays when unset; From is
// omitted entirely when nil so Graph derives the sender from the mailbox.
type Message struct {
	Subject       string           `json:"subject"`
	Body          ItemBody         `json:"body"`
	From          *Recipient       `json:"from,omitempty"`
	ToRecipients  []Recipient      `json:"toRecipients"`
	CcRecipients  []Recipient      `json:"ccRecipients"`
	BccRecipients []Recipient      `json:"bccRecipients"`
	ReplyTo       []Recipient      `json:"replyTo"`
	Attachments   []FileAttachment `json:"attachments"`
}

type ItemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type Recipient struct {
	EmailAddress EmailAddress `json:"emailAddress"`
}

type EmailAddress struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address"`
}

// FileAttachment is passed through to Graph verbatim. ContentBytes holds the
// base64 encoded file content.
type FileAttachment struct {
	ODataType    string `json:"@odata.type" yaml:"@odata.type"`
	Name         string `json:"name" yaml:"name"`
	ContentType  string `json:"contentType" yaml:"contentType"`
	ContentBytes string `json:"contentBytes" yaml:"contentBytes"`
}

// Recipients wraps each address. The result is never nil.
func Recipients(addresses []string) []Recipient {
	out := make([]Recipient, 0, len(addresses))
	for _, addr := range addresses {
		out = append(out, Recipient{EmailAddress: EmailAddress{Address: addr}})
	}
	return out
}

// errorEnvelope is the standard Graph error body.
type errorEnvelope struct {
	Error struct {
		Code       string `json:"code"`
		Message    string `json:"message"`
		InnerError struct {
			RequestID       string `json:"request-id"`
			ClientRequestID string `json:"client-request-id"`
		} `json:"innerError"`
	} `json:"error"`
}
