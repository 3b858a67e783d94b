// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package mail

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/telekom/graph-mailer/pkg/graph"
)

// NewFileAttachment base64 encodes data and detects its content type from
// the content itself. Size is not checked.
func NewFileAttachment(name string, data []byte) Attachment {
	contentType, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	return Attachment{
		ODataType:    graph.FileAttachmentType,
		Name:         name,
		ContentType:  strings.TrimSpace(contentType),
		ContentBytes: base64.StdEncoding.EncodeToString(data),
	}
}

// LoadFileAttachment reads path and attaches it under its base name.
func LoadFileAttachment(path string) (Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Attachment{}, fmt.Errorf("failed to read attachment: %w", err)
	}
	return NewFileAttachment(filepath.Base(path), data), nil
}
