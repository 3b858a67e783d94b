// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package mail

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telekom/graph-mailer/pkg/graph"
)

func TestNewFileAttachment(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		data        []byte
		contentType string
	}{
		{name: "pdf", file: "report.pdf", data: []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n"), contentType: "application/pdf"},
		{name: "png", file: "logo.png", data: []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), contentType: "image/png"},
		{name: "text", file: "notes.txt", data: []byte("hello world\n"), contentType: "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			att := NewFileAttachment(tt.file, tt.data)
			assert.Equal(t, graph.FileAttachmentType, att.ODataType)
			assert.Equal(t, tt.file, att.Name)
			assert.Equal(t, tt.contentType, att.ContentType)

			decoded, err := base64.StdEncoding.DecodeString(att.ContentBytes)
			require.NoError(t, err)
			assert.Equal(t, tt.data, decoded)
		})
	}
}

func TestLoadFileAttachment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice.txt")
	require.NoError(t, os.WriteFile(path, []byte("total: 42\n"), 0o600))

	att, err := LoadFileAttachment(path)
	require.NoError(t, err)
	assert.Equal(t, "invoice.txt", att.Name)
	assert.Equal(t, "text/plain", att.ContentType)

	_, err = LoadFileAttachment(filepath.Join(t.TempDir(), "missing.bin"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read attachment")
}
