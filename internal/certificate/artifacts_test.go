/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package certificate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/authfront/authfront/internal/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteArtifacts_ThenLoadReference(t *testing.T) {
	parametersDir := t.TempDir()
	outputDir := t.TempDir()
	ref := &Reference{ARN: testARN, Private: true}

	require.NoError(t, WriteArtifacts(parametersDir, outputDir, "dev", ref))

	loaded, err := LoadReference(parametersDir, "dev")
	require.NoError(t, err)
	assert.Equal(t, testARN, loaded.ARN)
	assert.True(t, loaded.Private)

	handle, err := os.ReadFile(HandlePath(outputDir, "dev"))
	require.NoError(t, err)
	assert.Equal(t, testARN, strings.TrimSpace(string(handle)))
}

func TestWriteArtifacts_FragmentIsOrderedKeyValueArray(t *testing.T) {
	parametersDir := t.TempDir()
	outputDir := t.TempDir()
	ref := &Reference{ARN: testARN, Private: true}

	require.NoError(t, WriteArtifacts(parametersDir, outputDir, "prod", ref))

	data, err := os.ReadFile(ArtifactPath(parametersDir, "prod"))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, `"ParameterKey": "CertificateArn"`)
	assert.Contains(t, content, `"ParameterKey": "UsePrivateCertificate"`)
	assert.Contains(t, content, `"ParameterValue": "true"`)
}

func TestLoadReference_MissingArtifactIsPreconditionError(t *testing.T) {
	_, err := LoadReference(t.TempDir(), "dev")

	require.Error(t, err)
	assert.True(t, errdefs.IsPrecondition(err))
	assert.Contains(t, err.Error(), "authfront certificate")
}

func TestLoadReference_MalformedArtifactIsPreconditionError(t *testing.T) {
	parametersDir := t.TempDir()
	path := ArtifactPath(parametersDir, "dev")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	_, err := LoadReference(parametersDir, "dev")

	require.Error(t, err)
	assert.True(t, errdefs.IsPrecondition(err))
}

func TestLoadReference_MissingARNEntryIsPreconditionError(t *testing.T) {
	parametersDir := t.TempDir()
	path := ArtifactPath(parametersDir, "dev")
	content := `[{"ParameterKey": "UsePrivateCertificate", "ParameterValue": "true"}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadReference(parametersDir, "dev")

	require.Error(t, err)
	assert.True(t, errdefs.IsPrecondition(err))
	assert.Contains(t, err.Error(), "CertificateArn")
}

func TestArtifactPath(t *testing.T) {
	assert.Equal(t, filepath.Join("parameters", "staging-certificate.json"), ArtifactPath("parameters", "staging"))
}
