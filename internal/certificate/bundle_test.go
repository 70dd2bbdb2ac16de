/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package certificate

import (
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/authfront/authfront/internal/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_ProducesVerifiableBundle(t *testing.T) {
	bundle, err := Generate("api.example.test", "authfront", "dev")

	require.NoError(t, err)
	assert.NoError(t, bundle.Verify())
	assert.Empty(t, bundle.Chain)
}

func TestGenerate_CertificateProperties(t *testing.T) {
	bundle, err := Generate("api.example.test", "authfront", "staging")
	require.NoError(t, err)

	block, _ := pem.Decode(bundle.Certificate)
	require.NotNil(t, block)
	cert, err := x509.ParseCertificate(block.Bytes)
	require.NoError(t, err)

	assert.Equal(t, "api.example.test", cert.Subject.CommonName)
	assert.Equal(t, []string{"authfront"}, cert.Subject.Organization)
	assert.Equal(t, []string{"staging"}, cert.Subject.OrganizationalUnit)
	assert.ElementsMatch(t, []string{"api.example.test", "*.api.example.test"}, cert.DNSNames)

	// 365-day validity window, anchored an hour early for clock drift.
	lifetime := cert.NotAfter.Sub(cert.NotBefore)
	assert.Equal(t, 365*24*time.Hour+time.Hour, lifetime)
}

func TestVerify_MismatchedKeyPairIsValidationError(t *testing.T) {
	a, err := Generate("a.example.test", "authfront", "dev")
	require.NoError(t, err)
	b, err := Generate("b.example.test", "authfront", "dev")
	require.NoError(t, err)

	mismatched := &Bundle{Certificate: a.Certificate, PrivateKey: b.PrivateKey}

	err = mismatched.Verify()
	require.Error(t, err)
	assert.True(t, errdefs.IsValidation(err))
	assert.Contains(t, err.Error(), "does not match")
}

func TestVerify_GarbageCertificateIsValidationError(t *testing.T) {
	bundle := &Bundle{Certificate: []byte("not pem"), PrivateKey: []byte("not pem")}

	err := bundle.Verify()
	require.Error(t, err)
	assert.True(t, errdefs.IsValidation(err))
}

func TestVerify_WrongPEMTypeIsValidationError(t *testing.T) {
	good, err := Generate("api.example.test", "authfront", "dev")
	require.NoError(t, err)

	// Swap the PEM bodies: a private key where a certificate should be.
	swapped := &Bundle{Certificate: good.PrivateKey, PrivateKey: good.PrivateKey}

	err = swapped.Verify()
	require.Error(t, err)
	assert.True(t, errdefs.IsValidation(err))
}

func TestLoadDir_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	generated, err := Generate("api.example.test", "authfront", "dev")
	require.NoError(t, err)
	require.NoError(t, generated.WriteDir(dir))

	loaded, err := LoadDir(dir)

	require.NoError(t, err)
	assert.Equal(t, generated.Certificate, loaded.Certificate)
	assert.Equal(t, generated.PrivateKey, loaded.PrivateKey)
}

func TestLoadDir_MissingChainEqualsEmptyChain(t *testing.T) {
	generated, err := Generate("api.example.test", "authfront", "dev")
	require.NoError(t, err)

	withoutChain := t.TempDir()
	require.NoError(t, generated.WriteDir(withoutChain))

	withEmptyChain := t.TempDir()
	require.NoError(t, generated.WriteDir(withEmptyChain))
	require.NoError(t, os.WriteFile(filepath.Join(withEmptyChain, ChainFileName), nil, 0o644))

	a, err := LoadDir(withoutChain)
	require.NoError(t, err)
	b, err := LoadDir(withEmptyChain)
	require.NoError(t, err)

	assert.Empty(t, a.Chain)
	assert.Empty(t, b.Chain)
	assert.Equal(t, a.Certificate, b.Certificate)
}

func TestLoadDir_MissingPrivateKeyIsValidationError(t *testing.T) {
	dir := t.TempDir()
	generated, err := Generate("api.example.test", "authfront", "dev")
	require.NoError(t, err)
	require.NoError(t, generated.WriteDir(dir))
	require.NoError(t, os.Remove(filepath.Join(dir, PrivateKeyFileName)))

	_, err = LoadDir(dir)
	require.Error(t, err)
	assert.True(t, errdefs.IsValidation(err))
}

func TestWriteDir_PrivateKeyPermissions(t *testing.T) {
	dir := t.TempDir()
	generated, err := Generate("api.example.test", "authfront", "dev")
	require.NoError(t, err)
	require.NoError(t, generated.WriteDir(dir))

	info, err := os.Stat(filepath.Join(dir, PrivateKeyFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
