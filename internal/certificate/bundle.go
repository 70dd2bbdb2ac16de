/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package certificate produces, validates, and registers the TLS material
// used by the routing stack in private-certificate mode.
package certificate

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/authfront/authfront/internal/errdefs"
)

// File names of the bundle artifacts inside a certificate directory.
const (
	CertificateFileName = "certificate.pem"
	PrivateKeyFileName  = "private-key.pem"
	ChainFileName       = "chain.pem"
)

const (
	keyBits      = 2048
	validityDays = 365
)

// Bundle is a (certificate, private key, chain) triple in PEM form. The chain
// may be empty; the other two are required and must be cryptographically
// bound to each other.
type Bundle struct {
	Certificate []byte
	PrivateKey  []byte
	Chain       []byte
}

// Generate produces a self-signed bundle for the given domain with a
// deterministic key size and validity window. Subject alternative names cover
// the bare domain and a wildcard of it.
func Generate(domain, project, environment string) (*Bundle, error) {
	key, err := rsa.GenerateKey(rand.Reader, keyBits)
	if err != nil {
		return nil, errdefs.Generationf("failed to generate RSA key: %w", err)
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, errdefs.Generationf("failed to generate serial number: %w", err)
	}

	now := time.Now()
	template := x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			CommonName:         domain,
			Organization:       []string{project},
			OrganizationalUnit: []string{environment},
		},
		NotBefore:             now.Add(-time.Hour),
		NotAfter:              now.AddDate(0, 0, validityDays),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		DNSNames:              []string{domain, "*." + domain},
		BasicConstraintsValid: true,
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		return nil, errdefs.Generationf("failed to create certificate: %w", err)
	}

	return &Bundle{
		Certificate: pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}),
		PrivateKey:  pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}),
	}, nil
}

// LoadDir reads a bundle from a directory. The chain file is optional: an
// absent chain yields an empty chain, identical to an explicitly empty file.
// The loaded bundle is verified before being returned.
func LoadDir(dir string) (*Bundle, error) {
	certificate, err := os.ReadFile(filepath.Join(dir, CertificateFileName))
	if err != nil {
		return nil, errdefs.Validationf("failed to read %s: %w", CertificateFileName, err)
	}

	privateKey, err := os.ReadFile(filepath.Join(dir, PrivateKeyFileName))
	if err != nil {
		return nil, errdefs.Validationf("failed to read %s: %w", PrivateKeyFileName, err)
	}

	chain, err := os.ReadFile(filepath.Join(dir, ChainFileName))
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errdefs.Validationf("failed to read %s: %w", ChainFileName, err)
		}
		chain = nil
	}

	bundle := &Bundle{Certificate: certificate, PrivateKey: privateKey, Chain: chain}
	if err := bundle.Verify(); err != nil {
		return nil, err
	}
	return bundle, nil
}

// Verify checks that the certificate parses, the key parses, and the
// certificate's public modulus equals the private key's modulus. A bundle
// failing this check must never reach the certificate store.
func (b *Bundle) Verify() error {
	cert, err := parseCertificatePEM(b.Certificate)
	if err != nil {
		return err
	}

	key, err := parsePrivateKeyPEM(b.PrivateKey)
	if err != nil {
		return err
	}

	publicKey, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return errdefs.Validationf("certificate public key is not RSA")
	}

	if publicKey.N.Cmp(key.N) != 0 {
		return errdefs.Validationf("certificate does not match private key")
	}

	return nil
}

// WriteDir persists the bundle into a directory, creating it if needed. The
// private key is written with owner-only permissions.
func (b *Bundle) WriteDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errdefs.Generationf("failed to create certificate directory %s: %w", dir, err)
	}

	if err := os.WriteFile(filepath.Join(dir, CertificateFileName), b.Certificate, 0o644); err != nil {
		return errdefs.Generationf("failed to write certificate: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, PrivateKeyFileName), b.PrivateKey, 0o600); err != nil {
		return errdefs.Generationf("failed to write private key: %w", err)
	}
	if len(b.Chain) > 0 {
		if err := os.WriteFile(filepath.Join(dir, ChainFileName), b.Chain, 0o644); err != nil {
			return errdefs.Generationf("failed to write chain: %w", err)
		}
	}
	return nil
}

func parseCertificatePEM(data []byte) (*x509.Certificate, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != "CERTIFICATE" {
		return nil, errdefs.Validationf("certificate is not PEM-encoded CERTIFICATE data")
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, errdefs.Validationf("failed to parse certificate: %w", err)
	}
	return cert, nil
}

func parsePrivateKeyPEM(data []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errdefs.Validationf("private key is not PEM-encoded")
	}

	switch block.Type {
	case "RSA PRIVATE KEY":
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, errdefs.Validationf("failed to parse RSA private key: %w", err)
		}
		return key, nil
	case "PRIVATE KEY":
		parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, errdefs.Validationf("failed to parse private key: %w", err)
		}
		key, ok := parsed.(*rsa.PrivateKey)
		if !ok {
			return nil, errdefs.Validationf("private key is not an RSA key")
		}
		return key, nil
	default:
		return nil, errdefs.Validationf("unexpected PEM block type %q for private key", block.Type)
	}
}
