/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/authfront/authfront/internal/errdefs"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/acm"
)

// CertificateDetails holds the certificate-store metadata for a registered
// certificate.
type CertificateDetails struct {
	ARN      string
	Domain   string
	Status   string
	NotAfter *time.Time
}

// DefaultCertificateStoreOperations provides ACM-backed certificate store
// operations.
type DefaultCertificateStoreOperations struct {
	client ACMAPI
}

// NewCertificateStoreOperations creates a new certificate store wrapper.
func NewCertificateStoreOperations(client ACMAPI) *DefaultCertificateStoreOperations {
	return &DefaultCertificateStoreOperations{client: client}
}

// ImportCertificate registers certificate material with the store and returns
// the handle (ARN). A rejection is a registration error and is never retried
// here; the material must be corrected first.
func (cs *DefaultCertificateStoreOperations) ImportCertificate(ctx context.Context, certificate, privateKey, chain []byte) (string, error) {
	input := &acm.ImportCertificateInput{
		Certificate: certificate,
		PrivateKey:  privateKey,
	}
	if len(chain) > 0 {
		input.CertificateChain = chain
	}

	result, err := cs.client.ImportCertificate(ctx, input)
	if err != nil {
		return "", errdefs.Registrationf("certificate store rejected import: %w", err)
	}

	return aws.ToString(result.CertificateArn), nil
}

// DescribeCertificate retrieves metadata for a registered certificate.
func (cs *DefaultCertificateStoreOperations) DescribeCertificate(ctx context.Context, arn string) (*CertificateDetails, error) {
	result, err := cs.client.DescribeCertificate(ctx, &acm.DescribeCertificateInput{
		CertificateArn: aws.String(arn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe certificate %s: %w", arn, err)
	}

	cert := result.Certificate
	if cert == nil {
		return nil, fmt.Errorf("certificate %s not found", arn)
	}

	return &CertificateDetails{
		ARN:      aws.ToString(cert.CertificateArn),
		Domain:   aws.ToString(cert.DomainName),
		Status:   string(cert.Status),
		NotAfter: cert.NotAfter,
	}, nil
}
