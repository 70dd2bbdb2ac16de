/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package certificate

import (
	"context"

	"github.com/authfront/authfront/internal/aws"
	"github.com/authfront/authfront/internal/model"
)

// Parameter keys the certificate manager contributes to the routing stack.
const (
	ParameterCertificateARN        = "CertificateArn"
	ParameterUsePrivateCertificate = "UsePrivateCertificate"
)

// Reference is the opaque handle of a registered certificate together with
// the private flag carried through to the routing stack parameters.
type Reference struct {
	ARN     string
	Private bool
}

// ParameterFragment returns the parameter fragment this reference contributes
// to the routing stack.
func (r *Reference) ParameterFragment() *model.ParameterSet {
	return model.NewParameterSet(
		model.Parameter{Key: ParameterCertificateARN, Value: r.ARN},
		model.Parameter{Key: ParameterUsePrivateCertificate, Value: "true"},
	)
}

// Manager registers certificate bundles with the certificate store.
type Manager struct {
	store aws.CertificateStoreOperations
}

// NewManager creates a manager backed by the given certificate store.
func NewManager(store aws.CertificateStoreOperations) *Manager {
	return &Manager{store: store}
}

// Register verifies the bundle and imports it into the certificate store.
// A bundle that fails verification never reaches the store; a store rejection
// is surfaced as a registration error without retrying.
func (m *Manager) Register(ctx context.Context, bundle *Bundle) (*Reference, error) {
	if err := bundle.Verify(); err != nil {
		return nil, err
	}

	arn, err := m.store.ImportCertificate(ctx, bundle.Certificate, bundle.PrivateKey, bundle.Chain)
	if err != nil {
		return nil, err
	}

	return &Reference{ARN: arn, Private: true}, nil
}
