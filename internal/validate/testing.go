/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package validate

import (
	"context"

	"github.com/authfront/authfront/internal/config"
	"github.com/stretchr/testify/mock"
)

// MockValidator is a mock implementation of Validator for testing
type MockValidator struct {
	mock.Mock
}

// Validate mocks the Validate method
func (m *MockValidator) Validate(ctx context.Context, dctx config.Context) (*Report, error) {
	args := m.Called(ctx, dctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Report), args.Error(1)
}

// MockProber is a mock implementation of Prober for testing
type MockProber struct {
	mock.Mock
}

// Probe mocks the Probe method
func (m *MockProber) Probe(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}
