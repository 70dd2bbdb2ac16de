/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package status

import (
	"context"

	"github.com/authfront/authfront/internal/config"
	"github.com/stretchr/testify/mock"
)

// MockDescriber is a mock implementation of Describer for testing
type MockDescriber struct {
	mock.Mock
}

// DescribeEnvironment mocks the DescribeEnvironment method
func (m *MockDescriber) DescribeEnvironment(ctx context.Context, dctx config.Context) (*EnvironmentStatus, error) {
	args := m.Called(ctx, dctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*EnvironmentStatus), args.Error(1)
}
