/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package orchestrate

import (
	"context"

	"github.com/authfront/authfront/internal/certificate"
	"github.com/authfront/authfront/internal/config"
	"github.com/authfront/authfront/internal/resolve"
	"github.com/stretchr/testify/mock"
)

// MockOrchestrator implements Orchestrator for testing
type MockOrchestrator struct {
	mock.Mock
}

func (m *MockOrchestrator) Deploy(ctx context.Context, dctx config.Context, env *resolve.ResolvedEnvironment, cert *certificate.Reference) (*Result, error) {
	args := m.Called(ctx, dctx, env, cert)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Result), args.Error(1)
}
