/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"testing"

	"github.com/authfront/authfront/internal/aws"
	"github.com/authfront/authfront/internal/config"
	"github.com/authfront/authfront/internal/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatusCommand_Exists(t *testing.T) {
	statusCmd := findCommand(rootCmd, "status")

	require.NotNil(t, statusCmd, "status command should be registered")
	assert.NotNil(t, statusCmd.Args, "status command should have Args validation set")
}

func TestStatusCommand_DescribesBothStacks(t *testing.T) {
	setupWorkspace(t)

	mockDescriber := &status.MockDescriber{}
	oldDescriber := describer
	SetDescriber(mockDescriber)
	defer SetDescriber(oldDescriber)

	mockDescriber.On("DescribeEnvironment", mock.Anything,
		mock.MatchedBy(func(dctx config.Context) bool { return dctx.Environment == "dev" })).
		Return(&status.EnvironmentStatus{
			Environment: "dev",
			Directory: status.StackStatus{
				Name:     "authfront-dev-cognito",
				Deployed: true,
				Status:   aws.StackStatusCreateComplete,
			},
			Routing: status.StackStatus{Name: "authfront-dev-alb"},
		}, nil)

	rootCmd.SetArgs([]string{"status"})
	err := rootCmd.Execute()

	assert.NoError(t, err)
	mockDescriber.AssertExpectations(t)
}

func TestStatusCommand_DescriberErrorPropagates(t *testing.T) {
	setupWorkspace(t)

	mockDescriber := &status.MockDescriber{}
	oldDescriber := describer
	SetDescriber(mockDescriber)
	defer SetDescriber(oldDescriber)

	mockDescriber.On("DescribeEnvironment", mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	rootCmd.SetArgs([]string{"status"})
	err := rootCmd.Execute()

	require.Error(t, err)
}
