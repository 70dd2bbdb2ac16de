/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/authfront/authfront/internal/aws"
	"github.com/authfront/authfront/internal/config"
	"github.com/authfront/authfront/internal/errdefs"
	"github.com/authfront/authfront/internal/orchestrate"
	"github.com/authfront/authfront/internal/prompt"
	"github.com/authfront/authfront/internal/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// setupWorkspace switches to a temporary directory holding both templates
func setupWorkspace(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())

	require.NoError(t, os.MkdirAll(templatesDir, 0o755))
	require.NoError(t, os.MkdirAll(parametersDir, 0o755))

	directory := "Description: user directory for {{ .Project }}\n"
	routing := "Description: routing for {{ .Project }} {{ .Environment }}\n"
	require.NoError(t, os.WriteFile(filepath.Join(templatesDir, resolve.DirectoryTemplateFileName), []byte(directory), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(templatesDir, resolve.RoutingTemplateFileName), []byte(routing), 0o644))
}

func TestDeployCommand_Exists(t *testing.T) {
	deployCmd := findCommand(rootCmd, "deploy")

	require.NotNil(t, deployCmd, "deploy command should be registered")
	assert.NotNil(t, deployCmd.Flags().Lookup("use-private-certificate"))
	assert.NotNil(t, deployCmd.Flags().Lookup("yes"))
}

func TestDeployCommand_InvokesOrchestrator(t *testing.T) {
	setupWorkspace(t)

	mockOrchestrator := &orchestrate.MockOrchestrator{}
	oldOrchestrator := orchestrator
	SetOrchestrator(mockOrchestrator)
	defer SetOrchestrator(oldOrchestrator)

	mockOrchestrator.On("Deploy", mock.Anything,
		mock.MatchedBy(func(dctx config.Context) bool {
			return dctx.Environment == "dev" && dctx.CertificateMode == config.ModeManaged
		}),
		mock.MatchedBy(func(env *resolve.ResolvedEnvironment) bool {
			return env.Directory.Name == "authfront-dev-cognito" && env.Routing.Name == "authfront-dev-alb"
		}),
		mock.Anything).
		Return(&orchestrate.Result{
			Directory: aws.StackResult{StackName: "authfront-dev-cognito", Outcome: aws.OutcomeCreatedOrUpdated},
			Routing:   aws.StackResult{StackName: "authfront-dev-alb", Outcome: aws.OutcomeCreatedOrUpdated},
		}, nil)

	rootCmd.SetArgs([]string{"deploy", "--yes"})
	err := rootCmd.Execute()

	assert.NoError(t, err)
	mockOrchestrator.AssertExpectations(t)
}

func TestDeployCommand_PrivateModeRequiresArtifact(t *testing.T) {
	setupWorkspace(t)

	mockOrchestrator := &orchestrate.MockOrchestrator{}
	oldOrchestrator := orchestrator
	SetOrchestrator(mockOrchestrator)
	defer SetOrchestrator(oldOrchestrator)

	rootCmd.SetArgs([]string{"deploy", "--yes", "--use-private-certificate"})
	err := rootCmd.Execute()
	defer func() {
		_ = findCommand(rootCmd, "deploy").Flags().Set("use-private-certificate", "false")
	}()

	require.Error(t, err)
	assert.True(t, errdefs.IsPrecondition(err))
	// Nothing reaches the orchestrator without the registered certificate.
	mockOrchestrator.AssertNotCalled(t, "Deploy", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeployCommand_RejectionCancelsDeployment(t *testing.T) {
	setupWorkspace(t)

	mockOrchestrator := &orchestrate.MockOrchestrator{}
	oldOrchestrator := orchestrator
	SetOrchestrator(mockOrchestrator)
	defer SetOrchestrator(oldOrchestrator)

	mockPrompter := &prompt.MockPrompter{}
	mockPrompter.On("ConfirmDeployment", "dev", []string{"authfront-dev-cognito", "authfront-dev-alb"}).
		Return(false, nil).Once()
	oldPrompter := prompt.GetDefaultPrompter()
	prompt.SetPrompter(mockPrompter)
	defer prompt.SetPrompter(oldPrompter)

	deployCmd := findCommand(rootCmd, "deploy")
	require.NoError(t, deployCmd.Flags().Set("yes", "false"))

	rootCmd.SetArgs([]string{"deploy"})
	err := rootCmd.Execute()

	assert.NoError(t, err)
	mockPrompter.AssertExpectations(t)
	mockOrchestrator.AssertNotCalled(t, "Deploy", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeployCommand_OrchestratorErrorPropagates(t *testing.T) {
	setupWorkspace(t)

	mockOrchestrator := &orchestrate.MockOrchestrator{}
	oldOrchestrator := orchestrator
	SetOrchestrator(mockOrchestrator)
	defer SetOrchestrator(oldOrchestrator)

	mockOrchestrator.On("Deploy", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errdefs.Deploymentf("stack authfront-dev-cognito reached status ROLLBACK_COMPLETE"))

	rootCmd.SetArgs([]string{"deploy", "--yes"})
	err := rootCmd.Execute()

	require.Error(t, err)
	assert.True(t, errdefs.IsDeployment(err))
}
