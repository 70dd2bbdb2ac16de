/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"

	"github.com/authfront/authfront/internal/aws"
	"github.com/authfront/authfront/internal/config"
	"github.com/authfront/authfront/internal/resolve"
	"github.com/spf13/cobra"
)

// Workspace directories, relative to the working directory.
const (
	templatesDir    = "templates"
	parametersDir   = "parameters"
	outputDir       = "out"
	certificatesDir = "certificates"
)

// resolveContext builds the deployment context from the config file and the
// flags of the current command.
func resolveContext(cmd *cobra.Command) (config.Context, error) {
	configFile, _ := cmd.Flags().GetString("config")
	file, err := config.Load(configFile)
	if err != nil {
		return config.Context{}, err
	}

	opts := config.Options{}
	opts.Project, _ = cmd.Flags().GetString("project")
	opts.Environment, _ = cmd.Flags().GetString("environment")
	opts.Region, _ = cmd.Flags().GetString("region")
	opts.StackPrefix, _ = cmd.Flags().GetString("stack-prefix")
	opts.Domain, _ = cmd.Flags().GetString("domain")
	if cmd.Flags().Lookup("use-private-certificate") != nil {
		opts.PrivateCertificate, _ = cmd.Flags().GetBool("use-private-certificate")
	}

	return config.Resolve(opts, file), nil
}

// createResolver creates a stack resolver rooted at the workspace directories
func createResolver() *resolve.StackResolver {
	return resolve.NewStackResolver(templatesDir, parametersDir)
}

// getAWSClient creates an AWS client for the resolved context
func getAWSClient(ctx context.Context, cmd *cobra.Command, dctx config.Context) (*aws.Client, error) {
	profile, _ := cmd.Flags().GetString("profile")
	return aws.NewClient(ctx, aws.Config{Region: dctx.Region, Profile: profile})
}
