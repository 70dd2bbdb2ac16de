/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"
	"os"

	"github.com/authfront/authfront/internal/config"
	"github.com/authfront/authfront/internal/version"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "authfront",
	Short: "A command-line tool for provisioning a Cognito authentication front-end",
	Long: `Authfront provisions the infrastructure of an authentication front-end:

• A Cognito user pool, app client, and hosted domain
• An application load balancer that authenticates requests against the pool
• TLS certificate management, either provider-managed or privately registered
• Idempotent deploys driven by CloudFormation, safe to re-run after a failure

Use authfront to deploy, validate, and inspect the authentication environment
with consistent, repeatable configurations.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version.Short())); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultFileName, "config file")
	rootCmd.PersistentFlags().String("project", "", "project name (overrides config)")
	rootCmd.PersistentFlags().StringP("environment", "e", "", "target environment (overrides config)")
	rootCmd.PersistentFlags().String("region", "", "AWS region (overrides config)")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "AWS profile (overrides environment)")
	rootCmd.PersistentFlags().String("stack-prefix", "", "stack name prefix (defaults to <project>-<environment>)")
	rootCmd.PersistentFlags().String("domain", "", "fully qualified domain name (overrides config)")
}
