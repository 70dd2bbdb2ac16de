/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/authfront/authfront/internal/config"
	"github.com/authfront/authfront/internal/status"
	"github.com/spf13/cobra"
)

var (
	// describer can be injected for testing
	describer status.Describer
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display the live state of the deployed stacks",
	Long: `Display the live state of both stacks of an environment.

This command shows the stack status and metadata, the current parameters,
the exported outputs, and the tags of the user-directory stack and the
load-balancer stack. A stack that is not deployed yet is reported as such.

Examples:
  authfront status           # Show the dev environment
  authfront status -e prod   # Show production`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		dctx, err := resolveContext(cmd)
		if err != nil {
			return err
		}

		d, err := getDescriber(ctx, cmd, dctx)
		if err != nil {
			return err
		}

		env, err := d.DescribeEnvironment(ctx, dctx)
		if err != nil {
			return err
		}

		fmt.Print(status.FormatEnvironmentStatus(env))
		return nil
	},
}

// getDescriber returns the describer instance, creating a default one if none is set
func getDescriber(ctx context.Context, cmd *cobra.Command, dctx config.Context) (status.Describer, error) {
	if describer != nil {
		return describer, nil
	}

	client, err := getAWSClient(ctx, cmd, dctx)
	if err != nil {
		return nil, err
	}
	return status.NewStackDescriber(client.CloudFormation()), nil
}

// SetDescriber allows injection of a describer (for testing)
func SetDescriber(d status.Describer) {
	describer = d
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
