/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/authfront/authfront/internal/certificate"
	"github.com/authfront/authfront/internal/config"
	"github.com/authfront/authfront/internal/orchestrate"
	"github.com/authfront/authfront/internal/prompt"
	"github.com/spf13/cobra"
)

var (
	// orchestrator can be injected for testing
	orchestrator orchestrate.Orchestrator
)

// deployCmd represents the deploy command
var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy the authentication front-end stacks",
	Long: `Deploy the user-directory stack and the load-balancer stack for one
environment, in that order.

Both templates are validated before anything is provisioned. The load-balancer
stack receives the default VPC and its subnets discovered at deploy time, and
either a provider-managed certificate or the privately registered one.

Re-running a deployment is safe: stacks that already match the templates are
reported as unchanged, and a previously failed run is recovered by running
the deployment again.

Examples:
  authfront deploy                              # Deploy the dev environment
  authfront deploy -e prod                      # Deploy production
  authfront deploy --use-private-certificate    # Terminate TLS with the registered certificate
  authfront deploy --yes                        # Skip the confirmation prompt`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		dctx, err := resolveContext(cmd)
		if err != nil {
			return err
		}

		// In private mode the certificate must have been registered
		// before any stack is touched.
		var ref *certificate.Reference
		if dctx.CertificateMode == config.ModePrivate {
			ref, err = certificate.LoadReference(parametersDir, dctx.Environment)
			if err != nil {
				return err
			}
		}

		env, err := createResolver().Resolve(dctx)
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			confirmed, err := prompt.ConfirmDeployment(dctx.Environment, []string{env.Directory.Name, env.Routing.Name})
			if err != nil {
				return fmt.Errorf("failed to confirm deployment: %w", err)
			}
			if !confirmed {
				fmt.Println("Deployment aborted")
				return nil
			}
		}

		orch, err := getOrchestrator(ctx, cmd, dctx)
		if err != nil {
			return err
		}

		result, err := orch.Deploy(ctx, dctx, env, ref)
		if err != nil {
			return err
		}

		printResult(result)
		return nil
	},
}

// getOrchestrator returns the orchestrator instance, creating a default one if none is set
func getOrchestrator(ctx context.Context, cmd *cobra.Command, dctx config.Context) (orchestrate.Orchestrator, error) {
	if orchestrator != nil {
		return orchestrator, nil
	}

	client, err := getAWSClient(ctx, cmd, dctx)
	if err != nil {
		return nil, err
	}
	return orchestrate.NewStackOrchestrator(client.CloudFormation(), client.Network()), nil
}

// SetOrchestrator allows injection of an orchestrator (for testing)
func SetOrchestrator(o orchestrate.Orchestrator) {
	orchestrator = o
}

func printResult(result *orchestrate.Result) {
	fmt.Printf("Stack %s: %s\n", result.Directory.StackName, result.Directory.Outcome)
	fmt.Printf("Stack %s: %s\n", result.Routing.StackName, result.Routing.Outcome)

	if dns, ok := result.Routing.Outputs[orchestrate.OutputLoadBalancerDNS]; ok {
		fmt.Printf("\nEndpoint: https://%s/\n", dns)
	}
	if pool, ok := result.Directory.Outputs[orchestrate.OutputUserPoolID]; ok {
		fmt.Printf("User pool: %s\n", pool)
	}

	for _, warning := range result.Warnings {
		fmt.Printf("Warning: %s\n", warning)
	}
}

func init() {
	deployCmd.Flags().Bool("use-private-certificate", false, "terminate TLS with the registered private certificate")
	deployCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(deployCmd)
}
