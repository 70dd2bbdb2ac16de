/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/authfront/authfront/internal/config"
	"github.com/authfront/authfront/internal/errdefs"
	"github.com/authfront/authfront/internal/validate"
	"github.com/spf13/cobra"
)

var (
	// validator can be injected for testing
	validator validate.Validator
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the workspace and the deployed environment",
	Long: `Validate the environment without changing anything.

The command checks the AWS credentials, the presence and well-formedness of
the workspace files, the templates against the CloudFormation API, the live
status of both stacks, and the reachability of the deployed resources.

Each check yields a finding: PASS, WARN, or FAIL. Stacks that are not
deployed yet are warnings, not failures; the run fails only when at least one
check fails. A plain-text report is written under out/ for every run.

Examples:
  authfront validate           # Validate the dev environment
  authfront validate -e prod   # Validate production`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		dctx, err := resolveContext(cmd)
		if err != nil {
			return err
		}

		v, err := getValidator(ctx, cmd, dctx)
		if err != nil {
			return err
		}

		report, err := v.Validate(ctx, dctx)
		if err != nil {
			return err
		}

		fmt.Print(validate.Render(report, validate.NewStyles(true)))

		path, err := validate.WriteReport(outputDir, report)
		if err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", path)

		if report.Verdict() == validate.StatusFail {
			return errdefs.Validationf("environment %s failed validation", dctx.Environment)
		}
		return nil
	},
}

// getValidator returns the validator instance, creating a default one if none is set
func getValidator(ctx context.Context, cmd *cobra.Command, dctx config.Context) (validate.Validator, error) {
	if validator != nil {
		return validator, nil
	}

	client, err := getAWSClient(ctx, cmd, dctx)
	if err != nil {
		return nil, err
	}
	return validate.NewEnvironmentValidator(
		client.Identity(),
		client.CloudFormation(),
		client.Resources(),
		createResolver(),
		validate.NewHTTPProber(),
	), nil
}

// SetValidator allows injection of a validator (for testing)
func SetValidator(v validate.Validator) {
	validator = v
}

func init() {
	validateCmd.Flags().Bool("use-private-certificate", false, "validate the private-certificate artifacts as well")
	rootCmd.AddCommand(validateCmd)
}
