/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/authfront/authfront/internal/aws"
	"github.com/authfront/authfront/internal/certificate"
	"github.com/authfront/authfront/internal/config"
	"github.com/authfront/authfront/internal/errdefs"
	"github.com/spf13/cobra"
)

var (
	// certificateStore can be injected for testing
	certificateStore aws.CertificateStoreOperations
)

// certificateCmd represents the certificate command
var certificateCmd = &cobra.Command{
	Use:   "certificate",
	Short: "Manage the private TLS certificate",
	Long: `Manage the private TLS certificate used by the load-balancer stack.

Private certificates are registered with AWS Certificate Manager and recorded
in two artifacts: a parameter fragment the deploy command merges into the
load-balancer stack, and a plain-text file holding the certificate ARN.`,
}

// certificateGenerateCmd represents the certificate generate command
var certificateGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and register a self-signed certificate",
	Long: `Generate a self-signed RSA certificate for the configured domain and
register it with AWS Certificate Manager.

The certificate covers the domain and its wildcard subdomains and is valid
for one year. The PEM files are written under certificates/<environment>/
so the same material can be re-registered later with 'certificate import'.

Examples:
  authfront certificate generate --domain auth.example.com
  authfront certificate generate -e prod     # Domain comes from authfront.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		dctx, err := resolveContext(cmd)
		if err != nil {
			return err
		}
		if dctx.Domain == "" {
			return errdefs.Usagef("a domain is required: set --domain or the domain key in %s", config.DefaultFileName)
		}

		bundle, err := certificate.Generate(dctx.Domain, dctx.Project, dctx.Environment)
		if err != nil {
			return err
		}

		dir, _ := cmd.Flags().GetString("output-dir")
		if dir == "" {
			dir = filepath.Join(certificatesDir, dctx.Environment)
		}
		if err := bundle.WriteDir(dir); err != nil {
			return err
		}
		fmt.Printf("Certificate material written to %s\n", dir)

		return registerBundle(ctx, cmd, dctx, bundle)
	},
}

// certificateImportCmd represents the certificate import command
var certificateImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Register existing certificate material",
	Long: `Register existing PEM certificate material with AWS Certificate Manager.

The directory must contain certificate.pem and private-key.pem; chain.pem is
included when present. The private key must match the certificate, a
mismatched pair is rejected before anything reaches AWS.

Examples:
  authfront certificate import                      # Use certificates/<environment>/
  authfront certificate import --dir /path/to/pems  # Use an explicit directory`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		dctx, err := resolveContext(cmd)
		if err != nil {
			return err
		}

		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			dir = filepath.Join(certificatesDir, dctx.Environment)
		}

		bundle, err := certificate.LoadDir(dir)
		if err != nil {
			return err
		}

		return registerBundle(ctx, cmd, dctx, bundle)
	},
}

// getCertificateStore returns the certificate store, creating a default one if none is set
func getCertificateStore(ctx context.Context, cmd *cobra.Command, dctx config.Context) (aws.CertificateStoreOperations, error) {
	if certificateStore != nil {
		return certificateStore, nil
	}

	client, err := getAWSClient(ctx, cmd, dctx)
	if err != nil {
		return nil, err
	}
	return client.CertificateStore(), nil
}

// SetCertificateStore allows injection of a certificate store (for testing)
func SetCertificateStore(store aws.CertificateStoreOperations) {
	certificateStore = store
}

// registerBundle registers the bundle and writes both run artifacts
func registerBundle(ctx context.Context, cmd *cobra.Command, dctx config.Context, bundle *certificate.Bundle) error {
	store, err := getCertificateStore(ctx, cmd, dctx)
	if err != nil {
		return err
	}

	ref, err := certificate.NewManager(store).Register(ctx, bundle)
	if err != nil {
		return err
	}

	if err := certificate.WriteArtifacts(parametersDir, outputDir, dctx.Environment, ref); err != nil {
		return err
	}

	fmt.Printf("Certificate registered: %s\n", ref.ARN)
	return nil
}

func init() {
	certificateGenerateCmd.Flags().String("output-dir", "", "directory to write the PEM files to")
	certificateImportCmd.Flags().String("dir", "", "directory holding the PEM files")
	certificateCmd.AddCommand(certificateGenerateCmd)
	certificateCmd.AddCommand(certificateImportCmd)
	rootCmd.AddCommand(certificateCmd)
}
