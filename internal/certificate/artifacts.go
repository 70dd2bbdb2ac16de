/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package certificate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/authfront/authfront/internal/errdefs"
	"github.com/authfront/authfront/internal/model"
)

// ArtifactPath returns the per-environment parameter fragment file written
// after a successful registration. Its presence is how a later deploy run in
// private mode finds the handle.
func ArtifactPath(parametersDir, environment string) string {
	return filepath.Join(parametersDir, environment+"-certificate.json")
}

// HandlePath returns the plain-text file holding the raw handle value for
// later inspection.
func HandlePath(outputDir, environment string) string {
	return filepath.Join(outputDir, "certificate-arn-"+environment+".txt")
}

// WriteArtifacts persists the parameter fragment and the raw handle file for
// an environment.
func WriteArtifacts(parametersDir, outputDir, environment string, ref *Reference) error {
	if err := os.MkdirAll(parametersDir, 0o755); err != nil {
		return fmt.Errorf("failed to create parameters directory: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := model.WriteFile(ArtifactPath(parametersDir, environment), ref.ParameterFragment()); err != nil {
		return err
	}

	handle := HandlePath(outputDir, environment)
	if err := os.WriteFile(handle, []byte(ref.ARN+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write handle file %s: %w", handle, err)
	}
	return nil
}

// LoadReference reads a previously written parameter fragment back into a
// Reference. A missing or malformed artifact is a precondition error: the
// certificate command must have completed before a private-mode deploy.
func LoadReference(parametersDir, environment string) (*Reference, error) {
	path := ArtifactPath(parametersDir, environment)

	ps, err := model.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errdefs.Preconditionf("certificate artifact %s not found: run 'authfront certificate' for this environment first", path)
		}
		return nil, errdefs.Preconditionf("certificate artifact %s is unusable: %w", path, err)
	}

	arn, ok := ps.Get(ParameterCertificateARN)
	if !ok || arn == "" {
		return nil, errdefs.Preconditionf("certificate artifact %s has no %s entry", path, ParameterCertificateARN)
	}

	private, _ := ps.Get(ParameterUsePrivateCertificate)
	return &Reference{ARN: arn, Private: strings.EqualFold(private, "true")}, nil
}
