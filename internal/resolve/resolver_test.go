/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/authfront/authfront/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestTemplates(t *testing.T, templatesDir string) {
	t.Helper()
	directory := `AWSTemplateFormatVersion: "2010-09-09"
Description: User directory for {{ .Project }} ({{ .Environment }})
`
	routing := `AWSTemplateFormatVersion: "2010-09-09"
Description: Load balancer for {{ .Project | lower }}
`
	require.NoError(t, os.WriteFile(filepath.Join(templatesDir, DirectoryTemplateFileName), []byte(directory), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(templatesDir, RoutingTemplateFileName), []byte(routing), 0o644))
}

func TestResolve_RendersTemplatesWithContextVariables(t *testing.T) {
	templatesDir := t.TempDir()
	parametersDir := t.TempDir()
	writeTestTemplates(t, templatesDir)

	resolver := NewStackResolver(templatesDir, parametersDir)
	dctx := config.Resolve(config.Options{Project: "SSO-Portal", Environment: "staging"}, nil)

	env, err := resolver.Resolve(dctx)

	require.NoError(t, err)
	assert.Contains(t, env.Directory.TemplateBody, "User directory for SSO-Portal (staging)")
	assert.Contains(t, env.Routing.TemplateBody, "Load balancer for sso-portal")
}

func TestResolve_StackNamesAndDefaults(t *testing.T) {
	templatesDir := t.TempDir()
	parametersDir := t.TempDir()
	writeTestTemplates(t, templatesDir)

	resolver := NewStackResolver(templatesDir, parametersDir)
	dctx := config.Resolve(config.Options{Environment: "dev"}, nil)

	env, err := resolver.Resolve(dctx)

	require.NoError(t, err)
	assert.Equal(t, "authfront-dev-cognito", env.Directory.Name)
	assert.Equal(t, "authfront-dev-alb", env.Routing.Name)

	project, _ := env.Directory.Parameters.Get("ProjectName")
	assert.Equal(t, "authfront", project)
	assert.Equal(t, "authfront", env.Directory.Tags["ManagedBy"])
	assert.Equal(t, []string{"CAPABILITY_IAM"}, env.Directory.Capabilities)
}

func TestResolve_AbsentBaseParameterFileYieldsEmptySet(t *testing.T) {
	templatesDir := t.TempDir()
	parametersDir := t.TempDir()
	writeTestTemplates(t, templatesDir)

	resolver := NewStackResolver(templatesDir, parametersDir)
	env, err := resolver.Resolve(config.Resolve(config.Options{}, nil))

	require.NoError(t, err)
	// Only the resolver-contributed defaults are present.
	assert.Equal(t, 2, env.Directory.Parameters.Len())
}

func TestResolve_BaseParameterFileIsMergedIn(t *testing.T) {
	templatesDir := t.TempDir()
	parametersDir := t.TempDir()
	writeTestTemplates(t, templatesDir)

	content := `[{"ParameterKey": "CookieDuration", "ParameterValue": "3600"}]`
	require.NoError(t, os.WriteFile(filepath.Join(parametersDir, "dev.json"), []byte(content), 0o644))

	resolver := NewStackResolver(templatesDir, parametersDir)
	env, err := resolver.Resolve(config.Resolve(config.Options{Environment: "dev"}, nil))

	require.NoError(t, err)
	value, ok := env.Routing.Parameters.Get("CookieDuration")
	assert.True(t, ok)
	assert.Equal(t, "3600", value)
}

func TestResolve_MalformedBaseParameterFileIsAnError(t *testing.T) {
	templatesDir := t.TempDir()
	parametersDir := t.TempDir()
	writeTestTemplates(t, templatesDir)

	require.NoError(t, os.WriteFile(filepath.Join(parametersDir, "dev.json"), []byte("{bad"), 0o644))

	resolver := NewStackResolver(templatesDir, parametersDir)
	_, err := resolver.Resolve(config.Resolve(config.Options{Environment: "dev"}, nil))

	assert.Error(t, err)
}

func TestResolve_MissingTemplateIsAnError(t *testing.T) {
	resolver := NewStackResolver(t.TempDir(), t.TempDir())

	_, err := resolver.Resolve(config.Resolve(config.Options{}, nil))

	assert.Error(t, err)
}

func TestFileTemplateReader_FileURI(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "template.yaml")
	require.NoError(t, os.WriteFile(path, []byte("body"), 0o644))

	reader := &FileTemplateReader{}

	content, err := reader.ReadTemplate("file://" + path)
	require.NoError(t, err)
	assert.Equal(t, "body", content)

	content, err = reader.ReadTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, "body", content)
}

func TestTemplateProcessor_UndefinedVariableFails(t *testing.T) {
	processor := NewTemplateProcessor()

	_, err := processor.Process("{{ .Missing }}", map[string]interface{}{})

	assert.Error(t, err)
}
