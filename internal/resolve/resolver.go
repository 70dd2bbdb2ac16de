/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package resolve turns a deployment context into deploy-ready stack inputs:
// rendered template bodies plus the base parameter set for the environment.
package resolve

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/authfront/authfront/internal/config"
	"github.com/authfront/authfront/internal/model"
)

// Template file names under the templates directory.
const (
	DirectoryTemplateFileName = "cognito.yaml"
	RoutingTemplateFileName   = "alb.yaml"
)

// FileSystemResolver defines the interface for reading templates from URIs.
type FileSystemResolver interface {
	ReadTemplate(templateURI string) (string, error)
}

// FileTemplateReader reads templates from plain paths or file:// URIs.
type FileTemplateReader struct{}

// ReadTemplate reads template content from a path or file:// URI.
func (ftr *FileTemplateReader) ReadTemplate(templateURI string) (string, error) {
	path := templateURI
	if len(path) > 7 && path[:7] == "file://" {
		path = path[7:]
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template file %s: %w", path, err)
	}
	return string(content), nil
}

// ResolvedStack is one stack ready for validation and deployment.
type ResolvedStack struct {
	Name         string
	TemplateBody string
	Parameters   *model.ParameterSet
	Tags         map[string]string
	Capabilities []string
}

// ResolvedEnvironment holds both stacks of an environment in deployment order.
type ResolvedEnvironment struct {
	Directory ResolvedStack
	Routing   ResolvedStack
}

// StackResolver resolves the two stacks of an environment from the templates
// and parameters directories.
type StackResolver struct {
	templatesDir  string
	parametersDir string
	reader        FileSystemResolver
	processor     TemplateProcessor
}

// NewStackResolver creates a resolver over the given directories.
func NewStackResolver(templatesDir, parametersDir string) *StackResolver {
	return &StackResolver{
		templatesDir:  templatesDir,
		parametersDir: parametersDir,
		reader:        &FileTemplateReader{},
		processor:     NewTemplateProcessor(),
	}
}

// SetFileSystemResolver allows injecting a custom file system resolver (for testing).
func (r *StackResolver) SetFileSystemResolver(reader FileSystemResolver) {
	r.reader = reader
}

// DirectoryTemplatePath returns the path of the user-directory stack template.
func (r *StackResolver) DirectoryTemplatePath() string {
	return filepath.Join(r.templatesDir, DirectoryTemplateFileName)
}

// RoutingTemplatePath returns the path of the load-balancer stack template.
func (r *StackResolver) RoutingTemplatePath() string {
	return filepath.Join(r.templatesDir, RoutingTemplateFileName)
}

// BaseParametersPath returns the per-environment base parameter file path.
func (r *StackResolver) BaseParametersPath(environment string) string {
	return filepath.Join(r.parametersDir, environment+".json")
}

// ParametersDir returns the directory holding parameter artifacts.
func (r *StackResolver) ParametersDir() string {
	return r.parametersDir
}

// Resolve renders both stack templates for the context and loads the base
// parameter set. An absent base parameter file yields an empty set; a
// malformed one is an error.
func (r *StackResolver) Resolve(dctx config.Context) (*ResolvedEnvironment, error) {
	variables := map[string]interface{}{
		"Project":     dctx.Project,
		"Environment": dctx.Environment,
		"Domain":      dctx.Domain,
	}

	directoryBody, err := r.renderTemplate(r.DirectoryTemplatePath(), variables)
	if err != nil {
		return nil, err
	}
	routingBody, err := r.renderTemplate(r.RoutingTemplatePath(), variables)
	if err != nil {
		return nil, err
	}

	baseParams, err := r.loadBaseParameters(dctx.Environment)
	if err != nil {
		return nil, err
	}

	tags := map[string]string{
		"Project":     dctx.Project,
		"Environment": dctx.Environment,
		"ManagedBy":   "authfront",
	}
	for k, v := range dctx.Tags {
		tags[k] = v
	}

	directoryParams := model.NewParameterSet(
		model.Parameter{Key: "ProjectName", Value: dctx.Project},
		model.Parameter{Key: "Environment", Value: dctx.Environment},
	)
	directoryParams.Merge(baseParams)

	routingParams := model.NewParameterSet(
		model.Parameter{Key: "ProjectName", Value: dctx.Project},
		model.Parameter{Key: "Environment", Value: dctx.Environment},
	)
	routingParams.Merge(baseParams)

	return &ResolvedEnvironment{
		Directory: ResolvedStack{
			Name:         dctx.DirectoryStackName(),
			TemplateBody: directoryBody,
			Parameters:   directoryParams,
			Tags:         tags,
			Capabilities: []string{"CAPABILITY_IAM"},
		},
		Routing: ResolvedStack{
			Name:         dctx.RoutingStackName(),
			TemplateBody: routingBody,
			Parameters:   routingParams,
			Tags:         tags,
			Capabilities: []string{"CAPABILITY_IAM"},
		},
	}, nil
}

func (r *StackResolver) renderTemplate(path string, variables map[string]interface{}) (string, error) {
	content, err := r.reader.ReadTemplate(path)
	if err != nil {
		return "", err
	}

	rendered, err := r.processor.Process(content, variables)
	if err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", path, err)
	}
	return rendered, nil
}

func (r *StackResolver) loadBaseParameters(environment string) (*model.ParameterSet, error) {
	ps, err := model.ReadFile(r.BaseParametersPath(environment))
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewParameterSet(), nil
		}
		return nil, err
	}
	return ps, nil
}
