/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package config resolves the deployment context for a run: built-in
// defaults, then the optional authfront.yaml file, then command-line flags,
// each layer overriding the previous one. Resolution is pure and total -
// every field has a default, so it cannot fail.
package config

import "fmt"

// CertificateMode selects where the routing stack's TLS certificate comes from.
type CertificateMode string

const (
	// ModeManaged uses a certificate managed entirely by the cloud provider.
	ModeManaged CertificateMode = "managed"

	// ModePrivate uses certificate material registered by the certificate command.
	ModePrivate CertificateMode = "private"
)

// Built-in defaults, the bottom layer of resolution.
const (
	DefaultProject     = "authfront"
	DefaultEnvironment = "dev"
	DefaultRegion      = "us-east-1"
)

// Context is the fully resolved deployment context for one invocation.
// It is constructed once per run and never mutated afterwards.
type Context struct {
	Project         string
	Environment     string
	Region          string
	StackPrefix     string
	CertificateMode CertificateMode
	Domain          string
	Tags            map[string]string
}

// DirectoryStackName returns the name of the user-directory stack.
func (c Context) DirectoryStackName() string {
	return c.StackPrefix + "-cognito"
}

// RoutingStackName returns the name of the load-balancer stack.
func (c Context) RoutingStackName() string {
	return c.StackPrefix + "-alb"
}

// Options carries the flag values supplied on the command line. Zero values
// mean "not set" and fall through to the file or built-in defaults.
type Options struct {
	Project            string
	Environment        string
	Region             string
	StackPrefix        string
	Domain             string
	PrivateCertificate bool
}

// Resolve merges built-in defaults, file defaults, and flags into a Context.
func Resolve(opts Options, file *File) Context {
	c := Context{
		Project:         DefaultProject,
		Environment:     DefaultEnvironment,
		Region:          DefaultRegion,
		CertificateMode: ModeManaged,
		Tags:            map[string]string{},
	}

	environment := opts.Environment
	if environment == "" && file != nil && file.Environment != "" {
		environment = file.Environment
	}
	if environment != "" {
		c.Environment = environment
	}

	if file != nil {
		defaults := file.Defaults(c.Environment)
		if defaults.Project != "" {
			c.Project = defaults.Project
		}
		if defaults.Region != "" {
			c.Region = defaults.Region
		}
		if defaults.Domain != "" {
			c.Domain = defaults.Domain
		}
		for k, v := range defaults.Tags {
			c.Tags[k] = v
		}
	}

	if opts.Project != "" {
		c.Project = opts.Project
	}
	if opts.Region != "" {
		c.Region = opts.Region
	}
	if opts.Domain != "" {
		c.Domain = opts.Domain
	}
	if opts.PrivateCertificate {
		c.CertificateMode = ModePrivate
	}

	c.StackPrefix = opts.StackPrefix
	if c.StackPrefix == "" {
		c.StackPrefix = fmt.Sprintf("%s-%s", c.Project, c.Environment)
	}

	return c
}
