/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package status retrieves and formats the live state of a deployed
// environment without modifying it.
package status

import (
	"context"
	"fmt"
	"time"

	"github.com/authfront/authfront/internal/aws"
	"github.com/authfront/authfront/internal/config"
)

// StackStatus contains the displayed state of one stack. Deployed is false
// when the stack does not exist, in which case the remaining fields are zero.
type StackStatus struct {
	Name         string
	Deployed     bool
	Status       aws.StackStatus
	StatusReason string
	CreatedTime  *time.Time
	UpdatedTime  *time.Time
	Parameters   map[string]string
	Outputs      map[string]string
	Tags         map[string]string
}

// EnvironmentStatus is the state of both stacks of one environment.
type EnvironmentStatus struct {
	Environment string
	Directory   StackStatus
	Routing     StackStatus
}

// Describer retrieves environment status information
type Describer interface {
	DescribeEnvironment(ctx context.Context, dctx config.Context) (*EnvironmentStatus, error)
}

// StackDescriber implements Describer using CloudFormation operations
type StackDescriber struct {
	cfn aws.CloudFormationOperations
}

// NewStackDescriber creates a new describer
func NewStackDescriber(cfn aws.CloudFormationOperations) *StackDescriber {
	return &StackDescriber{cfn: cfn}
}

// DescribeEnvironment retrieves the live state of both stacks. A stack that
// is not deployed yet is reported, not treated as an error.
func (d *StackDescriber) DescribeEnvironment(ctx context.Context, dctx config.Context) (*EnvironmentStatus, error) {
	directory, err := d.describeStack(ctx, dctx.DirectoryStackName())
	if err != nil {
		return nil, err
	}
	routing, err := d.describeStack(ctx, dctx.RoutingStackName())
	if err != nil {
		return nil, err
	}

	return &EnvironmentStatus{
		Environment: dctx.Environment,
		Directory:   *directory,
		Routing:     *routing,
	}, nil
}

func (d *StackDescriber) describeStack(ctx context.Context, stackName string) (*StackStatus, error) {
	exists, err := d.cfn.StackExists(ctx, stackName)
	if err != nil {
		return nil, fmt.Errorf("failed to check stack %s: %w", stackName, err)
	}
	if !exists {
		return &StackStatus{Name: stackName}, nil
	}

	stack, err := d.cfn.DescribeStack(ctx, stackName)
	if err != nil {
		return nil, fmt.Errorf("failed to describe stack %s: %w", stackName, err)
	}

	return &StackStatus{
		Name:         stack.Name,
		Deployed:     true,
		Status:       stack.Status,
		StatusReason: stack.StatusReason,
		CreatedTime:  stack.CreatedTime,
		UpdatedTime:  stack.UpdatedTime,
		Parameters:   stack.Parameters,
		Outputs:      stack.Outputs,
		Tags:         stack.Tags,
	}, nil
}
