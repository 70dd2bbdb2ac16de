/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/authfront/authfront/internal/errdefs"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/aws/smithy-go"
)

// StackStatus represents the status of a CloudFormation stack.
type StackStatus string

const (
	StackStatusCreateInProgress         StackStatus = "CREATE_IN_PROGRESS"
	StackStatusCreateComplete           StackStatus = "CREATE_COMPLETE"
	StackStatusCreateFailed             StackStatus = "CREATE_FAILED"
	StackStatusUpdateInProgress         StackStatus = "UPDATE_IN_PROGRESS"
	StackStatusUpdateComplete           StackStatus = "UPDATE_COMPLETE"
	StackStatusUpdateFailed             StackStatus = "UPDATE_FAILED"
	StackStatusUpdateRollbackInProgress StackStatus = "UPDATE_ROLLBACK_IN_PROGRESS"
	StackStatusUpdateRollbackComplete   StackStatus = "UPDATE_ROLLBACK_COMPLETE"
	StackStatusUpdateRollbackFailed     StackStatus = "UPDATE_ROLLBACK_FAILED"
	StackStatusRollbackInProgress       StackStatus = "ROLLBACK_IN_PROGRESS"
	StackStatusRollbackComplete         StackStatus = "ROLLBACK_COMPLETE"
	StackStatusRollbackFailed           StackStatus = "ROLLBACK_FAILED"
	StackStatusDeleteInProgress         StackStatus = "DELETE_IN_PROGRESS"
	StackStatusDeleteComplete           StackStatus = "DELETE_COMPLETE"
	StackStatusDeleteFailed             StackStatus = "DELETE_FAILED"
	StackStatusReviewInProgress         StackStatus = "REVIEW_IN_PROGRESS"
)

// IsTerminal reports whether the status requires no further polling.
func (s StackStatus) IsTerminal() bool {
	return !strings.HasSuffix(string(s), "_IN_PROGRESS")
}

// IsHealthy reports whether the status is a successful terminal state.
func (s StackStatus) IsHealthy() bool {
	return s == StackStatusCreateComplete || s == StackStatusUpdateComplete
}

// IsFailed reports whether the status is a failed or rolled-back terminal state.
func (s StackStatus) IsFailed() bool {
	return s.IsTerminal() && !s.IsHealthy() && s != StackStatusDeleteComplete
}

// Stack represents a CloudFormation stack with the information this tool needs.
type Stack struct {
	Name         string
	Status       StackStatus
	StatusReason string
	CreatedTime  *time.Time
	UpdatedTime  *time.Time
	Parameters   map[string]string
	Outputs      map[string]string
	Tags         map[string]string
}

// Parameter is a stack parameter in provisioning-service form.
type Parameter struct {
	Key   string
	Value string
}

// Outcome is the terminal result of a deploy call.
type Outcome string

const (
	// OutcomeCreatedOrUpdated - the stack was created or updated successfully.
	OutcomeCreatedOrUpdated Outcome = "CreatedOrUpdated"

	// OutcomeNoChanges - the stack already matched the request; treated as success.
	OutcomeNoChanges Outcome = "NoChangesNeeded"

	// OutcomeFailed - the stack reached a failed or rolled-back terminal state.
	OutcomeFailed Outcome = "Failed"
)

// StackResult is the terminal status and exported outputs of one deploy call.
type StackResult struct {
	StackName string
	Outcome   Outcome
	Outputs   map[string]string
}

// DeployStackInput contains parameters for deploying a stack.
type DeployStackInput struct {
	StackName    string
	TemplateBody string
	Parameters   []Parameter
	Tags         map[string]string
	Capabilities []string
}

// DefaultCloudFormationOperations provides CloudFormation-specific operations.
type DefaultCloudFormationOperations struct {
	client       CloudFormationAPI
	pollInterval time.Duration
	waitTimeout  time.Duration
}

// NewCloudFormationOperations creates a new CloudFormation operations wrapper.
func NewCloudFormationOperations(client CloudFormationAPI) *DefaultCloudFormationOperations {
	return &DefaultCloudFormationOperations{
		client:       client,
		pollInterval: 5 * time.Second,
		waitTimeout:  30 * time.Minute,
	}
}

// ValidateTemplate submits a template to the dry-run validation API.
func (cf *DefaultCloudFormationOperations) ValidateTemplate(ctx context.Context, templateBody string) error {
	_, err := cf.client.ValidateTemplate(ctx, &cloudformation.ValidateTemplateInput{
		TemplateBody: aws.String(templateBody),
	})
	if err != nil {
		return fmt.Errorf("template validation failed: %w", err)
	}
	return nil
}

// DeployStack creates or updates a stack and waits for it to reach a terminal
// status. Re-running against an already up-to-date stack yields
// OutcomeNoChanges, not an error.
func (cf *DefaultCloudFormationOperations) DeployStack(ctx context.Context, input DeployStackInput) (*StackResult, error) {
	exists, err := cf.StackExists(ctx, input.StackName)
	if err != nil {
		return nil, err
	}

	// Grace for clock drift between this host and the service when comparing
	// stack modification times below.
	start := time.Now().Add(-30 * time.Second)

	if exists {
		_, err = cf.client.UpdateStack(ctx, &cloudformation.UpdateStackInput{
			StackName:    aws.String(input.StackName),
			TemplateBody: aws.String(input.TemplateBody),
			Parameters:   toSDKParameters(input.Parameters),
			Tags:         toSDKTags(input.Tags),
			Capabilities: toSDKCapabilities(input.Capabilities),
		})
		if err != nil {
			if isNoUpdateError(err) {
				stack, derr := cf.DescribeStack(ctx, input.StackName)
				if derr != nil {
					return nil, derr
				}
				return &StackResult{
					StackName: input.StackName,
					Outcome:   OutcomeNoChanges,
					Outputs:   stack.Outputs,
				}, nil
			}
			return nil, errdefs.Deploymentf("failed to update stack %s: %w", input.StackName, err)
		}
	} else {
		_, err = cf.client.CreateStack(ctx, &cloudformation.CreateStackInput{
			StackName:    aws.String(input.StackName),
			TemplateBody: aws.String(input.TemplateBody),
			Parameters:   toSDKParameters(input.Parameters),
			Tags:         toSDKTags(input.Tags),
			Capabilities: toSDKCapabilities(input.Capabilities),
		})
		if err != nil {
			return nil, errdefs.Deploymentf("failed to create stack %s: %w", input.StackName, err)
		}
	}

	stack, err := cf.waitForTerminalStatus(ctx, input.StackName, start)
	if err != nil {
		return nil, err
	}

	if !stack.Status.IsHealthy() {
		result := &StackResult{StackName: input.StackName, Outcome: OutcomeFailed, Outputs: stack.Outputs}
		return result, errdefs.Deploymentf("stack %s reached status %s: %s", input.StackName, stack.Status, stack.StatusReason)
	}

	return &StackResult{
		StackName: input.StackName,
		Outcome:   OutcomeCreatedOrUpdated,
		Outputs:   stack.Outputs,
	}, nil
}

// waitForTerminalStatus polls DescribeStacks until the stack reaches a
// terminal status from an operation started at or after since. The deploy
// call and the first describe are not assumed to be consistent, so terminal
// statuses left over from a previous operation are skipped.
func (cf *DefaultCloudFormationOperations) waitForTerminalStatus(ctx context.Context, stackName string, since time.Time) (*Stack, error) {
	deadline := time.Now().Add(cf.waitTimeout)

	for {
		stack, err := cf.DescribeStack(ctx, stackName)
		if err != nil {
			return nil, err
		}

		if stack.Status.IsTerminal() && !modifiedBefore(stack, since) {
			return stack, nil
		}

		if time.Now().After(deadline) {
			return nil, errdefs.Deploymentf("timed out waiting for stack %s to reach a terminal status (last seen %s)", stackName, stack.Status)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cf.pollInterval):
		}
	}
}

// modifiedBefore reports whether the stack's most recent operation started
// before the given time.
func modifiedBefore(stack *Stack, since time.Time) bool {
	t := stack.CreatedTime
	if stack.UpdatedTime != nil {
		t = stack.UpdatedTime
	}
	return t != nil && t.Before(since)
}

// DescribeStack retrieves the current status and outputs of a stack.
func (cf *DefaultCloudFormationOperations) DescribeStack(ctx context.Context, stackName string) (*Stack, error) {
	result, err := cf.client.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe stack %s: %w", stackName, err)
	}
	if len(result.Stacks) == 0 {
		return nil, fmt.Errorf("stack %s not found", stackName)
	}

	cfnStack := result.Stacks[0]
	stack := &Stack{
		Name:         aws.ToString(cfnStack.StackName),
		Status:       StackStatus(cfnStack.StackStatus),
		StatusReason: aws.ToString(cfnStack.StackStatusReason),
		CreatedTime:  cfnStack.CreationTime,
		UpdatedTime:  cfnStack.LastUpdatedTime,
		Parameters:   make(map[string]string),
		Outputs:      make(map[string]string),
		Tags:         make(map[string]string),
	}

	for _, param := range cfnStack.Parameters {
		stack.Parameters[aws.ToString(param.ParameterKey)] = aws.ToString(param.ParameterValue)
	}
	for _, output := range cfnStack.Outputs {
		stack.Outputs[aws.ToString(output.OutputKey)] = aws.ToString(output.OutputValue)
	}
	for _, tag := range cfnStack.Tags {
		stack.Tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}

	return stack, nil
}

// StackExists checks if a stack exists.
func (cf *DefaultCloudFormationOperations) StackExists(ctx context.Context, stackName string) (bool, error) {
	_, err := cf.client.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		if isStackNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check if stack %s exists: %w", stackName, err)
	}
	return true, nil
}

// isNoUpdateError matches the ValidationError the service returns when an
// update would change nothing.
func isNoUpdateError(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.ErrorCode() == "ValidationError" &&
		strings.Contains(apiErr.ErrorMessage(), "No updates are to be performed")
}

// isStackNotFoundError matches the ValidationError the service returns for a
// stack name that does not exist.
func isStackNotFoundError(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.ErrorCode() == "ValidationError" &&
		strings.Contains(apiErr.ErrorMessage(), "does not exist")
}

func toSDKParameters(params []Parameter) []types.Parameter {
	out := make([]types.Parameter, len(params))
	for i, p := range params {
		out[i] = types.Parameter{
			ParameterKey:   aws.String(p.Key),
			ParameterValue: aws.String(p.Value),
		}
	}
	return out
}

func toSDKTags(tags map[string]string) []types.Tag {
	out := make([]types.Tag, 0, len(tags))
	for k, v := range tags {
		out = append(out, types.Tag{Key: aws.String(k), Value: aws.String(v)})
	}
	return out
}

func toSDKCapabilities(capabilities []string) []types.Capability {
	out := make([]types.Capability, len(capabilities))
	for i, c := range capabilities {
		out[i] = types.Capability(c)
	}
	return out
}
