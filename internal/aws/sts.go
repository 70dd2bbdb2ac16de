/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"

	"github.com/authfront/authfront/internal/errdefs"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// CallerIdentity identifies the credentials a run is executing with.
type CallerIdentity struct {
	Account string
	ARN     string
	UserID  string
}

// DefaultIdentityOperations provides STS-backed identity checks.
type DefaultIdentityOperations struct {
	client STSAPI
}

// NewIdentityOperations creates a new identity operations wrapper.
func NewIdentityOperations(client STSAPI) *DefaultIdentityOperations {
	return &DefaultIdentityOperations{client: client}
}

// CallerIdentity resolves the active credentials. Failure means no usable
// credentials are configured, a precondition for every other operation.
func (i *DefaultIdentityOperations) CallerIdentity(ctx context.Context) (*CallerIdentity, error) {
	result, err := i.client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, errdefs.Preconditionf("AWS credentials are not usable: %w", err)
	}

	return &CallerIdentity{
		Account: aws.ToString(result.Account),
		ARN:     aws.ToString(result.Arn),
		UserID:  aws.ToString(result.UserId),
	}, nil
}
