/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	idptypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbtypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
)

// DefaultResourceOperations checks the primary external resources behind the
// two stacks: the user pool and the load balancer.
type DefaultResourceOperations struct {
	idp CognitoAPI
	elb ELBV2API
}

// NewResourceOperations creates a new resource operations wrapper.
func NewResourceOperations(idp CognitoAPI, elb ELBV2API) *DefaultResourceOperations {
	return &DefaultResourceOperations{idp: idp, elb: elb}
}

// UserPoolExists reports whether the user pool behind the directory stack is
// describable.
func (r *DefaultResourceOperations) UserPoolExists(ctx context.Context, userPoolID string) (bool, error) {
	_, err := r.idp.DescribeUserPool(ctx, &cognitoidentityprovider.DescribeUserPoolInput{
		UserPoolId: aws.String(userPoolID),
	})
	if err != nil {
		var notFound *idptypes.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to describe user pool %s: %w", userPoolID, err)
	}
	return true, nil
}

// LoadBalancerExists reports whether the load balancer behind the routing
// stack is describable.
func (r *DefaultResourceOperations) LoadBalancerExists(ctx context.Context, loadBalancerARN string) (bool, error) {
	_, err := r.elb.DescribeLoadBalancers(ctx, &elasticloadbalancingv2.DescribeLoadBalancersInput{
		LoadBalancerArns: []string{loadBalancerARN},
	})
	if err != nil {
		var notFound *elbtypes.LoadBalancerNotFoundException
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to describe load balancer %s: %w", loadBalancerARN, err)
	}
	return true, nil
}
