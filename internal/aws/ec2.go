/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"fmt"

	"github.com/authfront/authfront/internal/errdefs"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// NetworkTopology is the runtime network context discovered between the two
// stack deployments. Subnet order is the provider's order, no re-sorting.
type NetworkTopology struct {
	VpcID     string
	SubnetIDs []string
}

// LeadingSubnets returns the first n subnets in provider order, or all of
// them if fewer exist.
func (t *NetworkTopology) LeadingSubnets(n int) []string {
	if len(t.SubnetIDs) <= n {
		return t.SubnetIDs
	}
	return t.SubnetIDs[:n]
}

// DefaultNetworkOperations provides EC2-backed network topology discovery.
type DefaultNetworkOperations struct {
	client EC2API
}

// NewNetworkOperations creates a new network topology wrapper.
func NewNetworkOperations(client EC2API) *DefaultNetworkOperations {
	return &DefaultNetworkOperations{client: client}
}

// DiscoverDefaultNetwork resolves the default VPC and its subnets. The
// topology is fetched fresh per call and never cached: the account's network
// can change between runs. No default VPC or zero subnets is a topology error.
func (n *DefaultNetworkOperations) DiscoverDefaultNetwork(ctx context.Context) (*NetworkTopology, error) {
	vpcs, err := n.client.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{
		Filters: []types.Filter{
			{Name: aws.String("isDefault"), Values: []string{"true"}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe VPCs: %w", err)
	}
	if len(vpcs.Vpcs) == 0 {
		return nil, errdefs.Topologyf("no default VPC exists in this region")
	}

	vpcID := aws.ToString(vpcs.Vpcs[0].VpcId)

	subnets, err := n.client.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{
		Filters: []types.Filter{
			{Name: aws.String("vpc-id"), Values: []string{vpcID}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe subnets for VPC %s: %w", vpcID, err)
	}

	subnetIDs := make([]string, 0, len(subnets.Subnets))
	for _, subnet := range subnets.Subnets {
		subnetIDs = append(subnetIDs, aws.ToString(subnet.SubnetId))
	}
	if len(subnetIDs) == 0 {
		return nil, errdefs.Topologyf("default VPC %s has no usable subnets", vpcID)
	}

	return &NetworkTopology{VpcID: vpcID, SubnetIDs: subnetIDs}, nil
}
