/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"testing"

	"github.com/authfront/authfront/internal/errdefs"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEC2API implements the EC2 service client interface for testing
type MockEC2API struct {
	mock.Mock
}

func (m *MockEC2API) DescribeVpcs(ctx context.Context, params *ec2.DescribeVpcsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ec2.DescribeVpcsOutput), args.Error(1)
}

func (m *MockEC2API) DescribeSubnets(ctx context.Context, params *ec2.DescribeSubnetsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ec2.DescribeSubnetsOutput), args.Error(1)
}

func subnetOutput(ids ...string) *ec2.DescribeSubnetsOutput {
	out := &ec2.DescribeSubnetsOutput{}
	for _, id := range ids {
		out.Subnets = append(out.Subnets, types.Subnet{SubnetId: aws.String(id)})
	}
	return out
}

func TestDiscoverDefaultNetwork_ReturnsTopologyInProviderOrder(t *testing.T) {
	client := &MockEC2API{}
	ops := NewNetworkOperations(client)

	client.On("DescribeVpcs", mock.Anything, mock.Anything).Return(&ec2.DescribeVpcsOutput{
		Vpcs: []types.Vpc{{VpcId: aws.String("vpc-0abc")}},
	}, nil)
	client.On("DescribeSubnets", mock.Anything, mock.Anything).
		Return(subnetOutput("subnet-c", "subnet-a", "subnet-b"), nil)

	topology, err := ops.DiscoverDefaultNetwork(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "vpc-0abc", topology.VpcID)
	assert.Equal(t, []string{"subnet-c", "subnet-a", "subnet-b"}, topology.SubnetIDs)
}

func TestDiscoverDefaultNetwork_NoDefaultVPCIsTopologyError(t *testing.T) {
	client := &MockEC2API{}
	ops := NewNetworkOperations(client)

	client.On("DescribeVpcs", mock.Anything, mock.Anything).
		Return(&ec2.DescribeVpcsOutput{}, nil)

	_, err := ops.DiscoverDefaultNetwork(context.Background())

	require.Error(t, err)
	assert.True(t, errdefs.IsTopology(err))
	client.AssertNotCalled(t, "DescribeSubnets", mock.Anything, mock.Anything)
}

func TestDiscoverDefaultNetwork_ZeroSubnetsIsTopologyError(t *testing.T) {
	client := &MockEC2API{}
	ops := NewNetworkOperations(client)

	client.On("DescribeVpcs", mock.Anything, mock.Anything).Return(&ec2.DescribeVpcsOutput{
		Vpcs: []types.Vpc{{VpcId: aws.String("vpc-0abc")}},
	}, nil)
	client.On("DescribeSubnets", mock.Anything, mock.Anything).Return(subnetOutput(), nil)

	_, err := ops.DiscoverDefaultNetwork(context.Background())

	require.Error(t, err)
	assert.True(t, errdefs.IsTopology(err))
}

func TestLeadingSubnets(t *testing.T) {
	topology := &NetworkTopology{SubnetIDs: []string{"subnet-1", "subnet-2", "subnet-3"}}
	assert.Equal(t, []string{"subnet-1", "subnet-2"}, topology.LeadingSubnets(2))

	short := &NetworkTopology{SubnetIDs: []string{"subnet-1"}}
	assert.Equal(t, []string{"subnet-1"}, short.LeadingSubnets(2))
}
