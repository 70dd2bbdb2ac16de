/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/stretchr/testify/mock"
)

// MockCloudFormationOperations implements CloudFormationOperations for testing
type MockCloudFormationOperations struct {
	mock.Mock
}

func (m *MockCloudFormationOperations) ValidateTemplate(ctx context.Context, templateBody string) error {
	args := m.Called(ctx, templateBody)
	return args.Error(0)
}

func (m *MockCloudFormationOperations) DeployStack(ctx context.Context, input DeployStackInput) (*StackResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StackResult), args.Error(1)
}

func (m *MockCloudFormationOperations) DescribeStack(ctx context.Context, stackName string) (*Stack, error) {
	args := m.Called(ctx, stackName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Stack), args.Error(1)
}

func (m *MockCloudFormationOperations) StackExists(ctx context.Context, stackName string) (bool, error) {
	args := m.Called(ctx, stackName)
	return args.Bool(0), args.Error(1)
}

// MockCertificateStoreOperations implements CertificateStoreOperations for testing
type MockCertificateStoreOperations struct {
	mock.Mock
}

func (m *MockCertificateStoreOperations) ImportCertificate(ctx context.Context, certificate, privateKey, chain []byte) (string, error) {
	args := m.Called(ctx, certificate, privateKey, chain)
	return args.String(0), args.Error(1)
}

func (m *MockCertificateStoreOperations) DescribeCertificate(ctx context.Context, arn string) (*CertificateDetails, error) {
	args := m.Called(ctx, arn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CertificateDetails), args.Error(1)
}

// MockNetworkOperations implements NetworkOperations for testing
type MockNetworkOperations struct {
	mock.Mock
}

func (m *MockNetworkOperations) DiscoverDefaultNetwork(ctx context.Context) (*NetworkTopology, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*NetworkTopology), args.Error(1)
}

// MockIdentityOperations implements IdentityOperations for testing
type MockIdentityOperations struct {
	mock.Mock
}

func (m *MockIdentityOperations) CallerIdentity(ctx context.Context) (*CallerIdentity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CallerIdentity), args.Error(1)
}

// MockResourceOperations implements ResourceOperations for testing
type MockResourceOperations struct {
	mock.Mock
}

func (m *MockResourceOperations) UserPoolExists(ctx context.Context, userPoolID string) (bool, error) {
	args := m.Called(ctx, userPoolID)
	return args.Bool(0), args.Error(1)
}

func (m *MockResourceOperations) LoadBalancerExists(ctx context.Context, loadBalancerARN string) (bool, error) {
	args := m.Called(ctx, loadBalancerARN)
	return args.Bool(0), args.Error(1)
}

// MockCloudFormationAPI implements the CloudFormation service client interface for testing
type MockCloudFormationAPI struct {
	mock.Mock
}

func (m *MockCloudFormationAPI) CreateStack(ctx context.Context, params *cloudformation.CreateStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.CreateStackOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cloudformation.CreateStackOutput), args.Error(1)
}

func (m *MockCloudFormationAPI) UpdateStack(ctx context.Context, params *cloudformation.UpdateStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.UpdateStackOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cloudformation.UpdateStackOutput), args.Error(1)
}

func (m *MockCloudFormationAPI) DescribeStacks(ctx context.Context, params *cloudformation.DescribeStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cloudformation.DescribeStacksOutput), args.Error(1)
}

func (m *MockCloudFormationAPI) ValidateTemplate(ctx context.Context, params *cloudformation.ValidateTemplateInput, optFns ...func(*cloudformation.Options)) (*cloudformation.ValidateTemplateOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cloudformation.ValidateTemplateOutput), args.Error(1)
}
