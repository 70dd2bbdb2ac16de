/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/acm"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// CloudFormationAPI is the subset of the CloudFormation service client used
// here. Narrow interfaces keep the mocks small.
type CloudFormationAPI interface {
	CreateStack(ctx context.Context, params *cloudformation.CreateStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.CreateStackOutput, error)
	UpdateStack(ctx context.Context, params *cloudformation.UpdateStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.UpdateStackOutput, error)
	DescribeStacks(ctx context.Context, params *cloudformation.DescribeStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error)
	ValidateTemplate(ctx context.Context, params *cloudformation.ValidateTemplateInput, optFns ...func(*cloudformation.Options)) (*cloudformation.ValidateTemplateOutput, error)
}

// ACMAPI is the subset of the ACM service client used by the certificate store.
type ACMAPI interface {
	ImportCertificate(ctx context.Context, params *acm.ImportCertificateInput, optFns ...func(*acm.Options)) (*acm.ImportCertificateOutput, error)
	DescribeCertificate(ctx context.Context, params *acm.DescribeCertificateInput, optFns ...func(*acm.Options)) (*acm.DescribeCertificateOutput, error)
}

// EC2API is the subset of the EC2 service client used for network discovery.
type EC2API interface {
	DescribeVpcs(ctx context.Context, params *ec2.DescribeVpcsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error)
	DescribeSubnets(ctx context.Context, params *ec2.DescribeSubnetsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error)
}

// STSAPI is the subset of the STS service client used for credential checks.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// CognitoAPI is the subset of the Cognito IDP client used for resource checks.
type CognitoAPI interface {
	DescribeUserPool(ctx context.Context, params *cognitoidentityprovider.DescribeUserPoolInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.DescribeUserPoolOutput, error)
}

// ELBV2API is the subset of the ELBv2 client used for resource checks.
type ELBV2API interface {
	DescribeLoadBalancers(ctx context.Context, params *elasticloadbalancingv2.DescribeLoadBalancersInput, optFns ...func(*elasticloadbalancingv2.Options)) (*elasticloadbalancingv2.DescribeLoadBalancersOutput, error)
}

// Ensure the real service clients satisfy the narrow interfaces.
var (
	_ CloudFormationAPI = (*cloudformation.Client)(nil)
	_ ACMAPI            = (*acm.Client)(nil)
	_ EC2API            = (*ec2.Client)(nil)
	_ STSAPI            = (*sts.Client)(nil)
	_ CognitoAPI        = (*cognitoidentityprovider.Client)(nil)
	_ ELBV2API          = (*elasticloadbalancingv2.Client)(nil)
)

// CloudFormationOperations is the provisioning-service interface consumed by
// the orchestrator and the validator.
type CloudFormationOperations interface {
	ValidateTemplate(ctx context.Context, templateBody string) error
	DeployStack(ctx context.Context, input DeployStackInput) (*StackResult, error)
	DescribeStack(ctx context.Context, stackName string) (*Stack, error)
	StackExists(ctx context.Context, stackName string) (bool, error)
}

// CertificateStoreOperations is the certificate-store interface consumed by
// the certificate manager.
type CertificateStoreOperations interface {
	ImportCertificate(ctx context.Context, certificate, privateKey, chain []byte) (string, error)
	DescribeCertificate(ctx context.Context, arn string) (*CertificateDetails, error)
}

// NetworkOperations is the network-topology interface consumed by the
// orchestrator.
type NetworkOperations interface {
	DiscoverDefaultNetwork(ctx context.Context) (*NetworkTopology, error)
}

// IdentityOperations reports on the credentials the run is executing with.
type IdentityOperations interface {
	CallerIdentity(ctx context.Context) (*CallerIdentity, error)
}

// ResourceOperations checks the live external resources the stacks publish.
type ResourceOperations interface {
	UserPoolExists(ctx context.Context, userPoolID string) (bool, error)
	LoadBalancerExists(ctx context.Context, loadBalancerARN string) (bool, error)
}

var (
	_ CloudFormationOperations   = (*DefaultCloudFormationOperations)(nil)
	_ CertificateStoreOperations = (*DefaultCertificateStoreOperations)(nil)
	_ NetworkOperations          = (*DefaultNetworkOperations)(nil)
	_ IdentityOperations         = (*DefaultIdentityOperations)(nil)
	_ ResourceOperations         = (*DefaultResourceOperations)(nil)
)
