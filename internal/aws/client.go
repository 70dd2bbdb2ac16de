/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package aws wraps the AWS service clients behind small operation
// interfaces so the rest of the tool never touches SDK types directly.
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/acm"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Config holds configuration for creating a Client.
type Config struct {
	Region  string
	Profile string
}

// Client owns one shared AWS configuration and the service clients built
// from it.
type Client struct {
	config aws.Config
	cfn    *cloudformation.Client
	acm    *acm.Client
	ec2    *ec2.Client
	sts    *sts.Client
	idp    *cognitoidentityprovider.Client
	elb    *elasticloadbalancingv2.Client
}

// NewClient creates a new AWS client with the specified configuration.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	var opts []func(*config.LoadOptions) error

	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &Client{
		config: awsCfg,
		cfn:    cloudformation.NewFromConfig(awsCfg),
		acm:    acm.NewFromConfig(awsCfg),
		ec2:    ec2.NewFromConfig(awsCfg),
		sts:    sts.NewFromConfig(awsCfg),
		idp:    cognitoidentityprovider.NewFromConfig(awsCfg),
		elb:    elasticloadbalancingv2.NewFromConfig(awsCfg),
	}, nil
}

// Region returns the configured AWS region.
func (c *Client) Region() string {
	return c.config.Region
}

// CloudFormation returns the provisioning-service operations.
func (c *Client) CloudFormation() CloudFormationOperations {
	return NewCloudFormationOperations(c.cfn)
}

// CertificateStore returns the certificate-store operations.
func (c *Client) CertificateStore() CertificateStoreOperations {
	return NewCertificateStoreOperations(c.acm)
}

// Network returns the network-topology operations.
func (c *Client) Network() NetworkOperations {
	return NewNetworkOperations(c.ec2)
}

// Identity returns the credential-identity operations.
func (c *Client) Identity() IdentityOperations {
	return NewIdentityOperations(c.sts)
}

// Resources returns the live-resource operations.
func (c *Client) Resources() ResourceOperations {
	return NewResourceOperations(c.idp, c.elb)
}
