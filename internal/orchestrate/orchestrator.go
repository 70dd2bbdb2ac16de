/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package orchestrate drives the deployment sequence: validate both
// templates, deploy the user-directory stack, discover the network topology,
// merge parameters, deploy the load-balancer stack, and aggregate outputs.
// The sequence is strictly ordered because the routing stack's parameters
// depend on both the directory deployment and the discovered network.
package orchestrate

import (
	"context"
	"fmt"
	"strings"

	"github.com/authfront/authfront/internal/aws"
	"github.com/authfront/authfront/internal/certificate"
	"github.com/authfront/authfront/internal/config"
	"github.com/authfront/authfront/internal/errdefs"
	"github.com/authfront/authfront/internal/model"
	"github.com/authfront/authfront/internal/resolve"
)

// Parameter keys contributed by network discovery.
const (
	ParameterVpcID     = "VpcId"
	ParameterSubnetIDs = "SubnetIds"
)

// routingSubnetCount is how many subnets the load balancer spans.
const routingSubnetCount = 2

// Output keys expected from the deployed stacks.
const (
	OutputUserPoolID      = "UserPoolId"
	OutputUserPoolDomain  = "UserPoolDomain"
	OutputLoadBalancerDNS = "LoadBalancerDNS"
	OutputLoadBalancerARN = "LoadBalancerArn"
)

// Orchestrator defines the interface for the deployment sequence.
type Orchestrator interface {
	Deploy(ctx context.Context, dctx config.Context, env *resolve.ResolvedEnvironment, cert *certificate.Reference) (*Result, error)
}

// Result aggregates the terminal state of both stack deployments. Warnings
// record expected outputs that were absent; the stacks themselves may still
// be healthy when an output key was renamed.
type Result struct {
	Directory aws.StackResult
	Routing   aws.StackResult
	Topology  *aws.NetworkTopology
	Warnings  []string
}

// StackOrchestrator implements Orchestrator against the provisioning service
// and the network topology provider.
type StackOrchestrator struct {
	cfn     aws.CloudFormationOperations
	network aws.NetworkOperations
}

// NewStackOrchestrator creates a new orchestrator.
func NewStackOrchestrator(cfn aws.CloudFormationOperations, network aws.NetworkOperations) *StackOrchestrator {
	return &StackOrchestrator{cfn: cfn, network: network}
}

// Deploy runs the full sequence. Every step is idempotent per stack name, so
// a failed run is recovered by re-running the whole invocation, never by
// retrying in place.
func (o *StackOrchestrator) Deploy(ctx context.Context, dctx config.Context, env *resolve.ResolvedEnvironment, cert *certificate.Reference) (*Result, error) {
	if dctx.CertificateMode == config.ModePrivate && cert == nil {
		return nil, errdefs.Preconditionf("private certificate mode requires a registered certificate handle")
	}

	// Dry-run both templates before touching any stack.
	for _, stack := range []*resolve.ResolvedStack{&env.Directory, &env.Routing} {
		if err := o.cfn.ValidateTemplate(ctx, stack.TemplateBody); err != nil {
			return nil, errdefs.Templatef("stack %s: %w", stack.Name, err)
		}
	}

	directory, err := o.deployStack(ctx, &env.Directory)
	if err != nil {
		return nil, err
	}

	topology, err := o.network.DiscoverDefaultNetwork(ctx)
	if err != nil {
		return nil, err
	}

	// The resolved environment is never mutated; the routing stack gets a
	// fresh parameter set with the discovered fragments overlaid.
	routingStack := env.Routing
	params := model.NewParameterSet()
	params.Merge(env.Routing.Parameters)
	params.Merge(networkFragment(topology))
	params.Merge(certificateFragment(cert))
	routingStack.Parameters = params

	routing, err := o.deployStack(ctx, &routingStack)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Directory: *directory,
		Routing:   *routing,
		Topology:  topology,
	}
	result.Warnings = missingOutputs(directory, routing)

	return result, nil
}

func (o *StackOrchestrator) deployStack(ctx context.Context, stack *resolve.ResolvedStack) (*aws.StackResult, error) {
	params := make([]aws.Parameter, 0, stack.Parameters.Len())
	for _, p := range stack.Parameters.Parameters() {
		params = append(params, aws.Parameter{Key: p.Key, Value: p.Value})
	}

	result, err := o.cfn.DeployStack(ctx, aws.DeployStackInput{
		StackName:    stack.Name,
		TemplateBody: stack.TemplateBody,
		Parameters:   params,
		Tags:         stack.Tags,
		Capabilities: stack.Capabilities,
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// networkFragment converts the discovered topology into routing-stack
// parameters. The load balancer spans the first subnets in provider order.
func networkFragment(topology *aws.NetworkTopology) *model.ParameterSet {
	return model.NewParameterSet(
		model.Parameter{Key: ParameterVpcID, Value: topology.VpcID},
		model.Parameter{Key: ParameterSubnetIDs, Value: strings.Join(topology.LeadingSubnets(routingSubnetCount), ",")},
	)
}

// certificateFragment contributes either the registered handle or the
// managed-mode sentinel.
func certificateFragment(cert *certificate.Reference) *model.ParameterSet {
	if cert == nil {
		return model.NewParameterSet(
			model.Parameter{Key: certificate.ParameterUsePrivateCertificate, Value: "false"},
		)
	}
	return cert.ParameterFragment()
}

func missingOutputs(directory, routing *aws.StackResult) []string {
	var warnings []string
	for _, key := range []string{OutputUserPoolID, OutputUserPoolDomain} {
		if _, ok := directory.Outputs[key]; !ok {
			warnings = append(warnings, fmt.Sprintf("stack %s did not publish expected output %s", directory.StackName, key))
		}
	}
	if _, ok := routing.Outputs[OutputLoadBalancerDNS]; !ok {
		warnings = append(warnings, fmt.Sprintf("stack %s did not publish expected output %s", routing.StackName, OutputLoadBalancerDNS))
	}
	return warnings
}
