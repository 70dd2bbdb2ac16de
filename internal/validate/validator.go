/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package validate inspects the local workspace and the deployed environment
// and reports findings without changing anything. Every check produces a
// finding; the run only errors when the validator itself cannot operate.
package validate

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/authfront/authfront/internal/aws"
	"github.com/authfront/authfront/internal/certificate"
	"github.com/authfront/authfront/internal/config"
	"github.com/authfront/authfront/internal/model"
	"github.com/authfront/authfront/internal/orchestrate"
	"github.com/authfront/authfront/internal/resolve"
)

// Status classifies a single finding.
type Status string

const (
	StatusPass Status = "PASS"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// Finding is the outcome of one check.
type Finding struct {
	Name   string
	Status Status
	Detail string
}

// Report aggregates the findings of one validation run.
type Report struct {
	Environment string
	Timestamp   time.Time
	Findings    []Finding
}

// Verdict is FAIL when at least one finding failed. Warnings alone never
// fail a run; a clean workspace with nothing deployed yet is still valid.
func (r *Report) Verdict() Status {
	for _, f := range r.Findings {
		if f.Status == StatusFail {
			return StatusFail
		}
	}
	return StatusPass
}

// Counts returns the number of findings per status.
func (r *Report) Counts() (pass, warn, fail int) {
	for _, f := range r.Findings {
		switch f.Status {
		case StatusPass:
			pass++
		case StatusWarn:
			warn++
		case StatusFail:
			fail++
		}
	}
	return pass, warn, fail
}

func (r *Report) add(name string, status Status, format string, args ...interface{}) {
	r.Findings = append(r.Findings, Finding{
		Name:   name,
		Status: status,
		Detail: fmt.Sprintf(format, args...),
	})
}

// Prober checks that an endpoint answers over HTTPS.
type Prober interface {
	Probe(ctx context.Context, url string) error
}

// HTTPProber probes endpoints with a short-lived HTTPS client. Certificate
// verification is skipped because private-mode environments terminate TLS
// with a self-signed certificate.
type HTTPProber struct {
	client *http.Client
}

// NewHTTPProber creates a prober with a bounded request timeout.
func NewHTTPProber() *HTTPProber {
	return &HTTPProber{
		client: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}
}

// Probe issues a GET and treats any HTTP response as reachable.
func (p *HTTPProber) Probe(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	return nil
}

// Validator runs the environment checks.
type Validator interface {
	Validate(ctx context.Context, dctx config.Context) (*Report, error)
}

// EnvironmentValidator implements Validator against the workspace on disk
// and the live AWS environment.
type EnvironmentValidator struct {
	identity  aws.IdentityOperations
	cfn       aws.CloudFormationOperations
	resources aws.ResourceOperations
	resolver  *resolve.StackResolver
	prober    Prober
}

// NewEnvironmentValidator creates a new validator.
func NewEnvironmentValidator(
	identity aws.IdentityOperations,
	cfn aws.CloudFormationOperations,
	resources aws.ResourceOperations,
	resolver *resolve.StackResolver,
	prober Prober,
) *EnvironmentValidator {
	return &EnvironmentValidator{
		identity:  identity,
		cfn:       cfn,
		resources: resources,
		resolver:  resolver,
		prober:    prober,
	}
}

// Validate runs every check and returns the report. Checks that need AWS are
// skipped with a warning when the credentials check fails, so one broken
// profile does not drown the report in repeated failures.
func (v *EnvironmentValidator) Validate(ctx context.Context, dctx config.Context) (*Report, error) {
	report := &Report{
		Environment: dctx.Environment,
		Timestamp:   time.Now(),
	}

	remote := v.checkCredentials(ctx, report)
	v.checkWorkspaceFiles(report, dctx)
	v.checkResolution(ctx, report, dctx, remote)
	if remote {
		directory := v.checkStack(ctx, report, dctx.DirectoryStackName())
		routing := v.checkStack(ctx, report, dctx.RoutingStackName())
		v.checkDirectoryResources(ctx, report, directory)
		v.checkRoutingResources(ctx, report, routing)
	}

	return report, nil
}

func (v *EnvironmentValidator) checkCredentials(ctx context.Context, report *Report) bool {
	identity, err := v.identity.CallerIdentity(ctx)
	if err != nil {
		report.add("aws-credentials", StatusFail, "%v", err)
		return false
	}
	report.add("aws-credentials", StatusPass, "authenticated as %s in account %s", identity.ARN, identity.Account)
	return true
}

func (v *EnvironmentValidator) checkWorkspaceFiles(report *Report, dctx config.Context) {
	for _, path := range []string{v.resolver.DirectoryTemplatePath(), v.resolver.RoutingTemplatePath()} {
		if _, err := os.Stat(path); err != nil {
			report.add("template-files", StatusFail, "template %s is missing", path)
		} else {
			report.add("template-files", StatusPass, "template %s is present", path)
		}
	}

	paramsPath := v.resolver.BaseParametersPath(dctx.Environment)
	if _, err := model.ReadFile(paramsPath); err != nil {
		if os.IsNotExist(err) {
			report.add("parameter-files", StatusWarn, "no base parameter file for %s, defaults apply", dctx.Environment)
		} else {
			report.add("parameter-files", StatusFail, "%v", err)
		}
	} else {
		report.add("parameter-files", StatusPass, "parameter file %s is well formed", paramsPath)
	}

	if dctx.CertificateMode == config.ModePrivate {
		if _, err := certificate.LoadReference(v.resolver.ParametersDir(), dctx.Environment); err != nil {
			report.add("certificate-artifact", StatusFail, "%v", err)
		} else {
			report.add("certificate-artifact", StatusPass, "certificate artifact for %s is present", dctx.Environment)
		}
	}
}

func (v *EnvironmentValidator) checkResolution(ctx context.Context, report *Report, dctx config.Context, remote bool) {
	env, err := v.resolver.Resolve(dctx)
	if err != nil {
		report.add("template-render", StatusFail, "%v", err)
		return
	}
	report.add("template-render", StatusPass, "both templates rendered for %s", dctx.Environment)

	for _, stack := range []*resolve.ResolvedStack{&env.Directory, &env.Routing} {
		if !remote {
			report.add("template-dryrun", StatusWarn, "skipped for stack %s, credentials unavailable", stack.Name)
			continue
		}
		if err := v.cfn.ValidateTemplate(ctx, stack.TemplateBody); err != nil {
			report.add("template-dryrun", StatusFail, "stack %s: %v", stack.Name, err)
		} else {
			report.add("template-dryrun", StatusPass, "stack %s template accepted", stack.Name)
		}
	}
}

// checkStack reports the live status of one stack and returns it when the
// stack exists and is healthy, so resource checks can use its outputs.
func (v *EnvironmentValidator) checkStack(ctx context.Context, report *Report, stackName string) *aws.Stack {
	exists, err := v.cfn.StackExists(ctx, stackName)
	if err != nil {
		report.add("stack-status", StatusFail, "stack %s: %v", stackName, err)
		return nil
	}
	if !exists {
		report.add("stack-status", StatusWarn, "stack %s is not deployed", stackName)
		return nil
	}

	stack, err := v.cfn.DescribeStack(ctx, stackName)
	if err != nil {
		report.add("stack-status", StatusFail, "stack %s: %v", stackName, err)
		return nil
	}

	switch {
	case stack.Status.IsHealthy():
		report.add("stack-status", StatusPass, "stack %s is %s", stackName, stack.Status)
		return stack
	case !stack.Status.IsTerminal():
		report.add("stack-status", StatusWarn, "stack %s is still %s", stackName, stack.Status)
	default:
		report.add("stack-status", StatusFail, "stack %s is %s: %s", stackName, stack.Status, stack.StatusReason)
	}
	return nil
}

func (v *EnvironmentValidator) checkDirectoryResources(ctx context.Context, report *Report, stack *aws.Stack) {
	if stack == nil {
		return
	}

	poolID, ok := stack.Outputs[orchestrate.OutputUserPoolID]
	if !ok {
		report.add("user-pool", StatusWarn, "stack %s did not publish output %s", stack.Name, orchestrate.OutputUserPoolID)
		return
	}
	exists, err := v.resources.UserPoolExists(ctx, poolID)
	if err != nil {
		report.add("user-pool", StatusWarn, "user pool %s could not be checked: %v", poolID, err)
		return
	}
	if !exists {
		report.add("user-pool", StatusWarn, "user pool %s is not reachable", poolID)
		return
	}
	report.add("user-pool", StatusPass, "user pool %s is reachable", poolID)
}

func (v *EnvironmentValidator) checkRoutingResources(ctx context.Context, report *Report, stack *aws.Stack) {
	if stack == nil {
		return
	}

	if arn, ok := stack.Outputs[orchestrate.OutputLoadBalancerARN]; ok {
		exists, err := v.resources.LoadBalancerExists(ctx, arn)
		switch {
		case err != nil:
			report.add("load-balancer", StatusWarn, "load balancer could not be checked: %v", err)
		case !exists:
			report.add("load-balancer", StatusWarn, "load balancer %s is not reachable", arn)
		default:
			report.add("load-balancer", StatusPass, "load balancer is reachable")
		}
	} else {
		report.add("load-balancer", StatusWarn, "stack %s did not publish output %s", stack.Name, orchestrate.OutputLoadBalancerARN)
	}

	dns, ok := stack.Outputs[orchestrate.OutputLoadBalancerDNS]
	if !ok {
		report.add("https-endpoint", StatusWarn, "stack %s did not publish output %s", stack.Name, orchestrate.OutputLoadBalancerDNS)
		return
	}
	if err := v.prober.Probe(ctx, "https://"+dns+"/"); err != nil {
		report.add("https-endpoint", StatusWarn, "https://%s/ is not answering: %v", dns, err)
		return
	}
	report.add("https-endpoint", StatusPass, "https://%s/ is answering", dns)
}
