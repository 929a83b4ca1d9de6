// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/urfave/cli/v3"

	awsx "github.com/staranto/sitectl/internal/aws"
	"github.com/staranto/sitectl/internal/config"
	"github.com/staranto/sitectl/internal/filters"
	"github.com/staranto/sitectl/internal/meta"
	"github.com/staranto/sitectl/internal/output"
	"github.com/staranto/sitectl/internal/site"
)

// DeployerFactory builds the Deployer for a run. Tests replace it to avoid
// talking to AWS.
type DeployerFactory func(ctx context.Context, cmd *cli.Command, s config.Settings) (*site.Deployer, error)

// NewAWSDeployer loads the AWS config for the settings and wires real S3,
// uploader and CloudFront clients into a Deployer.
func NewAWSDeployer(ctx context.Context, cmd *cli.Command, s config.Settings) (*site.Deployer, error) {
	opts := []awsx.Option{awsx.WithRegion(s.Region)}
	if s.HasStaticCredentials() {
		opts = append(opts, awsx.WithStaticCredentials(s.AccessKeyID, s.SecretAccessKey))
	} else if p := cmd.String("profile"); p != "" {
		opts = append(opts, awsx.WithProfile(p))
	}

	if n := cmd.Int("max-attempts"); n > 0 {
		opts = append(opts, awsx.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(retry.NewStandard(), n)
		}))
	}

	cfg, err := awsx.LoadAWSConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	clients := awsx.NewClients(cfg)
	return &site.Deployer{
		Buckets:     clients.S3,
		CDN:         clients.CloudFront,
		Uploader:    clients.Uploader,
		Concurrency: cmd.Int("concurrency"),
	}, nil
}

// DeployCommandAction runs the provisioning sequence and prints the report,
// narrowed by --filter. Step failures are logged and reported but only turn
// into an error with --strict.
func DeployCommandAction(factory DeployerFactory) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		settings := SettingsFromCommand(cmd)
		if err := settings.Validate(); err != nil {
			return err
		}

		if timeout := cmd.Duration("timeout"); timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		d, err := factory(ctx, cmd, settings)
		if err != nil {
			return fmt.Errorf("failed to set up deployment: %w", err)
		}

		target := TargetFromSettings(settings)
		log.WithFields(log.Fields{
			"bucket": target.Bucket,
			"region": target.Region,
			"config": GetMeta(cmd).Config.Source,
		}).Info("deploying site")

		rep, deployErr := d.Deploy(ctx, target)

		w := writer(cmd)
		shown := filters.FilterReport(rep, cmd.String("filter"))
		if err := output.WriteReport(w, shown, OutputOptions(cmd, w)); err != nil {
			return err
		}

		if deployErr != nil && cmd.Bool("strict") {
			return fmt.Errorf("deployment of %s did not complete: %w", target.Bucket, deployErr)
		}
		return nil
	}
}

// DeployCommandBuilder constructs the cli.Command definition for the "deploy"
// command, wiring flags, metadata, and the action handler.
func DeployCommandBuilder(meta meta.Meta, factory DeployerFactory) *cli.Command {
	src := meta.Config.Source

	flags := NewTargetFlags("deploy", src)
	flags = append(flags, NewOutputFlags("deploy", src)...)
	flags = append(flags, NewDeployFlags("deploy", src)...)

	return &cli.Command{
		Name:      "deploy",
		Usage:     "create the bucket, distribution and index page",
		UsageText: "sitectl deploy [@set] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  flags,
		Action: DeployCommandAction(factory),
	}
}
