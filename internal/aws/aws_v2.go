// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	cloudfrontv2 "github.com/aws/aws-sdk-go-v2/service/cloudfront"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
)

// options holds optional overrides for AWS config loading.
type options struct {
	profile   string
	region    string
	accessKey string
	secretKey string
	retryer   func() awsv2.Retryer
}

// Option customizes how AWS config is loaded.
// Default behavior (no options) inherits the shell environment and shared
// config chain (AWS_PROFILE, ~/.aws/config, ~/.aws/credentials, IMDS, etc.).
type Option func(*options)

// WithProfile sets the shared config profile. Defaults to AWS_PROFILE/env chain.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override. Defaults to env/profile/metadata chain.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithStaticCredentials pins the access key pair. Ignored unless both halves
// are non-empty.
func WithStaticCredentials(accessKey, secretKey string) Option {
	return func(o *options) {
		o.accessKey = accessKey
		o.secretKey = secretKey
	}
}

// WithRetryer injects a custom retryer; if not set, SDK defaults are used.
func WithRetryer(newRetryer func() awsv2.Retryer) Option {
	return func(o *options) { o.retryer = newRetryer }
}

// loadOptions translates Options into config.LoadOptions functions.
func loadOptions(opts ...Option) []func(*config.LoadOptions) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.accessKey != "" && o.secretKey != "" {
		provider := credentials.NewStaticCredentialsProvider(o.accessKey, o.secretKey, "")
		loadOpts = append(loadOpts, config.WithCredentialsProvider(provider))
	}
	if o.retryer != nil {
		loadOpts = append(loadOpts, config.WithRetryer(o.retryer))
	}
	return loadOpts
}

// LoadAWSConfig loads AWS SDK v2 config. By default it inherits the shell's
// AWS setup (AWS_PROFILE, shared config, env, IMDS). Options can override
// profile, region, credentials and retryer without changing callers.
func LoadAWSConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx, loadOptions(opts...)...)
	if err != nil {
		return awsv2.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg, nil
}

// NewS3 constructs a v2 S3 client from the provided config. Additional service
// options can be supplied via optFns.
func NewS3(cfg awsv2.Config, optFns ...func(*s3v2.Options)) *s3v2.Client {
	return s3v2.NewFromConfig(cfg, optFns...)
}

// NewUploader wraps an S3 client in the managed uploader, which switches to
// multipart for large bodies.
func NewUploader(client *s3v2.Client, optFns ...func(*manager.Uploader)) *manager.Uploader {
	return manager.NewUploader(client, optFns...)
}

// NewCloudFront constructs a v2 CloudFront client from the provided config.
func NewCloudFront(cfg awsv2.Config, optFns ...func(*cloudfrontv2.Options)) *cloudfrontv2.Client {
	return cloudfrontv2.NewFromConfig(cfg, optFns...)
}

// Clients bundles the service clients a deployment needs.
type Clients struct {
	S3         *s3v2.Client
	Uploader   *manager.Uploader
	CloudFront *cloudfrontv2.Client
}

// NewClients builds every client from one loaded config.
func NewClients(cfg awsv2.Config) Clients {
	s3c := NewS3(cfg)
	return Clients{
		S3:         s3c,
		Uploader:   NewUploader(s3c),
		CloudFront: NewCloudFront(cfg),
	}
}
