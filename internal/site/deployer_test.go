// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package site

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTarget = Target{Bucket: "my-site", Region: "eu-west-1", AccountID: "123456789012"}

func TestDeploy_AllStepsSucceed(t *testing.T) {
	f := newFixture()

	rep, err := f.deployer().Deploy(context.Background(), testTarget)
	require.NoError(t, err)

	for _, name := range []string{"CreateBucket", "DeletePublicAccessBlock", "PutBucketPolicy", "CreateDistribution", "Upload"} {
		assert.Equal(t, 1, f.log.count(name), name)
	}
	assert.Equal(t, "CreateBucket", f.log.snapshot()[0])

	assert.False(t, rep.Failed())
	assert.Equal(t, 5, rep.Count(StatusOK))
	require.Len(t, rep.Steps, len(Steps))
	for i, s := range Steps {
		assert.Equal(t, s, rep.Steps[i].Step)
	}

	cb, _ := rep.Result(StepCreateBucket)
	assert.Equal(t, "/my-site", cb.Detail)
	cd, _ := rep.Result(StepCreateDistribution)
	assert.Equal(t, "d111111abcdef8.cloudfront.net", cd.Detail)
	assert.Equal(t, "E2EXAMPLE", cd.ID)
	up, _ := rep.Result(StepUploadObject)
	assert.Equal(t, "https://my-site.s3.amazonaws.com/index.html", up.Detail)
}

func TestDeploy_RequestParameters(t *testing.T) {
	f := newFixture()

	_, err := f.deployer().Deploy(context.Background(), testTarget)
	require.NoError(t, err)

	assert.Equal(t, "my-site", aws.ToString(f.buckets.createIn.Bucket))
	require.NotNil(t, f.buckets.createIn.CreateBucketConfiguration)
	assert.EqualValues(t, "eu-west-1", f.buckets.createIn.CreateBucketConfiguration.LocationConstraint)

	assert.Equal(t, "my-site", aws.ToString(f.buckets.accessIn.Bucket))
	assert.Equal(t, "123456789012", aws.ToString(f.buckets.accessIn.ExpectedBucketOwner))

	assert.Equal(t, "my-site", aws.ToString(f.buckets.policyIn.Bucket))
	want, err := PublicReadPolicy("my-site").JSON()
	require.NoError(t, err)
	assert.Equal(t, want, aws.ToString(f.buckets.policyIn.Policy))

	require.NotNil(t, f.cdn.in.DistributionConfig)
	assert.Equal(t, "my-site.s3.amazonaws.com", aws.ToString(f.cdn.in.DistributionConfig.Origins.Items[0].DomainName))

	assert.Equal(t, "my-site", aws.ToString(f.uploader.in.Bucket))
	assert.Equal(t, IndexKey, aws.ToString(f.uploader.in.Key))
	assert.Equal(t, "index.html", aws.ToString(f.uploader.in.Key))
	assert.Equal(t, "text/html", aws.ToString(f.uploader.in.ContentType))
	assert.Equal(t, IndexHTML, f.uploader.body)
}

func TestDeploy_CreateBucketFailureStopsEverything(t *testing.T) {
	f := newFixture()
	f.buckets.createErr = &smithy.GenericAPIError{Code: "BucketAlreadyExists", Message: "taken"}

	rep, err := f.deployer().Deploy(context.Background(), testTarget)
	require.Error(t, err)

	assert.Equal(t, []string{"CreateBucket"}, f.log.snapshot())

	cb, ok := rep.Result(StepCreateBucket)
	require.True(t, ok)
	assert.Equal(t, StatusFailed, cb.Status)
	assert.Equal(t, "BucketAlreadyExists", cb.Code)
	assert.Equal(t, "taken", cb.Error)
	assert.Equal(t, 4, rep.Count(StatusSkipped))
	assert.True(t, rep.Failed())
}

func TestDeploy_AccessBlockFailureSkipsPolicyOnly(t *testing.T) {
	f := newFixture()
	f.buckets.accessBlockErr = errors.New("access denied")

	rep, err := f.deployer().Deploy(context.Background(), testTarget)
	require.Error(t, err)

	assert.Equal(t, 0, f.log.count("PutBucketPolicy"))
	assert.Equal(t, 1, f.log.count("CreateDistribution"))
	assert.Equal(t, 1, f.log.count("Upload"))

	pol, _ := rep.Result(StepPutBucketPolicy)
	assert.Equal(t, StatusSkipped, pol.Status)
	ab, _ := rep.Result(StepDeletePublicAccessBlock)
	assert.Equal(t, StatusFailed, ab.Status)
	assert.Empty(t, ab.Code)
	assert.Equal(t, "access denied", ab.Error)
}

func TestDeploy_IndependentBranchFailures(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(*fixture)
		failed Step
	}{
		{
			name:   "policy",
			setup:  func(f *fixture) { f.buckets.policyErr = errors.New("malformed policy") },
			failed: StepPutBucketPolicy,
		},
		{
			name:   "distribution",
			setup:  func(f *fixture) { f.cdn.err = errors.New("too many distributions") },
			failed: StepCreateDistribution,
		},
		{
			name:   "upload",
			setup:  func(f *fixture) { f.uploader.err = errors.New("connection reset") },
			failed: StepUploadObject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f)

			rep, err := f.deployer().Deploy(context.Background(), testTarget)
			require.Error(t, err)

			assert.Equal(t, 1, rep.Count(StatusFailed))
			assert.Equal(t, 4, rep.Count(StatusOK))
			res, _ := rep.Result(tt.failed)
			assert.Equal(t, StatusFailed, res.Status)
		})
	}
}

func TestDeploy_PolicyWaitsForAccessBlock(t *testing.T) {
	f := newFixture()
	release := make(chan struct{})
	f.buckets.accessBlockWait = release
	f.cdn.done = make(chan struct{})
	f.uploader.done = make(chan struct{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	type result struct {
		rep Report
		err error
	}
	out := make(chan result, 1)
	go func() {
		rep, err := f.deployer().Deploy(ctx, testTarget)
		out <- result{rep, err}
	}()

	// The distribution and upload branches finish while the access block
	// call is still outstanding.
	<-f.cdn.done
	<-f.uploader.done
	assert.Equal(t, 0, f.log.count("PutBucketPolicy"))
	close(release)

	r := <-out
	require.NoError(t, r.err)
	assert.False(t, r.rep.Failed())
	assert.Greater(t, f.log.index("PutBucketPolicy"), f.log.index("DeletePublicAccessBlock"))
}

func TestDeploy_SerialBranches(t *testing.T) {
	f := newFixture()
	d := f.deployer()
	d.Concurrency = 1

	rep, err := d.Deploy(context.Background(), testTarget)
	require.NoError(t, err)
	assert.Equal(t, 5, rep.Count(StatusOK))
	assert.Len(t, f.log.snapshot(), 5)
}

func TestDeploy_ClockStampsCallerReference(t *testing.T) {
	f := newFixture()
	d := f.deployer()
	now := time.UnixMilli(1700000000123)
	d.Now = func() time.Time { return now }

	rep, err := d.Deploy(context.Background(), testTarget)
	require.NoError(t, err)

	assert.Equal(t, "1700000000123", aws.ToString(f.cdn.in.DistributionConfig.CallerReference))
	for _, s := range rep.Steps {
		assert.Zero(t, s.Elapsed)
	}
}
