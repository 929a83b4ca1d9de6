// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package site

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/errgroup"
)

// BucketAPI is the subset of the S3 API used to prepare the bucket.
type BucketAPI interface {
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	DeletePublicAccessBlock(ctx context.Context, params *s3.DeletePublicAccessBlockInput, optFns ...func(*s3.Options)) (*s3.DeletePublicAccessBlockOutput, error)
	PutBucketPolicy(ctx context.Context, params *s3.PutBucketPolicyInput, optFns ...func(*s3.Options)) (*s3.PutBucketPolicyOutput, error)
}

// DistributionAPI is the subset of the CloudFront API used to front the bucket.
type DistributionAPI interface {
	CreateDistribution(ctx context.Context, params *cloudfront.CreateDistributionInput, optFns ...func(*cloudfront.Options)) (*cloudfront.CreateDistributionOutput, error)
}

// UploadAPI uploads an object, as manager.Uploader does.
type UploadAPI interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

var (
	_ BucketAPI       = (*s3.Client)(nil)
	_ DistributionAPI = (*cloudfront.Client)(nil)
	_ UploadAPI       = (*manager.Uploader)(nil)
)

// Deployer runs the provisioning sequence. Every step is attempted at most
// once and a failure is logged and recorded, never retried.
type Deployer struct {
	Buckets  BucketAPI
	CDN      DistributionAPI
	Uploader UploadAPI

	// Concurrency caps how many of the post-create branches run at once.
	// Zero or less means no cap.
	Concurrency int

	// Now defaults to time.Now. It stamps the distribution caller reference
	// and step timings.
	Now func() time.Time
}

func (d *Deployer) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Deploy creates the bucket and, only if that succeeded, starts three
// independent branches: access block removal followed by the bucket policy,
// distribution creation, and the index upload. It waits for all of them and
// returns the report together with the first failure observed, if any.
func (d *Deployer) Deploy(ctx context.Context, t Target) (Report, error) {
	rec := newRecorder(t)

	if err := d.createBucket(ctx, t, rec); err != nil {
		rec.skip(StepDeletePublicAccessBlock, "bucket was not created")
		rec.skip(StepPutBucketPolicy, "bucket was not created")
		rec.skip(StepCreateDistribution, "bucket was not created")
		rec.skip(StepUploadObject, "bucket was not created")
		return rec.report(), err
	}

	var g errgroup.Group
	if d.Concurrency > 0 {
		g.SetLimit(d.Concurrency)
	}
	g.Go(func() error { return d.openBucket(ctx, t, rec) })
	g.Go(func() error { return d.createDistribution(ctx, t, rec) })
	g.Go(func() error { return d.uploadIndex(ctx, t, rec) })

	err := g.Wait()
	return rec.report(), err
}

func (d *Deployer) createBucket(ctx context.Context, t Target, rec *recorder) error {
	start := d.now()
	out, err := d.Buckets.CreateBucket(ctx, CreateBucketInput(t))
	if err != nil {
		rec.fail(StepCreateBucket, err, d.now().Sub(start))
		return fmt.Errorf("failed to create bucket %s: %w", t.Bucket, err)
	}

	location := aws.ToString(out.Location)
	rec.ok(StepCreateBucket, location, d.now().Sub(start))
	return nil
}

// openBucket removes the public access block and, only once that succeeded,
// attaches the public-read policy.
func (d *Deployer) openBucket(ctx context.Context, t Target, rec *recorder) error {
	start := d.now()
	if _, err := d.Buckets.DeletePublicAccessBlock(ctx, DeletePublicAccessBlockInput(t)); err != nil {
		rec.fail(StepDeletePublicAccessBlock, err, d.now().Sub(start))
		rec.skip(StepPutBucketPolicy, "public access block was not removed")
		return fmt.Errorf("failed to delete public access block on %s: %w", t.Bucket, err)
	}
	rec.ok(StepDeletePublicAccessBlock, "", d.now().Sub(start))

	start = d.now()
	in, err := PutBucketPolicyInput(t)
	if err == nil {
		_, err = d.Buckets.PutBucketPolicy(ctx, in)
	}
	if err != nil {
		rec.fail(StepPutBucketPolicy, err, d.now().Sub(start))
		return fmt.Errorf("failed to put bucket policy on %s: %w", t.Bucket, err)
	}
	rec.ok(StepPutBucketPolicy, ObjectARN(t.Bucket), d.now().Sub(start))
	return nil
}

func (d *Deployer) createDistribution(ctx context.Context, t Target, rec *recorder) error {
	start := d.now()
	out, err := d.CDN.CreateDistribution(ctx, CreateDistributionInput(t, start))
	if err != nil {
		rec.fail(StepCreateDistribution, err, d.now().Sub(start))
		return fmt.Errorf("failed to create distribution for %s: %w", t.Bucket, err)
	}

	var domain, id string
	if out.Distribution != nil {
		domain = aws.ToString(out.Distribution.DomainName)
		id = aws.ToString(out.Distribution.Id)
	}
	rec.ok(StepCreateDistribution, domain, d.now().Sub(start), id)
	return nil
}

func (d *Deployer) uploadIndex(ctx context.Context, t Target, rec *recorder) error {
	start := d.now()
	out, err := d.Uploader.Upload(ctx, UploadInput(t))
	if err != nil {
		rec.fail(StepUploadObject, err, d.now().Sub(start))
		return fmt.Errorf("failed to upload %s to %s: %w", IndexKey, t.Bucket, err)
	}
	rec.ok(StepUploadObject, out.Location, d.now().Sub(start))
	return nil
}

// recorder collects step results from concurrent branches and logs each one
// as it lands.
type recorder struct {
	mu      sync.Mutex
	target  Target
	results map[Step]StepResult
}

func newRecorder(t Target) *recorder {
	return &recorder{target: t, results: make(map[Step]StepResult, len(Steps))}
}

func (r *recorder) put(res StepResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[res.Step] = res
}

// ok records a success. The optional id names the created resource.
func (r *recorder) ok(step Step, detail string, elapsed time.Duration, id ...string) {
	res := StepResult{Step: step, Status: StatusOK, Detail: detail, Elapsed: elapsed}
	if len(id) > 0 {
		res.ID = id[0]
	}
	r.put(res)

	fields := log.Fields{
		"bucket": r.target.Bucket,
		"step":   step,
	}
	if detail != "" {
		fields["detail"] = detail
	}
	if res.ID != "" {
		fields["id"] = res.ID
	}
	log.WithFields(fields).Infof("%s succeeded", step)
}

func (r *recorder) fail(step Step, err error, elapsed time.Duration) {
	code, msg := describe(err)
	r.put(StepResult{Step: step, Status: StatusFailed, Code: code, Error: msg, Elapsed: elapsed})
	log.WithFields(log.Fields{
		"bucket": r.target.Bucket,
		"step":   step,
	}).WithError(err).Errorf("%s failed", step)
}

func (r *recorder) skip(step Step, reason string) {
	r.put(StepResult{Step: step, Status: StatusSkipped, Detail: reason})
	log.WithFields(log.Fields{
		"bucket": r.target.Bucket,
		"step":   step,
	}).Debugf("%s skipped: %s", step, reason)
}

func (r *recorder) report() Report {
	r.mu.Lock()
	defer r.mu.Unlock()

	rep := Report{Target: r.target}
	for _, s := range Steps {
		if res, ok := r.results[s]; ok {
			rep.Steps = append(rep.Steps, res)
		}
	}
	return rep
}
