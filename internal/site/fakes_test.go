// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package site

import (
	"context"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	cftypes "github.com/aws/aws-sdk-go-v2/service/cloudfront/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// callLog records the order in which fake API calls were issued.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, name)
}

func (l *callLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

func (l *callLog) count(name string) int {
	n := 0
	for _, c := range l.snapshot() {
		if c == name {
			n++
		}
	}
	return n
}

func (l *callLog) index(name string) int {
	for i, c := range l.snapshot() {
		if c == name {
			return i
		}
	}
	return -1
}

type fakeBuckets struct {
	log *callLog

	createErr       error
	accessBlockErr  error
	policyErr       error
	accessBlockWait <-chan struct{}

	mu       sync.Mutex
	createIn *s3.CreateBucketInput
	accessIn *s3.DeletePublicAccessBlockInput
	policyIn *s3.PutBucketPolicyInput
}

func (f *fakeBuckets) CreateBucket(_ context.Context, in *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	f.log.add("CreateBucket")
	f.mu.Lock()
	f.createIn = in
	f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &s3.CreateBucketOutput{Location: aws.String("/" + aws.ToString(in.Bucket))}, nil
}

func (f *fakeBuckets) DeletePublicAccessBlock(ctx context.Context, in *s3.DeletePublicAccessBlockInput, _ ...func(*s3.Options)) (*s3.DeletePublicAccessBlockOutput, error) {
	if f.accessBlockWait != nil {
		select {
		case <-f.accessBlockWait:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.log.add("DeletePublicAccessBlock")
	f.mu.Lock()
	f.accessIn = in
	f.mu.Unlock()
	if f.accessBlockErr != nil {
		return nil, f.accessBlockErr
	}
	return &s3.DeletePublicAccessBlockOutput{}, nil
}

func (f *fakeBuckets) PutBucketPolicy(_ context.Context, in *s3.PutBucketPolicyInput, _ ...func(*s3.Options)) (*s3.PutBucketPolicyOutput, error) {
	f.log.add("PutBucketPolicy")
	f.mu.Lock()
	f.policyIn = in
	f.mu.Unlock()
	if f.policyErr != nil {
		return nil, f.policyErr
	}
	return &s3.PutBucketPolicyOutput{}, nil
}

type fakeCDN struct {
	log  *callLog
	err  error
	done chan struct{}

	mu sync.Mutex
	in *cloudfront.CreateDistributionInput
}

func (f *fakeCDN) CreateDistribution(_ context.Context, in *cloudfront.CreateDistributionInput, _ ...func(*cloudfront.Options)) (*cloudfront.CreateDistributionOutput, error) {
	f.log.add("CreateDistribution")
	f.mu.Lock()
	f.in = in
	f.mu.Unlock()
	if f.done != nil {
		defer close(f.done)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &cloudfront.CreateDistributionOutput{
		Distribution: &cftypes.Distribution{
			Id:         aws.String("E2EXAMPLE"),
			DomainName: aws.String("d111111abcdef8.cloudfront.net"),
		},
	}, nil
}

type fakeUploader struct {
	log  *callLog
	err  error
	done chan struct{}

	mu   sync.Mutex
	in   *s3.PutObjectInput
	body string
}

func (f *fakeUploader) Upload(_ context.Context, in *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	f.log.add("Upload")
	b, _ := io.ReadAll(in.Body)
	f.mu.Lock()
	f.in = in
	f.body = string(b)
	f.mu.Unlock()
	if f.done != nil {
		defer close(f.done)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &manager.UploadOutput{
		Location: "https://" + aws.ToString(in.Bucket) + ".s3.amazonaws.com/" + aws.ToString(in.Key),
	}, nil
}

type fixture struct {
	log      *callLog
	buckets  *fakeBuckets
	cdn      *fakeCDN
	uploader *fakeUploader
}

func newFixture() *fixture {
	l := &callLog{}
	return &fixture{
		log:      l,
		buckets:  &fakeBuckets{log: l},
		cdn:      &fakeCDN{log: l},
		uploader: &fakeUploader{log: l},
	}
}

func (f *fixture) deployer() *Deployer {
	return &Deployer{
		Buckets:  f.buckets,
		CDN:      f.cdn,
		Uploader: f.uploader,
	}
}
