// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package site

import (
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// defaultRegion is the one region CreateBucket rejects as a location
// constraint.
const defaultRegion = "us-east-1"

// Target identifies where a site is deployed.
type Target struct {
	Bucket    string `json:"bucket" yaml:"bucket"`
	Region    string `json:"region" yaml:"region"`
	AccountID string `json:"account_id" yaml:"account_id"`
}

func CreateBucketInput(t Target) *s3.CreateBucketInput {
	in := &s3.CreateBucketInput{
		Bucket: aws.String(t.Bucket),
	}
	if t.Region != "" && t.Region != defaultRegion {
		in.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(t.Region),
		}
	}
	return in
}

func DeletePublicAccessBlockInput(t Target) *s3.DeletePublicAccessBlockInput {
	return &s3.DeletePublicAccessBlockInput{
		Bucket:              aws.String(t.Bucket),
		ExpectedBucketOwner: aws.String(t.AccountID),
	}
}

func PutBucketPolicyInput(t Target) (*s3.PutBucketPolicyInput, error) {
	policy, err := PublicReadPolicy(t.Bucket).JSON()
	if err != nil {
		return nil, err
	}
	return &s3.PutBucketPolicyInput{
		Bucket: aws.String(t.Bucket),
		Policy: aws.String(policy),
	}, nil
}

func CreateDistributionInput(t Target, now time.Time) *cloudfront.CreateDistributionInput {
	return &cloudfront.CreateDistributionInput{
		DistributionConfig: DistributionConfig(t.Bucket, now),
	}
}

// UploadInput is the put request for the index page. The body reader is
// fresh on every call.
func UploadInput(t Target) *s3.PutObjectInput {
	return &s3.PutObjectInput{
		Bucket:      aws.String(t.Bucket),
		Key:         aws.String(IndexKey),
		Body:        strings.NewReader(IndexHTML),
		ContentType: aws.String(IndexContentType),
	}
}

// UploadPlan is the printable form of UploadInput.
type UploadPlan struct {
	Bucket      string `json:"bucket" yaml:"bucket"`
	Key         string `json:"key" yaml:"key"`
	ContentType string `json:"content_type" yaml:"content_type"`
	Body        string `json:"body" yaml:"body"`
}

// Plan holds every request a deployment would send, in sequence order.
type Plan struct {
	Target                  Target                              `json:"target" yaml:"target"`
	CreateBucket            *s3.CreateBucketInput               `json:"create_bucket" yaml:"create_bucket"`
	DeletePublicAccessBlock *s3.DeletePublicAccessBlockInput    `json:"delete_public_access_block" yaml:"delete_public_access_block"`
	BucketPolicy            Document                            `json:"bucket_policy" yaml:"bucket_policy"`
	CreateDistribution      *cloudfront.CreateDistributionInput `json:"create_distribution" yaml:"create_distribution"`
	Upload                  UploadPlan                          `json:"upload" yaml:"upload"`
}

// NewPlan builds the requests for t without sending any of them.
func NewPlan(t Target, now time.Time) Plan {
	return Plan{
		Target:                  t,
		CreateBucket:            CreateBucketInput(t),
		DeletePublicAccessBlock: DeletePublicAccessBlockInput(t),
		BucketPolicy:            PublicReadPolicy(t.Bucket),
		CreateDistribution:      CreateDistributionInput(t, now),
		Upload: UploadPlan{
			Bucket:      t.Bucket,
			Key:         IndexKey,
			ContentType: IndexContentType,
			Body:        IndexHTML,
		},
	}
}
