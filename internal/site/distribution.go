// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package site

import (
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront/types"
)

const (
	// OriginID names the single S3 origin; the default cache behavior targets it.
	OriginID = "S3Origin"

	distributionComment = "CloudFront Distribution"

	MinTTL     int64 = 0
	DefaultTTL int64 = 86400    // one day
	MaxTTL     int64 = 31536000 // one year
)

// OriginDomain is the S3 REST endpoint CloudFront fetches from.
func OriginDomain(bucket string) string {
	return fmt.Sprintf("%s.s3.amazonaws.com", bucket)
}

// CallerReference derives the idempotency token CloudFront requires from the
// request time, in Unix milliseconds.
func CallerReference(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}

// DistributionConfig fronts bucket with a distribution that serves
// index.html at the root, forwards no query strings or cookies, redirects
// HTTP to HTTPS and only allows GET and HEAD.
func DistributionConfig(bucket string, now time.Time) *types.DistributionConfig {
	methods := []types.Method{types.MethodGet, types.MethodHead}

	return &types.DistributionConfig{
		CallerReference:   aws.String(CallerReference(now)),
		Comment:           aws.String(distributionComment),
		DefaultRootObject: aws.String(IndexKey),
		Enabled:           aws.Bool(true),
		Origins: &types.Origins{
			Quantity: aws.Int32(1),
			Items: []types.Origin{{
				Id:         aws.String(OriginID),
				DomainName: aws.String(OriginDomain(bucket)),
				S3OriginConfig: &types.S3OriginConfig{
					OriginAccessIdentity: aws.String(""),
				},
			}},
		},
		DefaultCacheBehavior: &types.DefaultCacheBehavior{
			TargetOriginId: aws.String(OriginID),
			ForwardedValues: &types.ForwardedValues{
				QueryString: aws.Bool(false),
				Cookies: &types.CookiePreference{
					Forward: types.ItemSelectionNone,
				},
			},
			ViewerProtocolPolicy: types.ViewerProtocolPolicyRedirectToHttps,
			MinTTL:               aws.Int64(MinTTL),
			DefaultTTL:           aws.Int64(DefaultTTL),
			MaxTTL:               aws.Int64(MaxTTL),
			AllowedMethods: &types.AllowedMethods{
				Quantity: aws.Int32(int32(len(methods))),
				Items:    methods,
			},
		},
	}
}
