// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package site

import (
	"encoding/json"
	"fmt"
)

const (
	policyVersion = "2012-10-17"
	publicReadSid = "PublicReadGetObject"
)

// Statement is a single bucket policy statement.
type Statement struct {
	Sid       string   `json:"Sid"`
	Effect    string   `json:"Effect"`
	Principal string   `json:"Principal"`
	Action    []string `json:"Action"`
	Resource  []string `json:"Resource"`
}

// Document is an S3 bucket policy.
type Document struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

// ObjectARN returns the ARN matching every object in bucket.
func ObjectARN(bucket string) string {
	return fmt.Sprintf("arn:aws:s3:::%s/*", bucket)
}

// PublicReadPolicy grants s3:GetObject on every object in bucket to anyone.
func PublicReadPolicy(bucket string) Document {
	return Document{
		Version: policyVersion,
		Statement: []Statement{{
			Sid:       publicReadSid,
			Effect:    "Allow",
			Principal: "*",
			Action:    []string{"s3:GetObject"},
			Resource:  []string{ObjectARN(bucket)},
		}},
	}
}

// JSON renders the document the way PutBucketPolicy expects it.
func (d Document) JSON() (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("failed to marshal bucket policy: %w", err)
	}
	return string(b), nil
}
