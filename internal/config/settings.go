// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/joho/godotenv"
)

// Environment variables read by FromEnv.
const (
	EnvAccessKeyID     = "AWS_ACCESS_KEY_ID"
	EnvSecretAccessKey = "AWS_SECRET_ACCESS_KEY"
	EnvRegion          = "AWS_REGION"
	EnvBucket          = "AWS_BUCKET"
	EnvAccountID       = "AWS_ACCOUNT_ID"
)

// Settings are the deployment parameters. They are read once at startup and
// never mutated afterwards.
type Settings struct {
	AccessKeyID     string `json:"-" yaml:"-"`
	SecretAccessKey string `json:"-" yaml:"-"`
	Region          string `json:"region" yaml:"region"`
	Bucket          string `json:"bucket" yaml:"bucket"`
	AccountID       string `json:"account_id" yaml:"account_id"`
}

// ErrMissingSetting is wrapped by Validate for every empty required field.
var ErrMissingSetting = errors.New("missing required setting")

// LoadDotEnv loads KEY=VALUE pairs from the given files (default ".env")
// into the process environment. Variables already set are left alone and a
// missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}

	log.Debugf("loading environment from %v", present)
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("failed to load %v: %w", present, err)
	}
	return nil
}

// FromEnv builds Settings from the AWS_* environment variables.
func FromEnv() Settings {
	return Settings{
		AccessKeyID:     strings.TrimSpace(os.Getenv(EnvAccessKeyID)),
		SecretAccessKey: strings.TrimSpace(os.Getenv(EnvSecretAccessKey)),
		Region:          strings.TrimSpace(os.Getenv(EnvRegion)),
		Bucket:          strings.TrimSpace(os.Getenv(EnvBucket)),
		AccountID:       strings.TrimSpace(os.Getenv(EnvAccountID)),
	}
}

// HasStaticCredentials reports whether both halves of an access key are set.
func (s Settings) HasStaticCredentials() bool {
	return s.AccessKeyID != "" && s.SecretAccessKey != ""
}

// Validate checks that bucket, region and account id are non-empty.
func (s Settings) Validate() error {
	var errs []error
	required := []struct {
		name  string
		value string
	}{
		{"bucket", s.Bucket},
		{"region", s.Region},
		{"account id", s.AccountID},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingSetting, r.name))
		}
	}
	return errors.Join(errs...)
}
