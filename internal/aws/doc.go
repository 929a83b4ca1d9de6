// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package aws contains AWS SDK v2 helpers: config loading with optional
// overrides and constructors for the S3, uploader and CloudFront clients.
package aws
