// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package site provisions a static website on S3 and CloudFront. It builds
// the request payloads for each step and runs the deployment sequence,
// collecting the outcome of every step in a Report.
package site
