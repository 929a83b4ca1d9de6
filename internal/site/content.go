// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package site

const (
	// IndexKey is the object key of the uploaded page and the distribution's
	// default root object.
	IndexKey = "index.html"

	IndexContentType = "text/html"

	IndexHTML = `
            <h4>Task 2 (Serve SPA in AWS S3 and Cloudfront Services)</h4>
            <h3>Automated Deployment</h3>
        `
)
