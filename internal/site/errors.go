// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package site

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/smithy-go"
)

// describe extracts an error code and a human message from an SDK error.
// The code is empty for errors that did not come from an AWS API.
func describe(err error) (code string, message string) {
	if err == nil {
		return "", ""
	}

	var multierr manager.MultiUploadFailure
	if errors.As(err, &multierr) {
		return "MultiUploadFailure", fmt.Sprintf("upload %s: %s", multierr.UploadID(), multierr.Error())
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode(), apiErr.ErrorMessage()
	}

	return "", err.Error()
}
