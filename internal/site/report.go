// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package site

import "time"

type Step string

const (
	StepCreateBucket            Step = "create-bucket"
	StepDeletePublicAccessBlock Step = "delete-public-access-block"
	StepPutBucketPolicy         Step = "put-bucket-policy"
	StepCreateDistribution      Step = "create-distribution"
	StepUploadObject            Step = "upload-object"
)

// Steps lists every step in sequence order. Reports follow this order no
// matter in which order the branches finished.
var Steps = []Step{
	StepCreateBucket,
	StepDeletePublicAccessBlock,
	StepPutBucketPolicy,
	StepCreateDistribution,
	StepUploadObject,
}

type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// StepResult is the outcome of one remote call.
type StepResult struct {
	Step    Step          `json:"step" yaml:"step"`
	Status  Status        `json:"status" yaml:"status"`
	Detail  string        `json:"detail,omitempty" yaml:"detail,omitempty"`
	ID      string        `json:"id,omitempty" yaml:"id,omitempty"`
	Code    string        `json:"code,omitempty" yaml:"code,omitempty"`
	Error   string        `json:"error,omitempty" yaml:"error,omitempty"`
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`
}

// Report is the outcome of a deployment.
type Report struct {
	Target Target       `json:"target" yaml:"target"`
	Steps  []StepResult `json:"steps" yaml:"steps"`
}

// Result returns the result recorded for step.
func (r Report) Result(step Step) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Step == step {
			return s, true
		}
	}
	return StepResult{}, false
}

// Failed reports whether any step failed.
func (r Report) Failed() bool {
	for _, s := range r.Steps {
		if s.Status == StatusFailed {
			return true
		}
	}
	return false
}

// Count returns how many steps ended with status.
func (r Report) Count(status Status) int {
	n := 0
	for _, s := range r.Steps {
		if s.Status == status {
			n++
		}
	}
	return n
}
