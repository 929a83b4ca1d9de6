// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/staranto/sitectl/internal/config"
	"github.com/staranto/sitectl/internal/meta"
	"github.com/staranto/sitectl/internal/site"
)

// PolicyCommandAction prints the public-read bucket policy for the bucket.
func PolicyCommandAction(ctx context.Context, cmd *cli.Command) error {
	bucket := SettingsFromCommand(cmd).Bucket
	if bucket == "" {
		return fmt.Errorf("%w: bucket", config.ErrMissingSetting)
	}

	doc, err := site.PublicReadPolicy(bucket).JSON()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(writer(cmd), doc)
	return err
}

// PolicyCommandBuilder constructs the cli.Command definition for the "policy"
// command. Only the bucket matters here, so region and account id are not
// offered.
func PolicyCommandBuilder(meta meta.Meta) *cli.Command {
	flags := NewTargetFlags("policy", meta.Config.Source)[:1]

	return &cli.Command{
		Name:      "policy",
		Usage:     "print the public-read bucket policy",
		UsageText: "sitectl policy [--bucket NAME]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  flags,
		Action: PolicyCommandAction,
	}
}
