// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/staranto/sitectl/internal/config"
	"github.com/staranto/sitectl/internal/meta"
	"github.com/staranto/sitectl/internal/output"
	"github.com/staranto/sitectl/internal/site"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// SettingsFromCommand starts from the AWS_* environment and lets any target
// flag that ended up with a value (from the command line or the config file)
// take precedence.
func SettingsFromCommand(cmd *cli.Command) config.Settings {
	s := config.FromEnv()
	if v := cmd.String("bucket"); v != "" {
		s.Bucket = v
	}
	if v := cmd.String("region"); v != "" {
		s.Region = v
	}
	if v := cmd.String("account-id"); v != "" {
		s.AccountID = v
	}
	return s
}

// TargetFromSettings maps validated settings onto a deployment target.
func TargetFromSettings(s config.Settings) site.Target {
	return site.Target{
		Bucket:    s.Bucket,
		Region:    s.Region,
		AccountID: s.AccountID,
	}
}

// OutputOptions reads the output flags. Color is dropped when the writer is
// not a terminal.
func OutputOptions(cmd *cli.Command, w io.Writer) output.Options {
	color := cmd.Bool("color")
	if f, ok := w.(*os.File); !ok || !output.IsTerminal(f) {
		color = false
	}
	return output.Options{
		Format: cmd.String("output"),
		Color:  color,
		Titles: cmd.Bool("titles"),
	}
}

// writer is where command results go.
func writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}
