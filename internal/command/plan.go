// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/staranto/sitectl/internal/meta"
	"github.com/staranto/sitectl/internal/output"
	"github.com/staranto/sitectl/internal/site"
)

// PlanCommandAction prints every request deploy would send without sending
// any of them.
func PlanCommandAction(ctx context.Context, cmd *cli.Command) error {
	settings := SettingsFromCommand(cmd)
	if err := settings.Validate(); err != nil {
		return err
	}

	plan := site.NewPlan(TargetFromSettings(settings), time.Now())

	w := writer(cmd)
	return output.WritePlan(w, plan, OutputOptions(cmd, w))
}

// PlanCommandBuilder constructs the cli.Command definition for the "plan"
// command.
func PlanCommandBuilder(meta meta.Meta) *cli.Command {
	src := meta.Config.Source

	flags := NewTargetFlags("plan", src)
	flags = append(flags, NewOutputFlags("plan", src)...)

	return &cli.Command{
		Name:      "plan",
		Usage:     "show the requests deploy would send",
		UsageText: "sitectl plan [@set] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  flags,
		Action: PlanCommandAction,
	}
}
