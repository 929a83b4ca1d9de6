// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/sitectl/internal/command"
	"github.com/staranto/sitectl/internal/config"
	mylog "github.com/staranto/sitectl/internal/log"
	"github.com/staranto/sitectl/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	// Values already in the environment win over .env.
	if err := config.LoadDotEnv(); err != nil {
		log.WithError(err).Warn("ignoring .env")
	}

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	} else {
		args = mangleArguments(args)
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

// mangleArguments expands an @set argument into the list stored under
// "<command>.<set>" in the config file. Without an explicit @set the
// "defaults" set is used, if there is one. Expanded args are placed before
// the explicit ones so the command line wins.
func mangleArguments(args []string) []string {
	// We know the first two args are going to be the executable and command.
	preamble := make([]string, 2)
	copy(preamble, args[:2])

	// Short-circuit for --help/-h. If help is requested, just keep the preamble
	// and add --help flag.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return append(preamble, "--help")
		}
	}

	// Flags before the command (e.g. --version) leave nothing to expand.
	if strings.HasPrefix(args[1], "-") {
		return args
	}

	set := "defaults"
	rest := make([]string, 0, len(args)-2)
	for _, a := range args[2:] {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			set = a[1:]
			continue
		}
		rest = append(rest, a)
	}

	var expanded []string
	setArgs, err := config.GetStringSlice(args[1] + "." + set)
	if err != nil && set != "defaults" {
		log.WithError(err).Warnf("argument set @%s not found", set)
	}
	for _, arg := range setArgs {
		expanded = append(expanded, strings.Fields(arg)...)
	}

	out := append(preamble, expanded...)
	out = append(out, rest...)

	log.Debugf("set=%s, args=%v", set, out)
	return out
}
