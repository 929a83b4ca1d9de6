// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/sitectl/internal/config"
)

// NewTargetFlags constructs the flags naming the deployment target. Each one
// is sourced from its AWS_* environment variable first, then from the config
// file under "<ns>.<flag>" and "<flag>".
func NewTargetFlags(ns string, path string) []cli.Flag {
	bucket := &cli.StringFlag{
		Name:    "bucket",
		Aliases: []string{"b"},
		Usage:   "name of the bucket to create and serve from",
		Sources: cli.NewValueSourceChain(cli.EnvVar(config.EnvBucket)),
		Validator: func(value string) error {
			return FlagValidators(value, JammedFlagValidator)
		},
	}

	region := &cli.StringFlag{
		Name:    "region",
		Aliases: []string{"r"},
		Usage:   "AWS region of the bucket",
		Sources: cli.NewValueSourceChain(cli.EnvVar(config.EnvRegion)),
		Validator: func(value string) error {
			return FlagValidators(value, JammedFlagValidator)
		},
	}

	account := &cli.StringFlag{
		Name:    "account-id",
		Usage:   "AWS account id expected to own the bucket",
		Sources: cli.NewValueSourceChain(cli.EnvVar(config.EnvAccountID)),
		Validator: func(value string) error {
			return FlagValidators(value, JammedFlagValidator, AccountIDValidator)
		},
	}

	return []cli.Flag{
		NameSpacedValueChainFlagFromConfigFile(ns, path, bucket),
		NameSpacedValueChainFlagFromConfigFile(ns, path, region),
		NameSpacedValueChainFlagFromConfigFile(ns, path, account),
	}
}

// NewOutputFlags constructs the flags that control rendering.
func NewOutputFlags(ns string, path string) []cli.Flag {
	return []cli.Flag{
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"color", altsrc.StringSourcer(path)),
				yaml.YAML("color", altsrc.StringSourcer(path)),
			),
			Value: false,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"output", altsrc.StringSourcer(path)),
				yaml.YAML("output", altsrc.StringSourcer(path)),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"titles", altsrc.StringSourcer(path)),
				yaml.YAML("titles", altsrc.StringSourcer(path)),
			),
			Value: false,
		},
	}
}

// NewDeployFlags constructs the flags only the deploy command takes.
func NewDeployFlags(ns string, path string) []cli.Flag {
	profile := &cli.StringFlag{
		Name:    "profile",
		Aliases: []string{"p"},
		Usage:   "shared config profile used when no access key is in the environment",
		Sources: cli.NewValueSourceChain(cli.EnvVar("AWS_PROFILE")),
	}

	return []cli.Flag{
		NameSpacedValueChainFlagFromConfigFile(ns, path, profile),
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters applied to the report rows",
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		},
		&cli.BoolFlag{
			Name:        "strict",
			Usage:       "exit non-zero when any step fails",
			HideDefault: true,
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "bound the whole deployment, 0 for no limit",
			Value: 0,
			Validator: func(value time.Duration) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
		&cli.IntFlag{
			Name:  "max-attempts",
			Usage: "attempts per AWS request including the first, 0 for the SDK default",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"max-attempts", altsrc.StringSourcer(path)),
				yaml.YAML("max-attempts", altsrc.StringSourcer(path)),
			),
			Value: 0,
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
		&cli.IntFlag{
			Name:  "concurrency",
			Usage: "how many independent steps may run at once, 0 for no limit",
			Value: 0,
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
