// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"path/filepath"
	"testing"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestRenderMarkdown(t *testing.T) {
	cmd := &cli.Command{
		Name:      "policy",
		Usage:     "print the public-read bucket policy",
		UsageText: "sitectl policy [--bucket NAME]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "bucket",
				Aliases: []string{"b"},
				Usage:   "bucket name",
				Sources: cli.EnvVars("AWS_BUCKET"),
			},
		},
	}

	md := string(renderMarkdown(cmd))
	assert.Contains(t, md, "# sitectl-policy 1")
	assert.Contains(t, md, "sitectl-policy - print the public-read bucket policy")
	assert.Contains(t, md, "`sitectl policy [--bucket NAME]`")
	assert.Contains(t, md, "- `--bucket`, `-b`: bucket name (env AWS_BUCKET)")
	assert.Contains(t, md, "## EXAMPLES")

	man := string(md2man.Render([]byte(md)))
	assert.Contains(t, man, ".TH")
}

func TestBuildTLDR(t *testing.T) {
	got := buildTLDR("plan", "show the requests deploy would send", examples["plan"])
	assert.Contains(t, got, "# sitectl-plan")
	assert.Contains(t, got, "> Show the requests deploy would send.")
	assert.Contains(t, got, "`sitectl plan -o json`")

	fallback := buildTLDR("nope", "", nil)
	assert.Contains(t, fallback, "`sitectl nope --help`")
}

func TestWriteFileIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.md")

	require.NoError(t, writeFileIfChanged(path, []byte("one\n"), true))
	info, err := os.Stat(path)
	require.NoError(t, err)

	// Same content modulo trailing whitespace is left alone.
	require.NoError(t, writeFileIfChanged(path, []byte("one\n\n"), true))
	again, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), again.ModTime())

	require.NoError(t, writeFileIfChanged(path, []byte("two\n"), true))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two\n", string(b))
}
