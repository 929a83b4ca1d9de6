// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/urfave/cli/v3"

	"github.com/staranto/sitectl/internal/command"
)

// Minimal doc generator:
// - Walks the sitectl command tree
// - Generates:
//   - docs/commands/sitectl-<cmd>.md from names, usage and flags
//   - docs/man/share/man1/sitectl-<cmd>.1 via md2man
//   - docs/tldr/sitectl-<cmd>.md from the examples below

type example struct {
	Desc string
	Cmd  string
}

var examples = map[string][]example{
	"deploy": {
		{"Provision the bucket named in the environment", "sitectl deploy"},
		{"Provision a specific bucket and fail on any step error", "sitectl deploy --bucket {{my-site}} --region {{eu-west-1}} --strict"},
		{"Use a stored argument set and print the report as JSON", "sitectl deploy @{{prod}} -o json"},
	},
	"plan": {
		{"Show every request deploy would send", "sitectl plan --bucket {{my-site}}"},
		{"Show the requests as JSON", "sitectl plan -o json"},
	},
	"policy": {
		{"Print the public-read policy for a bucket", "sitectl policy --bucket {{my-site}}"},
	},
	"completion": {
		{"Load bash completion into the current shell", "source <(sitectl completion bash)"},
	},
}

func main() {
	var (
		repoRoot           string
		writeOnlyIfChanged bool
	)

	flag.StringVar(&repoRoot, "root", ".", "repo root (default current dir)")
	flag.BoolVar(&writeOnlyIfChanged, "only-if-changed", true, "only write files if content changed")
	flag.Parse()

	commandsDir := filepath.Join(repoRoot, "docs", "commands")
	manOutDir := filepath.Join(repoRoot, "docs", "man", "share", "man1")
	tldrOutDir := filepath.Join(repoRoot, "docs", "tldr")

	for _, d := range []string{commandsDir, manOutDir, tldrOutDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			fatalf("creating output dir %s: %v", d, err)
		}
	}

	app, err := command.InitApp(context.Background(), []string{"sitectl"})
	if err != nil {
		fatalf("building command tree: %v", err)
	}

	var processed int
	for _, cmd := range app.Commands {
		name := "sitectl-" + cmd.Name
		md := renderMarkdown(cmd)

		if err := writeFileIfChanged(filepath.Join(commandsDir, name+".md"), md, writeOnlyIfChanged); err != nil {
			fatalf("writing markdown for %s: %v", cmd.Name, err)
		}

		manPath := filepath.Join(manOutDir, name+".1")
		if err := writeFileIfChanged(manPath, md2man.Render(md), writeOnlyIfChanged); err != nil {
			fatalf("writing man page for %s: %v", cmd.Name, err)
		}

		tldr := buildTLDR(cmd.Name, cmd.Usage, examples[cmd.Name])
		tldrPath := filepath.Join(tldrOutDir, name+".md")
		if err := writeFileIfChanged(tldrPath, []byte(tldr), writeOnlyIfChanged); err != nil {
			fatalf("writing TLDR for %s: %v", cmd.Name, err)
		}

		processed++
	}

	if processed == 0 {
		fatalf("no commands found")
	}
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

func writeFileIfChanged(path string, new []byte, onlyIfChanged bool) error {
	if !onlyIfChanged {
		return os.WriteFile(path, new, 0o644)
	}
	old, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.WriteFile(path, new, 0o644)
		}
		return err
	}
	if bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(new)) {
		return nil
	}
	return os.WriteFile(path, new, 0o644)
}

// renderMarkdown documents one subcommand in the layout md2man expects: a
// title line followed by level-two sections.
func renderMarkdown(cmd *cli.Command) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "# sitectl-%s 1\n\n", cmd.Name)
	b.WriteString("## NAME\n\n")
	fmt.Fprintf(&b, "sitectl-%s - %s\n\n", cmd.Name, cmd.Usage)

	if cmd.UsageText != "" {
		b.WriteString("## SYNOPSIS\n\n")
		fmt.Fprintf(&b, "`%s`\n\n", cmd.UsageText)
	}

	if len(cmd.Flags) > 0 {
		b.WriteString("## OPTIONS\n\n")
		for _, f := range cmd.Flags {
			b.WriteString(flagLine(f))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if exs := examples[cmd.Name]; len(exs) > 0 {
		b.WriteString("## EXAMPLES\n\n")
		for _, ex := range exs {
			fmt.Fprintf(&b, "%s:\n\n    %s\n\n", ex.Desc, sanitizeCommand(ex.Cmd))
		}
	}

	return b.Bytes()
}

// flagLine renders "- `--name`, `-n`: usage (env VAR)".
func flagLine(f cli.Flag) string {
	var names []string
	for _, n := range f.Names() {
		if len(n) == 1 {
			names = append(names, "`-"+n+"`")
		} else {
			names = append(names, "`--"+n+"`")
		}
	}

	line := "- " + strings.Join(names, ", ")
	if u, ok := f.(interface{ GetUsage() string }); ok && u.GetUsage() != "" {
		line += ": " + u.GetUsage()
	}
	if e, ok := f.(interface{ GetEnvVars() []string }); ok {
		if vars := e.GetEnvVars(); len(vars) > 0 {
			line += " (env " + strings.Join(vars, ", ") + ")"
		}
	}
	return line
}

func buildTLDR(cmd, short string, exs []example) string {
	var b strings.Builder
	// Header
	b.WriteString("# sitectl-" + cmd + "\n\n")
	if short != "" {
		b.WriteString("> " + strings.ToUpper(short[:1]) + short[1:] + ".\n")
	} else {
		b.WriteString("> sitectl " + cmd + "\n")
	}
	b.WriteString("> More information: https://github.com/staranto/sitectl.\n\n")

	if len(exs) == 0 {
		// Fallback examples
		b.WriteString("- Show help for the command:\n\n")
		b.WriteString("`sitectl " + cmd + " --help`\n")
		return b.String()
	}

	for i, ex := range exs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + strings.TrimSpace(ex.Desc) + ":\n\n")
		b.WriteString("`" + sanitizeCommand(ex.Cmd) + "`\n")
	}
	return b.String()
}

func sanitizeCommand(s string) string {
	// Compress runs of whitespace
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
