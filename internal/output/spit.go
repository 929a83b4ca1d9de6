// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/staranto/sitectl/internal/config"
	"github.com/staranto/sitectl/internal/site"
)

// Formats accepted by --output.
var Formats = []string{"text", "json", "yaml"}

// Options control how results are rendered.
type Options struct {
	Format string
	Color  bool
	Titles bool
}

// IsTerminal reports whether f is attached to a terminal. Color is only
// worth emitting when it is.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Spit writes v as JSON or YAML. Any other format falls back to YAML, which is
// the most readable of the two for nested request payloads.
func Spit(w io.Writer, v any, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
	default:
		// SDK request types embed unexported markers that yaml.v3 cannot
		// reflect over, so YAML is produced from the JSON form.
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		var plain any
		if err := yaml.Unmarshal(raw, &plain); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}

		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(plain); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
	}
	return nil
}

// WriteReport renders a deployment report.
func WriteReport(w io.Writer, rep site.Report, opts Options) error {
	switch opts.Format {
	case "json", "yaml":
		return Spit(w, rep, opts.Format)
	default:
		TableWriter(w, rep, opts)
		fmt.Fprintln(w, Summary(rep))
		return nil
	}
}

// WritePlan renders the requests a deployment would send.
func WritePlan(w io.Writer, plan site.Plan, opts Options) error {
	return Spit(w, plan, opts.Format)
}

// Summary is the one-line tally printed after the text table.
func Summary(rep site.Report) string {
	return fmt.Sprintf("%s: %d ok, %d failed, %d skipped",
		rep.Target.Bucket,
		rep.Count(site.StatusOK),
		rep.Count(site.StatusFailed),
		rep.Count(site.StatusSkipped))
}

// FormatElapsed renders a step duration with an SI prefix, e.g. "312 ms".
// Skipped steps have no duration and render as "-".
func FormatElapsed(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return humanize.SIWithDigits(d.Seconds(), 1, "s")
}

// TableWriter renders the report in a tabular form honoring color and titles
// options.
func TableWriter(w io.Writer, rep site.Report, opts Options) {
	if len(rep.Steps) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
		failedStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor, failedColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
		failedStyle = failedStyle.Foreground(lipgloss.Color(failedColor))
	}

	pad, _ := config.GetInt("padding", 2)

	rows := make([][]string, 0, len(rep.Steps))
	for _, s := range rep.Steps {
		rows = append(rows, []string{
			string(s.Step),
			string(s.Status),
			stepDetail(s),
			FormatElapsed(s.Elapsed),
		})
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row >= 0 && row < len(rep.Steps) && rep.Steps[row].Status == site.StatusFailed:
				style = failedStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers("STEP", "STATUS", "DETAIL", "ELAPSED").BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// stepDetail merges the detail, id and error columns into one cell.
func stepDetail(s site.StepResult) string {
	var parts []string
	if s.Detail != "" {
		parts = append(parts, s.Detail)
	}
	if s.ID != "" {
		parts = append(parts, "("+s.ID+")")
	}
	if s.Error != "" {
		msg := s.Error
		if s.Code != "" {
			msg = s.Code + ": " + msg
		}
		parts = append(parts, msg)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string, failed string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	failed, _ = config.GetString(fmt.Sprintf("%s.failed", key), "#ff5f5f")
	return
}
