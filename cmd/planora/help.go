package main

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/ui"
	"github.com/spf13/cobra"
)

var (
	// Group titles such as "Planning:" or "Flags:".
	reHeading = regexp.MustCompile(`(?m)^([A-Z][^\n]*:)[ \t]*$`)
	// Subcommand rows: two-space indent, name, two or more spaces.
	reSubcommand = regexp.MustCompile(`(?m)^(  )(\S+)(  )`)
	reFlagValue  = regexp.MustCompile(`(--?\S+\s+)(string|int|duration|strings)`)
	reDefaultVal = regexp.MustCompile(`\(default [^)]*\)`)
)

// colorizedHelpFunc renders cobra's usage text through colorizeHelp when
// stdout is a colour terminal.
func colorizedHelpFunc() func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if !ui.ShouldUseColor() {
			_ = cmd.Usage()
			return
		}
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		_ = cmd.Usage()
		cmd.SetOut(out)
		fmt.Fprint(out, colorizeHelp(buf.String()))
	}
}

func colorizeHelp(s string) string {
	s = reHeading.ReplaceAllStringFunc(s, func(m string) string {
		if strings.HasPrefix(m, "Usage:") {
			return m
		}
		return ui.RenderAccent(strings.TrimSpace(m))
	})
	s = reSubcommand.ReplaceAllStringFunc(s, func(m string) string {
		p := reSubcommand.FindStringSubmatch(m)
		return p[1] + ui.RenderCommand(p[2]) + p[3]
	})
	s = reFlagValue.ReplaceAllStringFunc(s, func(m string) string {
		p := reFlagValue.FindStringSubmatch(m)
		return p[1] + ui.RenderMuted(p[2])
	})
	return reDefaultVal.ReplaceAllStringFunc(s, ui.RenderMuted)
}
