package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/modot/pkg/commands"
	"github.com/arthur-debert/modot/pkg/install"
)

var (
	enabledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// formatBold returns the string formatted as bold using pterm
func formatBold(s string) string {
	// Only apply formatting if output is a terminal
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return s
	}
	return pterm.Bold.Sprint(s)
}

// styled applies a lipgloss style only when stdout is a terminal, so
// piped output stays plain text.
func styled(style lipgloss.Style, s string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return s
	}
	return style.Render(s)
}

// renderList prints the registry view ascending by priority, one mod per
// line with its enabled state.
func renderList(w io.Writer, result *commands.ListResult) {
	if len(result.Entries) == 0 {
		fmt.Fprintln(w, MsgNoMods)
		return
	}
	if result.GlobalDisabled {
		fmt.Fprintln(w, styled(noticeStyle, MsgGlobalDisabled))
	}
	for _, entry := range result.Entries {
		state := styled(enabledStyle, "enabled ")
		if !entry.Enabled {
			state = styled(disabledStyle, "disabled")
		}
		fmt.Fprintf(w, "%3d  %s  %s\n", entry.Priority, state, formatBold(entry.Name))
		if entry.Author != "" {
			fmt.Fprintf(w, "     %s\n", styled(disabledStyle, "by "+entry.Author))
		}
	}
}

// renderReport prints the per-mod outcomes of one archive installation.
func renderReport(cmd *cobra.Command, report *install.Report) {
	outcomes := report.Outcomes()
	if len(outcomes) == 0 {
		cmd.Println(MsgNothingInstalled)
		return
	}
	for _, outcome := range outcomes {
		switch o := outcome.(type) {
		case install.Clean:
			cmd.Printf(MsgInstalled, formatBold(o.Name))
		case install.Conflict:
			cmd.Printf(MsgConflict, formatBold(o.Name), o.StagedPath)
		case install.Messy:
			cmd.Printf(MsgMessy, o.StagedPath)
		}
	}
	for _, failure := range report.Failures {
		cmd.Printf(MsgInstallFailure, failure.Name, failure.Err)
	}
}
