package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/ui"
)

// Global flags
var (
	cfgFile string
	noColor bool
)

// rootCmd runs the dashboard when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "sysmon",
	Short: "Live system monitor: metrics backend and terminal dashboard",
	Long: `sysmon shows live CPU, memory and process metrics in your terminal.

Run 'sysmon serve' on the machine you want to watch, then 'sysmon' (or
'sysmon dashboard') to open the dashboard against it. 'sysmon run' does
both in one process.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor || os.Getenv("NO_COLOR") != "" {
			ui.DisableColors()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(dashboardURLFlag, dashboardIntervalFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .sysmon.yaml, then ~/.config/sysmon/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	addDashboardFlags(rootCmd)
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		handleError(os.Stdout, os.Stderr, err)
		os.Exit(1)
	}
}

// handleError prints err for humans, or as a JSON envelope in machine mode.
func handleError(stdout, stderr io.Writer, err error) {
	if MachineMode() {
		_ = WriteJSONFromError(stdout, err)
		return
	}

	if isUnknownCommandError(err) {
		fmt.Fprintln(stderr, ui.ErrorStyle().Render(ui.SymbolFail+" "+err.Error()))
		if name := extractUnknownCommand(err); name != "" {
			if suggestions := rootCmd.SuggestionsFor(name); len(suggestions) > 0 {
				fmt.Fprintf(stderr, "\n  Did you mean %s?\n", strings.Join(suggestions, ", "))
			}
		}
		fmt.Fprintln(stderr, "\n  Run 'sysmon --help' for usage.")
		return
	}

	var smErr *errors.Error
	if stderrors.As(err, &smErr) {
		fmt.Fprint(stderr, smErr.Error())
		return
	}
	fmt.Fprintln(stderr, ui.SymbolFail+" "+err.Error())
}

// isUnknownCommandError reports whether cobra rejected the command line.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}

// extractUnknownCommand pulls the command name out of cobra's
// `unknown command "foo" for "sysmon"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

// loadConfig loads the config selected by --config (or discovered from the
// working directory) and applies its output settings.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}
	applyColorMode(cfg.Output.Color)
	return cfg, nil
}

// applyColorMode maps output.color onto the lipgloss color profile. --no-color
// and NO_COLOR always win.
func applyColorMode(mode string) {
	if noColor || os.Getenv("NO_COLOR") != "" {
		ui.DisableColors()
		return
	}
	switch mode {
	case "never":
		ui.DisableColors()
	case "always":
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}
