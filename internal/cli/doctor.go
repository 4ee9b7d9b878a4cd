package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/sysmon/internal/client"
	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/doctor"
	"github.com/rileyhilliard/sysmon/internal/ui"
)

// doctorTimeout bounds the whole diagnostic run.
const doctorTimeout = 10 * time.Second

var (
	doctorJSON    bool
	doctorFix     bool
	doctorURLFlag string
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose config, backend and terminal problems",
	Long: `Run diagnostic checks and report what would stop the dashboard from
working: a missing or invalid config, an unreachable or misbehaving backend,
or a terminal that can't draw the chart.

Examples:
  sysmon doctor
  sysmon doctor --url http://10.0.0.5:8000
  sysmon doctor --fix
  sysmon doctor --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		machineMode = doctorJSON
		return doctorCommand(cmd.Context(), DoctorOptions{
			URL:  doctorURLFlag,
			Fix:  doctorFix,
			JSON: doctorJSON,
		}, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "attempt automatic fixes where possible")
	doctorCmd.Flags().StringVar(&doctorURLFlag, "url", "", "backend base URL to check (default from config)")
}

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	URL  string
	Fix  bool
	JSON bool
	// Fd is the terminal checked by the TERMINAL checks; defaults to stdout.
	Fd int
}

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	Fixable  int  `json:"fixable"`
	AllClear bool `json:"all_clear"`
}

// doctorCommand implements the doctor command logic.
func doctorCommand(ctx context.Context, opts DoctorOptions, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, doctorTimeout)
	defer cancel()

	if opts.Fd == 0 {
		opts.Fd = int(os.Stdout.Fd())
	}

	checks := collectChecks(opts)
	results := doctor.RunAllParallel(ctx, checks)

	if opts.Fix {
		results = attemptFixes(ctx, checks, results)
	}

	if opts.JSON {
		return WriteJSONSuccess(out, buildDoctorOutput(checks, results))
	}

	renderDoctorText(out, checks, results, opts.Fix)
	return nil
}

// collectChecks gathers all diagnostic checks. Backend checks need a usable
// URL; when config or flags don't give one, the config checks already
// report why.
func collectChecks(opts DoctorOptions) []doctor.Check {
	var checks []doctor.Check

	checks = append(checks, doctor.NewConfigChecks(cfgFile, filepath.Join(".", config.ConfigFileName))...)

	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		cfg = config.DefaultConfig()
	}
	if baseURL, err := resolveURL(opts.URL, cfg); err == nil {
		if c, err := client.New(baseURL, client.WithTimeout(3*time.Second), client.WithLimit(cfg.Dashboard.ProcessLimit)); err == nil {
			checks = append(checks, doctor.NewBackendChecks(c)...)
		}
	}

	checks = append(checks, doctor.NewTerminalChecks(opts.Fd, termenv.EnvColorProfile())...)
	return checks
}

// attemptFixes tries to fix issues where possible.
func attemptFixes(ctx context.Context, checks []doctor.Check, results []doctor.CheckResult) []doctor.CheckResult {
	for i, result := range results {
		if result.Fixable && result.Status != doctor.StatusPass {
			if err := checks[i].Fix(); err == nil {
				results[i] = checks[i].Run(ctx)
			}
		}
	}
	return results
}

// buildDoctorOutput groups results by category in report order.
func buildDoctorOutput(checks []doctor.Check, results []doctor.CheckResult) DoctorOutput {
	grouped := doctor.GroupByCategory(checks)

	output := DoctorOutput{Categories: []CategoryOutput{}}
	for _, cat := range doctor.Categories {
		indices := grouped[cat]
		if len(indices) == 0 {
			continue
		}
		co := CategoryOutput{Name: cat}
		for _, idx := range indices {
			co.Results = append(co.Results, results[idx])
		}
		output.Categories = append(output.Categories, co)
	}

	counts := doctor.CountByStatus(results)
	output.Summary = SummaryOutput{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		Fixable:  doctor.FixableCount(results),
		AllClear: !doctor.HasIssues(results),
	}
	return output
}

// renderDoctorText writes the human-readable report.
func renderDoctorText(out io.Writer, checks []doctor.Check, results []doctor.CheckResult, fixed bool) {
	headerStyle := lipgloss.NewStyle().Bold(true)

	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.InfoStyle().Bold(true).Render("sysmon Diagnostic Report"))
	fmt.Fprintln(out)

	grouped := doctor.GroupByCategory(checks)
	for _, category := range doctor.Categories {
		indices := grouped[category]
		if len(indices) == 0 {
			continue
		}

		fmt.Fprintln(out, headerStyle.Render(category))
		for _, idx := range indices {
			renderCheckResult(out, results[idx])
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, strings.Repeat("━", 60))
	fmt.Fprintln(out)

	if !doctor.HasIssues(results) {
		fmt.Fprintf(out, "%s %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), doctor.Summary(results))
	} else {
		fmt.Fprintf(out, "%s %s\n", ui.ErrorStyle().Render(ui.SymbolFail), doctor.Summary(results))

		if doctor.FixableCount(results) > 0 && !fixed {
			fmt.Fprintln(out)
			fmt.Fprintf(out, "  Run with %s to attempt automatic fixes where possible.\n",
				ui.MutedStyle().Render("--fix"))
		}
	}
	fmt.Fprintln(out)
}

// renderCheckResult renders a single check result.
func renderCheckResult(out io.Writer, result doctor.CheckResult) {
	symbol := ui.SymbolComplete
	style := ui.SuccessStyle()
	switch result.Status {
	case doctor.StatusWarn:
		style = ui.WarningStyle()
	case doctor.StatusFail:
		symbol = ui.SymbolFail
		style = ui.ErrorStyle()
	}

	fmt.Fprintf(out, "  %s %s\n", style.Render(symbol), result.Message)

	if result.Suggestion != "" && result.Status != doctor.StatusPass {
		for _, line := range strings.Split(result.Suggestion, "\n") {
			fmt.Fprintf(out, "    %s\n", ui.MutedStyle().Render(line))
		}
	}
}
