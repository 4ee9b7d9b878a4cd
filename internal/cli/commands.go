package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	dashboardURLFlag      string
	dashboardIntervalFlag string
	serveAddrFlag         string
	runAddrFlag           string
	runIntervalFlag       string
	topURLFlag            string
	topSortFlag           string
	topAscFlag            bool
	topJSONFlag           bool
	topLimitFlag          int
	initURLFlag           string
	initForce             bool
	initYes               bool
)

// dashboardCmd opens the live dashboard against a running backend
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"monitor", "dash"},
	Short:   "Open the live metrics dashboard",
	Long: `Poll a sysmon backend and show CPU, memory and the busiest processes.

The dashboard refreshes once per interval. Click a column header or press
1-4 to sort the process table; sorting the same column again reverses it.

Examples:
  sysmon dashboard
  sysmon dashboard --url http://10.0.0.5:8000
  sysmon dashboard --interval 2s`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(dashboardURLFlag, dashboardIntervalFlag)
	},
}

// serveCmd runs the metrics backend in the foreground
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve host metrics over HTTP",
	Long: `Serve this machine's metrics on GET /stats, GET /processes and GET /health.

Runs until interrupted.

Examples:
  sysmon serve
  sysmon serve --addr 0.0.0.0:9000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serveCommand(ctx, serveAddrFlag, cmd.OutOrStdout())
	},
}

// runCmd starts a local backend and the dashboard together
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start a local backend and open the dashboard on it",
	Long: `Start the metrics backend in this process, wait until it answers
/health, then open the dashboard against it. Quitting the dashboard stops
the backend.

Examples:
  sysmon run
  sysmon run --addr 127.0.0.1:0`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runCommand(ctx, runAddrFlag, runIntervalFlag, cmd.ErrOrStderr())
	},
}

// topCmd prints one snapshot of the process table
var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Print one snapshot of system stats and processes",
	Long: `Fetch /stats and /processes once and print them, sorted the same
way the dashboard sorts.

Examples:
  sysmon top
  sysmon top --sort mem
  sysmon top --sort name --asc
  sysmon top --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		machineMode = topJSONFlag
		return topCommand(cmd.Context(), TopOptions{
			URL:   topURLFlag,
			Sort:  topSortFlag,
			Asc:   topAscFlag,
			JSON:  topJSONFlag,
			Limit: topLimitFlag,
		}, cmd.OutOrStdout())
	},
}

// initCmd writes a starter config file
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .sysmon.yaml config in the current directory",
	Long: `Create a .sysmon.yaml configuration file in the current directory.

Prompts for the backend URL, refresh interval and chart settings.
Use --yes to accept the defaults without prompting.

Examples:
  sysmon init
  sysmon init --yes --url http://10.0.0.5:8000
  sysmon init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(InitOptions{
			URL:            initURLFlag,
			Overwrite:      initForce,
			NonInteractive: initYes,
		}, cmd.OutOrStdout())
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate a shell completion script for sysmon.

Examples:
  sysmon completion bash > /etc/bash_completion.d/sysmon
  sysmon completion zsh > "${fpath[1]}/_sysmon"
  sysmon completion fish > ~/.config/fish/completions/sysmon.fish`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		default:
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		}
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)

	addDashboardFlags(dashboardCmd)

	serveCmd.Flags().StringVar(&serveAddrFlag, "addr", "", "listen address (default from config, 127.0.0.1:8000)")

	runCmd.Flags().StringVar(&runAddrFlag, "addr", "", "listen address for the local backend (default from config)")
	runCmd.Flags().StringVar(&runIntervalFlag, "interval", "", "refresh interval (e.g., 1s, 500ms)")

	topCmd.Flags().StringVar(&topURLFlag, "url", "", "backend base URL (default from config)")
	topCmd.Flags().StringVarP(&topSortFlag, "sort", "s", "cpu", "sort column: pid, name, cpu, mem")
	topCmd.Flags().BoolVar(&topAscFlag, "asc", false, "sort ascending instead of descending")
	topCmd.Flags().BoolVar(&topJSONFlag, "json", false, "output as JSON")
	topCmd.Flags().IntVarP(&topLimitFlag, "limit", "n", 0, "ask the backend for at most this many processes")

	initCmd.Flags().StringVar(&initURLFlag, "url", "", "backend base URL to write")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config without asking")
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "accept defaults without prompting")
}

// addDashboardFlags registers --url and --interval. The root command and
// dashboard share the same variables.
func addDashboardFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&dashboardURLFlag, "url", "", "backend base URL (default from config)")
	cmd.Flags().StringVar(&dashboardIntervalFlag, "interval", "", "refresh interval (e.g., 1s, 500ms)")
}
