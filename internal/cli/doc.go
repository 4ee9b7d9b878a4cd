// Package cli implements the sysmon command-line interface.
//
// Each command is a package-level cobra.Command registered on rootCmd in an
// init function. Commands do little more than resolve flags against the
// loaded config and hand off to the packages that do the work:
//
//	sysmon              - Same as sysmon dashboard
//	sysmon dashboard    - Live terminal dashboard (internal/monitor)
//	sysmon serve        - HTTP metrics backend (internal/server, internal/collector)
//	sysmon run          - Backend and dashboard in one process
//	sysmon top          - One snapshot, as a table or --json
//	sysmon init         - Write a .sysmon.yaml
//	sysmon version      - Build information
//
// # Flag Handling
//
// Global flags (--config, --no-color) live on the root command. Flags that
// override config values, like --url and --interval, default to empty so the
// config value applies when they're not given.
//
// # Errors
//
// Commands return *errors.Error values. Execute prints them in the
// three-part "what / why / fix" layout, or as a JSON envelope when the
// command ran with --json.
package cli
