package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/ui"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Path           string // Config file to write; defaults to ./.sysmon.yaml
	URL            string // Pre-specified backend URL
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use defaults
}

// intervalChoices are the refresh intervals offered by the prompt.
var intervalChoices = []time.Duration{
	500 * time.Millisecond,
	time.Second,
	2 * time.Second,
	5 * time.Second,
}

// Init creates a new .sysmon.yaml configuration file.
func Init(opts InitOptions, out io.Writer) error {
	configPath := opts.Path
	if configPath == "" {
		configPath = filepath.Join(".", config.ConfigFileName)
	}

	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", configPath)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if opts.URL != "" {
		cfg.Dashboard.URL = strings.TrimSpace(opts.URL)
	}

	if !opts.NonInteractive {
		if err := promptConfig(cfg); err != nil {
			return err
		}
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}
	if err := config.Save(cfg, configPath); err != nil {
		return err
	}

	ui.PrintSuccess(out, "Created "+configPath)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  sysmon serve      - Serve this machine's metrics")
	fmt.Fprintln(out, "  sysmon dashboard  - Watch them live")
	fmt.Fprintln(out, "  sysmon run        - Both at once")
	return nil
}

// promptConfig asks for the dashboard settings, starting from cfg's values.
func promptConfig(cfg *config.Config) error {
	interval := cfg.Dashboard.Interval
	intervalOpts := make([]huh.Option[time.Duration], len(intervalChoices))
	for i, d := range intervalChoices {
		intervalOpts[i] = huh.NewOption(d.String(), d)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Backend URL").
				Description("Where 'sysmon serve' is listening").
				Placeholder("http://127.0.0.1:8000").
				Value(&cfg.Dashboard.URL).
				Validate(config.ValidateBaseURL),
		),
		huh.NewGroup(
			huh.NewSelect[time.Duration]().
				Title("Refresh interval").
				Options(intervalOpts...).
				Value(&interval),
			huh.NewSelect[string]().
				Title("Chart smoothing").
				Options(
					huh.NewOption("Exponential (steadier line)", config.SmoothingExponential),
					huh.NewOption("Raw samples", config.SmoothingRaw),
				).
				Value(&cfg.Chart.Smoothing),
			huh.NewConfirm().
				Title("Animate the chart?").
				Value(&cfg.Chart.Animate),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --yes")
	}
	cfg.Dashboard.Interval = interval
	return nil
}
