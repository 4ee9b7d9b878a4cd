package doctor

import (
	"context"
	"fmt"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// MinDashboardWidth is the narrowest terminal that still shows the chart.
const MinDashboardWidth = 24

// TerminalCheck verifies stdout is a terminal wide enough for the dashboard.
type TerminalCheck struct {
	Fd int
}

func (c *TerminalCheck) Name() string     { return "terminal" }
func (c *TerminalCheck) Category() string { return CategoryTerminal }

func (c *TerminalCheck) Run(ctx context.Context) CheckResult {
	if !term.IsTerminal(c.Fd) {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "Output isn't a terminal",
			Suggestion: "The dashboard needs a TTY; 'sysmon top' works in pipes",
		}
	}

	width, height, err := term.GetSize(c.Fd)
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusWarn,
			Message: "Couldn't read terminal size",
		}
	}
	if width < MinDashboardWidth {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Terminal is %d columns wide", width),
			Suggestion: fmt.Sprintf("The chart is hidden below %d columns", MinDashboardWidth),
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Terminal %dx%d", width, height),
	}
}

func (c *TerminalCheck) Fix() error { return nil }

// ColorCheck reports the color profile the dashboard will render with.
type ColorCheck struct {
	Profile termenv.Profile
}

func (c *ColorCheck) Name() string     { return "color" }
func (c *ColorCheck) Category() string { return CategoryTerminal }

func (c *ColorCheck) Run(ctx context.Context) CheckResult {
	switch c.Profile {
	case termenv.TrueColor:
		return CheckResult{Name: c.Name(), Status: StatusPass, Message: "True color"}
	case termenv.ANSI256:
		return CheckResult{Name: c.Name(), Status: StatusPass, Message: "256 colors"}
	case termenv.ANSI:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "16 colors only",
			Suggestion: "Chart series colors will be approximated",
		}
	default:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "No color support",
			Suggestion: "Unset NO_COLOR or use a color terminal to tell the CPU and memory lines apart",
		}
	}
}

func (c *ColorCheck) Fix() error { return nil }

// NewTerminalChecks returns the terminal checks for fd.
func NewTerminalChecks(fd int, profile termenv.Profile) []Check {
	return []Check{
		&TerminalCheck{Fd: fd},
		&ColorCheck{Profile: profile},
	}
}
