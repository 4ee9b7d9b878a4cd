// Package ui provides terminal output helpers for sysmon's CLI commands.
//
// The full-screen dashboard lives in internal/monitor; this package covers
// the line-oriented output around it: the serve banner, the startup spinner
// used by run, the one-shot process table printed by top, and styled
// success and warning lines.
//
// # Color Scheme
//
//	ColorSuccess (green)  - Successful operations
//	ColorError   (red)    - Failures and errors
//	ColorWarning (amber)  - Warnings
//	ColorInfo    (cyan)   - Informational messages
//	ColorMuted   (gray)   - Secondary text, timing info
//
// Use DisableColors() to switch to monochrome output (for --no-color).
//
// # Spinner Usage
//
//	s := ui.NewSpinner("Starting backend")
//	s.Start()
//	// ... wait for /health ...
//	s.Success() // or s.Fail()
package ui
