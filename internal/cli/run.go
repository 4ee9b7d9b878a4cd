package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rileyhilliard/sysmon/internal/client"
	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/logger"
	"github.com/rileyhilliard/sysmon/internal/server"
	"github.com/rileyhilliard/sysmon/internal/ui"
)

const (
	// healthTimeout bounds how long run waits for the local backend.
	healthTimeout = 10 * time.Second

	healthPollInterval = 100 * time.Millisecond
)

// healthChecker is satisfied by *client.Client.
type healthChecker interface {
	Health(ctx context.Context) error
}

// runCommand starts the backend in-process, waits for /health, then runs the
// dashboard against it. The backend stops when the dashboard exits.
func runCommand(ctx context.Context, addrFlag, intervalFlag string, status io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ln, err := server.Listen(listenAddr(addrFlag, cfg))
	if err != nil {
		return err
	}
	baseURL := "http://" + ln.Addr().String()

	settings, err := dashboardSettingsFrom(cfg, baseURL, intervalFlag)
	if err != nil {
		ln.Close()
		return err
	}

	// The alt screen hides stderr, so the backend only logs when debugging.
	log := logger.Noop()
	if logger.DebugEnabled() {
		log = logger.NewEnvLogger("[server]")
	}

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- newServer(cfg, log).Serve(serveCtx, ln)
	}()

	c, err := client.New(baseURL, client.WithTimeout(time.Second))
	if err != nil {
		return err
	}

	spinner := ui.NewSpinner("Starting backend on " + baseURL)
	spinner.SetOutput(status)
	spinner.Start()
	if err := waitForHealth(serveCtx, c, healthTimeout); err != nil {
		spinner.Fail()
		cancel()
		<-serveErr
		return err
	}
	spinner.Success()

	dashErr := runDashboard(settings)

	cancel()
	if err := <-serveErr; err != nil && dashErr == nil {
		return err
	}
	return dashErr
}

// waitForHealth polls Health until it succeeds, ctx ends, or timeout passes.
func waitForHealth(ctx context.Context, hc healthChecker, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(healthPollInterval)
	defer ticker.Stop()

	var lastErr error
	for {
		if lastErr = hc.Health(ctx); lastErr == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return errors.WrapWithCode(lastErr, errors.ErrServer,
				fmt.Sprintf("Backend didn't become healthy within %s", timeout),
				"Run with "+logger.DebugEnvVar+"=1 to see server logs.")
		case <-ticker.C:
		}
	}
}
