package cli

import (
	"context"
	"io"
	"net"

	"github.com/rileyhilliard/sysmon/internal/collector"
	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/logger"
	"github.com/rileyhilliard/sysmon/internal/server"
	"github.com/rileyhilliard/sysmon/internal/ui"
)

// newServer wires the gopsutil collector into the HTTP API.
func newServer(cfg *config.Config, log logger.Logger) *server.Server {
	return server.New(collector.New(cfg.Server.CPUSample, log), server.Options{
		DefaultLimit: cfg.Server.DefaultLimit,
		Version:      version,
		Logger:       log,
	})
}

// listenAddr picks the --addr flag over the configured address.
func listenAddr(flag string, cfg *config.Config) string {
	if flag != "" {
		return flag
	}
	return cfg.Server.Addr
}

// serveCommand serves metrics until ctx is canceled.
func serveCommand(ctx context.Context, addrFlag string, out io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ln, err := server.Listen(listenAddr(addrFlag, cfg))
	if err != nil {
		return err
	}

	ui.PrintHeader(out, ui.HeaderInfo{
		Version: formatVersion(version),
		Tagline: "metrics backend",
		Detail:  "http://" + ln.Addr().String(),
	})
	if !isLoopback(ln.Addr()) {
		ui.PrintWarning(out, "Listening beyond localhost: anyone who can reach this port sees your process list")
	}

	return newServer(cfg, logger.NewEnvLogger("[server]")).Serve(ctx, ln)
}

// isLoopback reports whether addr only accepts local connections.
func isLoopback(addr net.Addr) bool {
	tcp, ok := addr.(*net.TCPAddr)
	if !ok {
		return false
	}
	return tcp.IP.IsLoopback()
}
