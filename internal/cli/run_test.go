package cli

import (
	"context"
	"fmt"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/sysmon/internal/client"
	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/logger"
	"github.com/rileyhilliard/sysmon/internal/server"
)

// flakyHealth fails until it has been called okAfter times.
type flakyHealth struct {
	calls   atomic.Int32
	okAfter int32
}

func (f *flakyHealth) Health(ctx context.Context) error {
	if f.calls.Add(1) > f.okAfter {
		return nil
	}
	return fmt.Errorf("connection refused")
}

func TestWaitForHealth_EventuallyHealthy(t *testing.T) {
	hc := &flakyHealth{okAfter: 2}

	err := waitForHealth(context.Background(), hc, time.Second)
	require.NoError(t, err)
	assert.Equal(t, int32(3), hc.calls.Load())
}

func TestWaitForHealth_Timeout(t *testing.T) {
	hc := &flakyHealth{okAfter: 1 << 30}

	err := waitForHealth(context.Background(), hc, 250*time.Millisecond)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrServer))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWaitForHealth_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := waitForHealth(ctx, &flakyHealth{okAfter: 1 << 30}, time.Minute)
	assert.Error(t, err)
}

func TestListenAddr(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Equal(t, cfg.Server.Addr, listenAddr("", cfg))
	assert.Equal(t, "0.0.0.0:9000", listenAddr("0.0.0.0:9000", cfg))
}

func TestNewServer_ServesHealth(t *testing.T) {
	cfg := config.DefaultConfig()
	ln, err := server.Listen("127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- newServer(cfg, logger.Noop()).Serve(ctx, ln)
	}()

	c, err := client.New("http://" + ln.Addr().String())
	require.NoError(t, err)
	require.NoError(t, waitForHealth(context.Background(), c, 5*time.Second))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestListen_PortInUse(t *testing.T) {
	ln, err := server.Listen("127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	_, err = server.Listen(ln.Addr().String())
	require.Error(t, err)
	assert.Equal(t, ErrCodeServerFailed, ErrorToJSON(err).Code)
}

func TestIsLoopback(t *testing.T) {
	tests := []struct {
		addr string
		want bool
	}{
		{"127.0.0.1:0", true},
		{"[::1]:0", true},
		{"0.0.0.0:0", false},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			addr, err := net.ResolveTCPAddr("tcp", tt.addr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, isLoopback(addr))
		})
	}
}
