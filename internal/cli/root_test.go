package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	smerrors "github.com/rileyhilliard/sysmon/internal/errors"
)

func TestIsUnknownCommandError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "unknown command error", err: errors.New(`unknown command "foo" for "sysmon"`), want: true},
		{name: "unknown flag error", err: errors.New(`unknown flag: --foo`), want: true},
		{name: "unknown shorthand", err: errors.New(`unknown shorthand flag: 'z' in -z`), want: true},
		{name: "other error", err: errors.New("connection failed"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUnknownCommandError(tt.err))
		})
	}
}

func TestExtractUnknownCommand(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "quoted command", err: errors.New(`unknown command "dashbord" for "sysmon"`), want: "dashbord"},
		{name: "no quotes", err: errors.New("unknown flag: --foo"), want: ""},
		{name: "unterminated quote", err: errors.New(`unknown command "oops`), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractUnknownCommand(tt.err))
		})
	}
}

func TestHandleError_Human(t *testing.T) {
	oldMode := machineMode
	defer func() { machineMode = oldMode }()
	machineMode = false

	var stdout, stderr bytes.Buffer
	handleError(&stdout, &stderr, smerrors.New(smerrors.ErrConfig, "Config file not found", "Run 'sysmon init'."))

	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "✗ Config file not found")
	assert.Contains(t, stderr.String(), "Run 'sysmon init'.")
}

func TestHandleError_UnknownCommandSuggests(t *testing.T) {
	oldMode := machineMode
	defer func() { machineMode = oldMode }()
	machineMode = false

	var stdout, stderr bytes.Buffer
	handleError(&stdout, &stderr, errors.New(`unknown command "serv" for "sysmon"`))

	assert.Contains(t, stderr.String(), "Did you mean serve?")
	assert.Contains(t, stderr.String(), "sysmon --help")
}

func TestHandleError_MachineMode(t *testing.T) {
	oldMode := machineMode
	defer func() { machineMode = oldMode }()
	machineMode = true

	var stdout, stderr bytes.Buffer
	handleError(&stdout, &stderr, smerrors.New(smerrors.ErrTransport, "GET /stats failed", ""))

	assert.Empty(t, stderr.String())
	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, ErrCodeBackendUnreachable, env.Error.Code)
}

func TestRootCommand_Subcommands(t *testing.T) {
	want := []string{"dashboard", "serve", "run", "top", "init", "completion", "version"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	cmd, _, err := rootCmd.Find([]string{"monitor"})
	require.NoError(t, err)
	assert.Equal(t, "dashboard", cmd.Name(), "monitor is an alias")
}

func TestRootCommand_DashboardFlags(t *testing.T) {
	for _, cmdName := range []string{"", "dashboard"} {
		cmd := rootCmd
		if cmdName != "" {
			cmd = dashboardCmd
		}
		assert.NotNil(t, cmd.Flags().Lookup("url"), cmdName)
		assert.NotNil(t, cmd.Flags().Lookup("interval"), cmdName)
	}
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("no-color"))
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			var buf bytes.Buffer
			rootCmd.SetOut(&buf)
			rootCmd.SetArgs([]string{"completion", shell})
			t.Cleanup(func() {
				rootCmd.SetOut(nil)
				rootCmd.SetArgs(nil)
			})

			require.NoError(t, rootCmd.Execute())
			assert.Contains(t, buf.String(), "sysmon")
		})
	}
}

func TestCompletionCommand_RejectsUnknownShell(t *testing.T) {
	rootCmd.SetArgs([]string{"completion", "tcsh"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	assert.Error(t, rootCmd.Execute())
}
