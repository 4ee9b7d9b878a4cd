package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/sysmon/internal/errors"
)

func TestMachineMode_DefaultValue(t *testing.T) {
	oldMode := machineMode
	defer func() { machineMode = oldMode }()

	machineMode = false
	assert.False(t, MachineMode())

	machineMode = true
	assert.True(t, MachineMode())
}

func TestWriteJSONSuccess_BasicData(t *testing.T) {
	var buf bytes.Buffer

	err := WriteJSONSuccess(&buf, map[string]string{"key": "value"})
	require.NoError(t, err)

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))

	assert.True(t, env.Success)
	assert.Nil(t, env.Error)
	dataMap, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "value", dataMap["key"])
}

func TestWriteJSONError(t *testing.T) {
	var buf bytes.Buffer

	err := WriteJSONError(&buf, ErrCodeBackendUnreachable, "GET /stats failed", "Is the backend running?", nil)
	require.NoError(t, err)

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))

	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeBackendUnreachable, env.Error.Code)
	assert.Equal(t, "Is the backend running?", env.Error.Suggestion)
	assert.NotContains(t, buf.String(), `"data"`)
}

func TestErrorToJSON_Codes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "config not found", err: errors.New(errors.ErrConfig, "Specified config file not found: x.yaml", ""), want: ErrCodeConfigNotFound},
		{name: "config invalid", err: errors.New(errors.ErrConfig, "chart.height must be at least 2 rows", ""), want: ErrCodeConfigInvalid},
		{name: "transport", err: errors.New(errors.ErrTransport, "GET /stats failed", ""), want: ErrCodeBackendUnreachable},
		{name: "malformed", err: errors.New(errors.ErrMalformed, "Couldn't decode", ""), want: ErrCodeBackendMalformed},
		{name: "collect", err: errors.New(errors.ErrCollect, "Couldn't read CPU", ""), want: ErrCodeCollectFailed},
		{name: "server", err: errors.New(errors.ErrServer, "Can't listen", ""), want: ErrCodeServerFailed},
		{name: "wrapped structured error", err: fmt.Errorf("top: %w", errors.New(errors.ErrMalformed, "bad body", "")), want: ErrCodeBackendMalformed},
		{name: "plain error", err: fmt.Errorf("boom"), want: ErrCodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ErrorToJSON(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Code)
		})
	}
}

func TestErrorToJSON_Nil(t *testing.T) {
	assert.Nil(t, ErrorToJSON(nil))
}

func TestErrorToJSON_CauseInDetails(t *testing.T) {
	err := errors.WrapWithCode(fmt.Errorf("connection refused"), errors.ErrTransport, "GET /stats failed", "Try 'sysmon serve'.")

	got := ErrorToJSON(err)
	require.NotNil(t, got)
	assert.Equal(t, "GET /stats failed", got.Message)
	assert.Equal(t, "Try 'sysmon serve'.", got.Suggestion)
	assert.Equal(t, map[string]interface{}{"cause": "connection refused"}, got.Details)
}

func TestWriteJSONFromError(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteJSONFromError(&buf, errors.New(errors.ErrServer, "Can't listen on :80", "")))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeServerFailed, env.Error.Code)
	assert.Equal(t, "Can't listen on :80", env.Error.Message)
}
