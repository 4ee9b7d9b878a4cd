package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrConfig,
		ErrTransport,
		ErrMalformed,
		ErrCollect,
		ErrServer,
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "Invalid configuration in .sysmon.yaml",
			suggestion: "Check your configuration file syntax",
		},
		{
			name:       "transport error",
			code:       ErrTransport,
			message:    "GET /stats returned 500",
			suggestion: "",
		},
		{
			name:       "server error",
			code:       ErrServer,
			message:    "Can't listen on 127.0.0.1:8000",
			suggestion: "Pick another --addr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(cause, "GET /processes failed")

	assert.Equal(t, ErrTransport, err.Code)
	assert.Equal(t, "GET /processes failed", err.Message)
	assert.Same(t, cause, err.Cause)
	assert.True(t, errors.Is(err, cause))
}

func TestError_Format(t *testing.T) {
	err := WrapWithCode(fmt.Errorf("unexpected EOF"), ErrMalformed,
		"Couldn't decode /stats response",
		"Check that the backend speaks the sysmon JSON shape")

	out := err.Error()
	lines := strings.Split(out, "\n")
	assert.Equal(t, "✗ Couldn't decode /stats response", lines[0])
	assert.Contains(t, out, "\n  unexpected EOF\n")
	assert.Contains(t, out, "\n  Check that the backend speaks the sysmon JSON shape\n")
}

func TestError_FormatWithoutSuggestion(t *testing.T) {
	err := New(ErrConfig, "Bad interval", "")
	assert.Equal(t, "✗ Bad interval\n", err.Error())
}

func TestIsCode(t *testing.T) {
	err := New(ErrMalformed, "bad json", "")
	wrapped := fmt.Errorf("fetch: %w", err)

	assert.True(t, IsCode(err, ErrMalformed))
	assert.True(t, IsCode(wrapped, ErrMalformed))
	assert.False(t, IsCode(err, ErrTransport))
	assert.False(t, IsCode(nil, ErrMalformed))
	assert.False(t, IsCode(fmt.Errorf("plain"), ErrMalformed))
}

func TestIsFetchFailure(t *testing.T) {
	assert.True(t, IsFetchFailure(New(ErrTransport, "x", "")))
	assert.True(t, IsFetchFailure(New(ErrMalformed, "x", "")))
	assert.False(t, IsFetchFailure(New(ErrConfig, "x", "")))
	assert.False(t, IsFetchFailure(nil))
}
