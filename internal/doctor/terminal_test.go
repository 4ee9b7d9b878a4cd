package doctor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalCheck_NotATerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()

	result := (&TerminalCheck{Fd: int(f.Fd())}).Run(context.Background())
	assert.Equal(t, StatusWarn, result.Status)
	assert.Contains(t, result.Suggestion, "sysmon top")
}

func TestColorCheck(t *testing.T) {
	tests := []struct {
		profile termenv.Profile
		status  CheckStatus
	}{
		{termenv.TrueColor, StatusPass},
		{termenv.ANSI256, StatusPass},
		{termenv.ANSI, StatusWarn},
		{termenv.Ascii, StatusWarn},
	}

	for _, tt := range tests {
		result := (&ColorCheck{Profile: tt.profile}).Run(context.Background())
		assert.Equal(t, tt.status, result.Status, "profile %v", tt.profile)
	}
}
