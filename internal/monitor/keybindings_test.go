package monitor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/rileyhilliard/sysmon/internal/metrics"
)

func TestSortKeys_CoverEveryColumn(t *testing.T) {
	seen := make(map[metrics.Column]int)
	for _, col := range sortKeys {
		seen[col]++
	}
	for _, col := range metrics.Columns {
		assert.Equal(t, 2, seen[col], "column %s should have a digit and a letter key", col)
	}
}

func TestHandleKeyMsg_Unhandled(t *testing.T) {
	m := newTestModel(&fakeFetcher{})
	handled, cmd := m.HandleKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})

	assert.False(t, handled)
	assert.Nil(t, cmd)
	assert.Equal(t, DefaultSortState(), m.Sort())
}

func TestHandleKeyMsg_EscClosesHelp(t *testing.T) {
	m := newTestModel(&fakeFetcher{})

	handled, _ := m.HandleKeyMsg(keyMsg(KeyToggleHelp))
	assert.True(t, handled)
	assert.True(t, m.showHelp)

	// Esc only closes help when it is open
	handled, _ = m.HandleKeyMsg(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, handled)
	assert.False(t, m.showHelp)

	handled, _ = m.HandleKeyMsg(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, handled)
}

func TestHandleKeyMsg_Quit(t *testing.T) {
	m := newTestModel(&fakeFetcher{})
	handled, cmd := m.HandleKeyMsg(keyMsg(KeyQuit))

	assert.True(t, handled)
	assert.NotNil(t, cmd)
	assert.True(t, m.quitting)
}
