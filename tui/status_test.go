package tui

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithStatusOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("boom")

	called := false
	err := RunWithStatus(context.Background(), &buf, "Veri işleniyor...", true, func(ctx context.Context) error {
		called = true
		return boom
	})

	assert.True(t, called)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, buf.String())
}

func TestStatusModelQuitsOnDone(t *testing.T) {
	m := newStatusModel(context.Background(), "fetching", func(context.Context) error { return nil })
	defer m.cancel()

	assert.Contains(t, m.View(), "fetching")

	next, cmd := m.Update(doneMsg{err: errors.New("x")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	sm := next.(statusModel)
	assert.True(t, sm.done)
	assert.EqualError(t, sm.err, "x")
	assert.Empty(t, sm.View())
}

func TestStatusModelCtrlCCancelsTask(t *testing.T) {
	m := newStatusModel(context.Background(), "fetching", func(context.Context) error { return nil })

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Nil(t, cmd)
	assert.ErrorIs(t, m.ctx.Err(), context.Canceled)
}

func TestTerminalWidthOffTerminal(t *testing.T) {
	assert.Zero(t, TerminalWidth(&bytes.Buffer{}))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.Zero(t, TerminalWidth(f))
}
